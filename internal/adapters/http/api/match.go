// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

// matchRequest mirrors the OpenAPI schema for POST /match.
type matchRequest struct {
	PersonA birthRequest `json:"person_a"`
	PersonB birthRequest `json:"person_b"`
}

// matchResponse carries the pair outcome plus a server-assigned id so the
// result can be referenced in logs and follow-up requests.
type matchResponse struct {
	RequestID string `json:"request_id"`
	Outcome   any    `json:"outcome"`
}

// MatchHandler handles two-person compatibility requests.
type MatchHandler struct {
	deps Dependencies
}

// NewMatchHandler creates a new match handler.
func NewMatchHandler(deps Dependencies) *MatchHandler {
	return &MatchHandler{deps: deps}
}

// HandlePostMatch handles POST /match requests.
func (h *MatchHandler) HandlePostMatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_match"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	a, err := req.PersonA.toInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	b, err := req.PersonB.toInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	outcome, err := h.deps.MatchPair(r.Context(), a, b)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, matchResponse{
		RequestID: uuid.NewString(),
		Outcome:   outcome,
	})
}
