// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/siuwai/hehun/internal/domain/model"
)

// seedRequest mirrors the OpenAPI schema for POST /seeds.
type seedRequest struct {
	ID    string       `json:"id,omitempty"`
	Birth birthRequest `json:"birth"`
}

type ackResponse struct {
	Status string `json:"status"`
	ID     string `json:"id"`
}

// SeedsHandler accepts candidates for asynchronous pool insertion.
type SeedsHandler struct {
	deps Dependencies
}

// NewSeedsHandler creates a new seeds handler.
func NewSeedsHandler(deps Dependencies) *SeedsHandler {
	return &SeedsHandler{deps: deps}
}

// HandlePostSeed handles POST /seeds requests.
func (h *SeedsHandler) HandlePostSeed(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_seed"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req seedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	in, err := req.Birth.toInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}

	if ok := h.deps.EnqueueSeed(r.Context(), model.SeedJob{ID: id, Input: in}); !ok {
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", ID: id})
}
