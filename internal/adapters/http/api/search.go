// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/siuwai/hehun/internal/domain/match"
	"github.com/siuwai/hehun/internal/domain/model"
)

// searchRequest mirrors the OpenAPI schema for POST /search.
type searchRequest struct {
	Reference     birthRequest `json:"reference"`
	FromYear      int          `json:"from_year"`
	ToYear        int          `json:"to_year"`
	SampleCeiling int          `json:"sample_ceiling,omitempty"`
	Target        int          `json:"target,omitempty"`
	Threshold     float64      `json:"threshold,omitempty"`
}

// searchResponse carries found matches plus how much of the sample budget
// the search consumed.
type searchResponse struct {
	RequestID string        `json:"request_id"`
	Matches   []model.Match `json:"matches"`
	Examined  int           `json:"examined"`
}

// SearchHandler handles candidate pool search requests.
type SearchHandler struct {
	deps Dependencies
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(deps Dependencies) *SearchHandler {
	return &SearchHandler{deps: deps}
}

// HandlePostSearch handles POST /search requests.
func (h *SearchHandler) HandlePostSearch(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_search"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	ref, err := req.Reference.toInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	params := match.Params{
		FromYear:      req.FromYear,
		ToYear:        req.ToYear,
		SampleCeiling: req.SampleCeiling,
		Target:        req.Target,
		Threshold:     req.Threshold,
	}

	matches, examined, err := h.deps.SearchCandidates(r.Context(), ref, params)
	if err != nil {
		if errors.Is(err, match.ErrInvalidWindow) || errors.Is(err, match.ErrInvalidLimit) {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		writeDomainError(w, op, err)
		return
	}

	if matches == nil {
		matches = []model.Match{}
	}
	writeJSON(w, http.StatusOK, searchResponse{
		RequestID: uuid.NewString(),
		Matches:   matches,
		Examined:  examined,
	})
}
