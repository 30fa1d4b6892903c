// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/siuwai/hehun/internal/domain/calendar"
	"github.com/siuwai/hehun/internal/domain/match"
	"github.com/siuwai/hehun/internal/domain/model"
	"github.com/siuwai/hehun/internal/domain/pillars"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Analyze derives the chart and elemental profile for one person.
	Analyze(ctx context.Context, in model.BirthInput) (model.Analysis, error)

	// MatchPair runs the full compatibility pipeline over two people.
	MatchPair(ctx context.Context, a, b model.BirthInput) (model.PairOutcome, error)

	// SearchCandidates scans the pool for matches to the reference person.
	SearchCandidates(ctx context.Context, ref model.BirthInput, p match.Params) ([]model.Match, int, error)

	// EnqueueSeed pushes a seed job for async derivation. Returns false on
	// backpressure.
	EnqueueSeed(ctx context.Context, job model.SeedJob) bool
}

// Server wires HTTP routes for the business API.
type Server struct {
	stats          StatsProvider
	analyzeHandler *AnalyzeHandler
	matchHandler   *MatchHandler
	searchHandler  *SearchHandler
	seedsHandler   *SeedsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		stats:          statsProvider,
		analyzeHandler: NewAnalyzeHandler(deps),
		matchHandler:   NewMatchHandler(deps),
		searchHandler:  NewSearchHandler(deps),
		seedsHandler:   NewSeedsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.handleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.handleStats, "stats"))
	mux.HandleFunc("/analyze", MetricsMiddleware(s.analyzeHandler.HandlePostAnalyze, "analyze"))
	mux.HandleFunc("/match", MetricsMiddleware(s.matchHandler.HandlePostMatch, "match"))
	mux.HandleFunc("/search", MetricsMiddleware(s.searchHandler.HandlePostSearch, "search"))
	mux.HandleFunc("/seeds", MetricsMiddleware(s.seedsHandler.HandlePostSeed, "seeds"))
}

// birthRequest mirrors the OpenAPI schema for a person's birth data.
type birthRequest struct {
	Year       int     `json:"year"`
	Month      int     `json:"month"`
	Day        int     `json:"day"`
	Hour       *int    `json:"hour,omitempty"`
	Minute     int     `json:"minute"`
	Longitude  float64 `json:"longitude,omitempty"`
	Gender     string  `json:"gender"`
	Confidence string  `json:"confidence,omitempty"`

	// HourHint is a fuzzy description like "清晨" or "midnight", used when
	// the exact hour is unknown. The derived hour carries estimated
	// confidence.
	HourHint string `json:"hour_hint,omitempty"`
}

// toInput converts the wire shape into a domain birth input, resolving
// fuzzy hour hints and defaulting the confidence level.
func (b birthRequest) toInput() (model.BirthInput, error) {
	in := model.BirthInput{
		Year:       b.Year,
		Month:      b.Month,
		Day:        b.Day,
		Minute:     b.Minute,
		Longitude:  b.Longitude,
		Gender:     model.Gender(b.Gender),
		Confidence: model.Confidence(b.Confidence),
	}
	if in.Confidence == "" {
		in.Confidence = model.ConfidenceHigh
	}

	switch {
	case b.Hour != nil:
		in.Hour = *b.Hour
	case b.HourHint != "":
		hour, conf, ok := calendar.EstimateHour(b.HourHint)
		if !ok {
			return model.BirthInput{}, errors.New("unrecognized hour_hint")
		}
		in.Hour = hour
		in.Confidence = conf
	default:
		return model.BirthInput{}, errors.New("missing hour; provide hour or hour_hint")
	}

	return in, nil
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError maps domain validation failures to 400 and everything
// else to 500.
func writeDomainError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, calendar.ErrInvalidBirthData) || errors.Is(err, pillars.ErrBeforeEpoch) {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
}
