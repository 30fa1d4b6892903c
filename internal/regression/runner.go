package regression

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/siuwai/hehun/internal/domain/model"
	"github.com/siuwai/hehun/pkg/logger"
)

// Config holds configuration for the regression check.
type Config struct {
	BaseURL string        // Base URL of the service
	Timeout time.Duration // HTTP request timeout
	Verbose bool          // Log every fixture, not just failures
}

// Result is the outcome of checking one fixture.
type Result struct {
	Fixture Fixture
	Score   float64
	Model   model.RelationshipModel
	Err     error
}

// Passed reports whether the fixture landed in its calibrated band.
func (r Result) Passed() bool {
	if r.Err != nil {
		return false
	}
	return r.Score >= r.Fixture.MinScore && r.Score <= r.Fixture.MaxScore && r.Model == r.Fixture.Model
}

type matchWire struct {
	PersonA birthWire `json:"person_a"`
	PersonB birthWire `json:"person_b"`
}

type birthWire struct {
	Year       int     `json:"year"`
	Month      int     `json:"month"`
	Day        int     `json:"day"`
	Hour       int     `json:"hour"`
	Longitude  float64 `json:"longitude,omitempty"`
	Gender     string  `json:"gender"`
	Confidence string  `json:"confidence"`
}

type outcomeWire struct {
	Outcome struct {
		Result struct {
			Score float64 `json:"score"`
			Model string  `json:"model"`
		} `json:"result"`
	} `json:"outcome"`
}

func toWire(in model.BirthInput) birthWire {
	return birthWire{
		Year:       in.Year,
		Month:      in.Month,
		Day:        in.Day,
		Hour:       in.Hour,
		Longitude:  in.Longitude,
		Gender:     string(in.Gender),
		Confidence: string(in.Confidence),
	}
}

// Run checks every fixture against a running service and returns an error
// if any fixture falls outside its calibrated band.
func Run(ctx context.Context, cfg *Config) error {
	log := logger.Get().Named("regression")
	client := &http.Client{Timeout: cfg.Timeout}

	failed := 0
	for _, f := range Fixtures {
		res := checkFixture(ctx, client, cfg.BaseURL, f)
		switch {
		case !res.Passed():
			failed++
			log.Error(ctx, "fixture failed",
				logger.String("fixture", f.Name),
				logger.Float64("score", res.Score),
				logger.String("model", string(res.Model)),
				logger.Float64("min", f.MinScore),
				logger.Float64("max", f.MaxScore),
				logger.String("wantModel", string(f.Model)),
				logger.Error(res.Err),
			)
		case cfg.Verbose:
			log.Info(ctx, "fixture passed",
				logger.String("fixture", f.Name),
				logger.Float64("score", res.Score),
				logger.String("model", string(res.Model)),
			)
		}
	}

	log.Info(ctx, "regression check complete",
		logger.Int("total", len(Fixtures)),
		logger.Int("failed", failed),
	)
	if failed > 0 {
		return fmt.Errorf("%d of %d fixtures failed", failed, len(Fixtures))
	}
	return nil
}

func checkFixture(ctx context.Context, client *http.Client, baseURL string, f Fixture) Result {
	body, err := json.Marshal(matchWire{PersonA: toWire(f.A), PersonB: toWire(f.B)})
	if err != nil {
		return Result{Fixture: f, Err: fmt.Errorf("marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/match", bytes.NewReader(body))
	if err != nil {
		return Result{Fixture: f, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return Result{Fixture: f, Err: fmt.Errorf("post match: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Result{Fixture: f, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var out outcomeWire
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Result{Fixture: f, Err: fmt.Errorf("decode response: %w", err)}
	}

	return Result{
		Fixture: f,
		Score:   out.Outcome.Result.Score,
		Model:   model.RelationshipModel(out.Outcome.Result.Model),
	}
}
