package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/siuwai/hehun/internal/domain/calendar"
	"github.com/siuwai/hehun/internal/domain/match"
	"github.com/siuwai/hehun/internal/domain/model"
)

// fakeDeps implements Dependencies with canned responses.
type fakeDeps struct {
	analyzeErr error
	matchErr   error
	searchErr  error
	enqueueOK  bool

	lastAnalyze model.BirthInput
	lastSeed    model.SeedJob
	lastParams  match.Params
}

func (f *fakeDeps) Analyze(_ context.Context, in model.BirthInput) (model.Analysis, error) {
	f.lastAnalyze = in
	if f.analyzeErr != nil {
		return model.Analysis{}, f.analyzeErr
	}
	return model.Analysis{
		Moment: model.NormalizedMoment{Year: in.Year, Month: in.Month, Day: in.Day, Hour: in.Hour},
	}, nil
}

func (f *fakeDeps) MatchPair(_ context.Context, a, b model.BirthInput) (model.PairOutcome, error) {
	if f.matchErr != nil {
		return model.PairOutcome{}, f.matchErr
	}
	return model.PairOutcome{
		Result: model.ScoreResult{Score: 77.7, Model: model.ModelStable},
	}, nil
}

func (f *fakeDeps) SearchCandidates(_ context.Context, _ model.BirthInput, p match.Params) ([]model.Match, int, error) {
	f.lastParams = p
	if f.searchErr != nil {
		return nil, 0, f.searchErr
	}
	return []model.Match{
		{Candidate: model.Candidate{ID: "cand-1"}, Result: model.ScoreResult{Score: 81.0}},
	}, 42, nil
}

func (f *fakeDeps) EnqueueSeed(_ context.Context, job model.SeedJob) bool {
	f.lastSeed = job
	return f.enqueueOK
}

type fakeStats struct{}

func (fakeStats) GetStats() map[string]interface{} {
	return map[string]interface{}{"started": true}
}

func newTestMux(deps *fakeDeps) *http.ServeMux {
	mux := http.NewServeMux()
	NewServer(deps, fakeStats{}).Register(context.Background(), mux)
	return mux
}

func post(mux *http.ServeMux, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

const personJSON = `{"year":1990,"month":1,"day":1,"hour":12,"gender":"male"}`

func TestAnalyzeEndpoint(t *testing.T) {
	Convey("Given the analyze endpoint", t, func() {
		deps := &fakeDeps{enqueueOK: true}
		mux := newTestMux(deps)

		Convey("A valid request returns the analysis", func() {
			rec := post(mux, "/analyze", personJSON)

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(deps.lastAnalyze.Year, ShouldEqual, 1990)
			So(deps.lastAnalyze.Confidence, ShouldEqual, model.ConfidenceHigh)
		})

		Convey("An hour hint substitutes for a missing hour", func() {
			rec := post(mux, "/analyze",
				`{"year":1990,"month":1,"day":1,"hour_hint":"清晨","gender":"male"}`)

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(deps.lastAnalyze.Hour, ShouldEqual, 6)
			So(deps.lastAnalyze.Confidence, ShouldEqual, model.ConfidenceEstimated)
		})

		Convey("A missing hour without a hint is rejected", func() {
			rec := post(mux, "/analyze",
				`{"year":1990,"month":1,"day":1,"gender":"male"}`)

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("An unrecognized hint is rejected", func() {
			rec := post(mux, "/analyze",
				`{"year":1990,"month":1,"day":1,"hour_hint":"whenever","gender":"male"}`)

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("Malformed JSON is rejected", func() {
			rec := post(mux, "/analyze", `{"year":`)

			So(rec.Code, ShouldEqual, http.StatusBadRequest)

			var resp errorResponse
			So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
			So(resp.Code, ShouldEqual, "bad_request")
		})

		Convey("Domain validation failures map to 400", func() {
			deps.analyzeErr = fmt.Errorf("month 13 out of range: %w", calendar.ErrInvalidBirthData)
			rec := post(mux, "/analyze", personJSON)

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("Unexpected failures map to 500", func() {
			deps.analyzeErr = fmt.Errorf("cache wedged")
			rec := post(mux, "/analyze", personJSON)

			So(rec.Code, ShouldEqual, http.StatusInternalServerError)
		})

		Convey("GET is not routed", func() {
			req := httptest.NewRequest(http.MethodGet, "/analyze", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestMatchEndpoint(t *testing.T) {
	Convey("Given the match endpoint", t, func() {
		deps := &fakeDeps{}
		mux := newTestMux(deps)

		Convey("A valid pair returns the outcome with a request id", func() {
			rec := post(mux, "/match",
				`{"person_a":`+personJSON+`,"person_b":`+personJSON+`}`)

			So(rec.Code, ShouldEqual, http.StatusOK)

			var resp matchResponse
			So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
			So(resp.RequestID, ShouldNotBeEmpty)
		})

		Convey("A bad person_b is rejected before scoring", func() {
			rec := post(mux, "/match",
				`{"person_a":`+personJSON+`,"person_b":{"year":1990,"month":1,"day":1,"gender":"female"}}`)

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestSearchEndpoint(t *testing.T) {
	Convey("Given the search endpoint", t, func() {
		deps := &fakeDeps{}
		mux := newTestMux(deps)

		Convey("A valid request forwards the window and returns matches", func() {
			rec := post(mux, "/search",
				`{"reference":`+personJSON+`,"from_year":1988,"to_year":1992,"target":5}`)

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(deps.lastParams.FromYear, ShouldEqual, 1988)
			So(deps.lastParams.ToYear, ShouldEqual, 1992)
			So(deps.lastParams.Target, ShouldEqual, 5)

			var resp searchResponse
			So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
			So(resp.Examined, ShouldEqual, 42)
			So(len(resp.Matches), ShouldEqual, 1)
		})

		Convey("An invalid window maps to 400", func() {
			deps.searchErr = fmt.Errorf("window: %w", match.ErrInvalidWindow)
			rec := post(mux, "/search",
				`{"reference":`+personJSON+`,"from_year":1980,"to_year":1992}`)

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestSeedsEndpoint(t *testing.T) {
	Convey("Given the seeds endpoint", t, func() {
		deps := &fakeDeps{enqueueOK: true}
		mux := newTestMux(deps)

		Convey("A seed without an id gets one assigned", func() {
			rec := post(mux, "/seeds", `{"birth":`+personJSON+`}`)

			So(rec.Code, ShouldEqual, http.StatusAccepted)

			var resp ackResponse
			So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
			So(resp.Status, ShouldEqual, "accepted")
			So(resp.ID, ShouldNotBeEmpty)
			So(deps.lastSeed.ID, ShouldEqual, resp.ID)
		})

		Convey("A client-supplied id is kept", func() {
			rec := post(mux, "/seeds", `{"id":"my-seed","birth":`+personJSON+`}`)

			So(rec.Code, ShouldEqual, http.StatusAccepted)
			So(deps.lastSeed.ID, ShouldEqual, "my-seed")
		})

		Convey("Backpressure maps to 429", func() {
			deps.enqueueOK = false
			rec := post(mux, "/seeds", `{"birth":`+personJSON+`}`)

			So(rec.Code, ShouldEqual, http.StatusTooManyRequests)
		})
	})
}

func TestStatsEndpoint(t *testing.T) {
	Convey("Given the stats endpoint", t, func() {
		mux := newTestMux(&fakeDeps{})

		Convey("GET returns the provider's view", func() {
			req := httptest.NewRequest(http.MethodGet, "/stats", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, "started")
		})

		Convey("POST is not routed", func() {
			rec := post(mux, "/stats", `{}`)

			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestHealthEndpoint(t *testing.T) {
	Convey("Given the health endpoint", t, func() {
		mux := newTestMux(&fakeDeps{})

		Convey("GET serves a Prometheus exposition", func() {
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.Len(), ShouldBeGreaterThan, 0)
		})
	})
}
