package match_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/siuwai/hehun/internal/domain/match"
	"github.com/siuwai/hehun/internal/domain/model"
)

type fakeProvider struct {
	candidates []model.Candidate
	err        error
	gotLimit   int
}

func (f *fakeProvider) CandidatesInWindow(_ context.Context, fromYear, toYear, limit int) ([]model.Candidate, error) {
	f.gotLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	out := make([]model.Candidate, 0, len(f.candidates))
	for _, c := range f.candidates {
		if c.Input.Year >= fromYear && c.Input.Year <= toYear {
			out = append(out, c)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// fakeScorer maps candidate IDs to fixed scores; unknown IDs fail to score.
type fakeScorer struct {
	scores map[string]float64
	calls  int
}

func (f *fakeScorer) ScoreCandidate(_ context.Context, c model.Candidate) (model.ScoreResult, error) {
	f.calls++
	score, ok := f.scores[c.ID]
	if !ok {
		return model.ScoreResult{}, errors.New("unscorable")
	}
	return model.ScoreResult{Score: score}, nil
}

func cand(id string, year int) model.Candidate {
	return model.Candidate{ID: id, Input: model.BirthInput{Year: year}}
}

func params() match.Params {
	return match.Params{
		FromYear: 1990, ToYear: 1992,
		SampleCeiling: 100, Target: 10, Threshold: 60,
	}
}

func TestParamsValidate(t *testing.T) {
	Convey("Given search parameters", t, func() {
		Convey("A sane window passes", func() {
			So(params().Validate(), ShouldBeNil)
		})

		Convey("An inverted window fails", func() {
			p := params()
			p.FromYear, p.ToYear = 1992, 1990
			So(errors.Is(p.Validate(), match.ErrInvalidWindow), ShouldBeTrue)
		})

		Convey("A window outside the pool bounds fails", func() {
			p := params()
			p.FromYear = match.PoolYearMin - 1
			So(errors.Is(p.Validate(), match.ErrInvalidWindow), ShouldBeTrue)

			p = params()
			p.FromYear, p.ToYear = match.PoolYearMax, match.PoolYearMax+1
			So(errors.Is(p.Validate(), match.ErrInvalidWindow), ShouldBeTrue)
		})

		Convey("A window wider than the cap fails", func() {
			p := params()
			p.FromYear, p.ToYear = 1990, 1995
			So(errors.Is(p.Validate(), match.ErrInvalidWindow), ShouldBeTrue)
		})

		Convey("A five year window is still allowed", func() {
			p := params()
			p.FromYear, p.ToYear = 1990, 1994
			So(p.Validate(), ShouldBeNil)
		})

		Convey("Non-positive limits fail", func() {
			p := params()
			p.SampleCeiling = 0
			So(errors.Is(p.Validate(), match.ErrInvalidLimit), ShouldBeTrue)

			p = params()
			p.Target = 0
			So(errors.Is(p.Validate(), match.ErrInvalidLimit), ShouldBeTrue)
		})
	})
}

func TestSearch(t *testing.T) {
	ctx := context.Background()

	Convey("Given a pool of scored candidates", t, func() {
		provider := &fakeProvider{candidates: []model.Candidate{
			cand("a", 1990), cand("b", 1990), cand("c", 1991),
			cand("d", 1991), cand("e", 1992), cand("f", 1995),
		}}
		scorer := &fakeScorer{scores: map[string]float64{
			"a": 55, "b": 72, "c": 88, "d": 72, "e": 61,
		}}
		searcher := match.New(provider)

		Convey("When searching with a reachable threshold", func() {
			matches, examined, err := searcher.Search(ctx, scorer, params())

			Convey("Then matches above the threshold come back score-descending", func() {
				So(err, ShouldBeNil)
				So(examined, ShouldEqual, 5) // f is outside the window
				So(len(matches), ShouldEqual, 4)
				So(matches[0].Candidate.ID, ShouldEqual, "c")
				// ties break on candidate ID ascending
				So(matches[1].Candidate.ID, ShouldEqual, "b")
				So(matches[2].Candidate.ID, ShouldEqual, "d")
				So(matches[3].Candidate.ID, ShouldEqual, "e")
			})
		})

		Convey("When the target is reached early", func() {
			p := params()
			p.Target = 2
			matches, examined, err := searcher.Search(ctx, scorer, p)

			Convey("Then the search stops without spending the ceiling", func() {
				So(err, ShouldBeNil)
				So(len(matches), ShouldEqual, 2)
				So(examined, ShouldBeLessThan, 5)
			})
		})

		Convey("When the ceiling is tighter than the pool", func() {
			p := params()
			p.SampleCeiling = 3
			matches, examined, err := searcher.Search(ctx, scorer, p)

			So(err, ShouldBeNil)
			So(examined, ShouldEqual, 3)
			So(len(matches), ShouldBeLessThanOrEqualTo, 3)
		})

		Convey("When no candidate reaches the threshold", func() {
			p := params()
			p.Threshold = 99
			matches, examined, err := searcher.Search(ctx, scorer, p)

			So(err, ShouldBeNil)
			So(examined, ShouldEqual, 5)
			So(matches, ShouldBeEmpty)
		})

		Convey("When a candidate fails to score", func() {
			delete(scorer.scores, "b")
			matches, examined, err := searcher.Search(ctx, scorer, params())

			Convey("Then it is skipped but still consumes budget", func() {
				So(err, ShouldBeNil)
				So(examined, ShouldEqual, 5)
				So(len(matches), ShouldEqual, 3)
				for _, m := range matches {
					So(m.Candidate.ID, ShouldNotEqual, "b")
				}
			})
		})

		Convey("When the parameters are invalid", func() {
			p := params()
			p.FromYear, p.ToYear = 1980, 1992
			_, _, err := searcher.Search(ctx, scorer, p)

			So(errors.Is(err, match.ErrInvalidWindow), ShouldBeTrue)
			So(scorer.calls, ShouldEqual, 0)
		})

		Convey("When the provider fails", func() {
			provider.err = fmt.Errorf("pool down")
			_, _, err := searcher.Search(ctx, scorer, params())

			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "pool query")
		})

		Convey("When the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, _, err := searcher.Search(cctx, scorer, params())

			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}
