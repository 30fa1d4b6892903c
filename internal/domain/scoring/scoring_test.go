package scoring_test

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/siuwai/hehun/internal/domain/calendar"
	"github.com/siuwai/hehun/internal/domain/model"
	"github.com/siuwai/hehun/internal/domain/pillars"
	"github.com/siuwai/hehun/internal/domain/profile"
	"github.com/siuwai/hehun/internal/domain/relation"
	"github.com/siuwai/hehun/internal/domain/scoring"
)

func prep(t *testing.T, year, month, day, hour int, g model.Gender) (model.FourPillars, model.ElementalProfile) {
	t.Helper()
	norm := calendar.New()
	moment, err := norm.Normalize(model.BirthInput{
		Year: year, Month: month, Day: day, Hour: hour,
		Gender: g, Confidence: model.ConfidenceHigh,
	})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	fp, err := pillars.Derive(moment)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	return fp, profile.Build(fp)
}

func scorePair(t *testing.T, fpA, fpB model.FourPillars, profA, profB model.ElementalProfile, confA, confB model.Confidence) model.ScoreResult {
	t.Helper()
	result, err := scoring.Score(scoring.Input{
		ProfileA:    profA,
		ProfileB:    profB,
		Clash:       relation.Classify(fpA, fpB),
		ConfidenceA: confA,
		ConfidenceB: confB,
	})
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	return result
}

func TestScoreHeavyClashPair(t *testing.T) {
	Convey("Given two charts with a heavy month clash and no rescue", t, func() {
		fpA, profA := prep(t, 1990, 1, 1, 12, model.Male)
		fpB, profB := prep(t, 1990, 7, 1, 12, model.Female)

		result := scorePair(t, fpA, fpB, profA, profB, model.ConfidenceHigh, model.ConfidenceHigh)

		Convey("Then the score is calibrated into the avoidant band", func() {
			So(result.Score, ShouldBeBetweenOrEqual, 35.0, 48.0)
			So(result.Model, ShouldEqual, model.ModelAvoid)
		})

		Convey("And the audit trail covers all nine stages", func() {
			So(result.Steps, ShouldHaveLength, 9)
			So(result.Steps[0], ShouldContainSubstring, "structure base")
			So(result.Steps[8], ShouldContainSubstring, "calibrated")
		})
	})
}

func TestScoreIdenticalCharts(t *testing.T) {
	Convey("Given two identical charts", t, func() {
		fp, prof := prep(t, 1990, 1, 1, 12, model.Male)

		result := scorePair(t, fp, fp, prof, prof, model.ConfidenceHigh, model.ConfidenceHigh)

		Convey("Then the fu yin band applies", func() {
			So(result.Score, ShouldBeBetweenOrEqual, 50.0, 62.0)
		})
	})
}

func TestScoreSymmetry(t *testing.T) {
	Convey("Given a pair scored in both directions", t, func() {
		fpA, profA := prep(t, 1989, 4, 12, 11, model.Male)
		fpB, profB := prep(t, 1990, 6, 18, 13, model.Female)

		forward := scorePair(t, fpA, fpB, profA, profB, model.ConfidenceHigh, model.ConfidenceHigh)
		reversed := scorePair(t, fpB, fpA, profB, profA, model.ConfidenceHigh, model.ConfidenceHigh)

		Convey("Then the full result does not depend on argument order", func() {
			So(forward, ShouldResemble, reversed)
		})
	})
}

func TestScoreSymmetryAuditTrail(t *testing.T) {
	Convey("Given a sweep of pairs scored in both directions", t, func() {
		inputs := [][4]int{
			{1990, 1, 1, 12},
			{1988, 8, 8, 8},
			{1975, 3, 9, 12},
			{1992, 12, 6, 12},
		}

		Convey("Then every audit step reads the same from either side", func() {
			for i, a := range inputs {
				for _, b := range inputs[i+1:] {
					fpA, profA := prep(t, a[0], a[1], a[2], a[3], model.Male)
					fpB, profB := prep(t, b[0], b[1], b[2], b[3], model.Female)

					forward := scorePair(t, fpA, fpB, profA, profB, model.ConfidenceHigh, model.ConfidenceHigh)
					reversed := scorePair(t, fpB, fpA, profB, profA, model.ConfidenceHigh, model.ConfidenceHigh)

					So(forward.Steps, ShouldResemble, reversed.Steps)
				}
			}
		})
	})
}

func TestScoreConfidence(t *testing.T) {
	Convey("Given the same pair at different confidence levels", t, func() {
		fpA, profA := prep(t, 1989, 4, 12, 11, model.Male)
		fpB, profB := prep(t, 1990, 6, 18, 13, model.Female)

		high := scorePair(t, fpA, fpB, profA, profB, model.ConfidenceHigh, model.ConfidenceHigh)
		low := scorePair(t, fpA, fpB, profA, profB, model.ConfidenceLow, model.ConfidenceLow)
		estimated := scorePair(t, fpA, fpB, profA, profB, model.ConfidenceEstimated, model.ConfidenceEstimated)

		Convey("Then lower confidence never raises the score", func() {
			So(low.Score, ShouldBeLessThanOrEqualTo, high.Score)
			So(estimated.Score, ShouldBeLessThanOrEqualTo, low.Score)
		})

		Convey("And the confidence factor is the average of both sides", func() {
			So(high.ConfidenceFactor, ShouldEqual, 0.95)
			So(low.ConfidenceFactor, ShouldEqual, 0.85)
			So(estimated.ConfidenceFactor, ShouldEqual, 0.80)
		})
	})
}

func TestScoreBounds(t *testing.T) {
	Convey("Given a range of pairs", t, func() {
		inputs := [][4]int{
			{1990, 1, 1, 12},
			{1988, 8, 8, 8},
			{1975, 3, 9, 12},
			{2000, 12, 31, 23},
			{1925, 2, 4, 0},
		}

		Convey("Then every score stays inside the global range", func() {
			for _, a := range inputs {
				for _, b := range inputs {
					fpA, profA := prep(t, a[0], a[1], a[2], a[3], model.Male)
					fpB, profB := prep(t, b[0], b[1], b[2], b[3], model.Female)
					result := scorePair(t, fpA, fpB, profA, profB, model.ConfidenceHigh, model.ConfidenceHigh)

					So(result.Score, ShouldBeBetweenOrEqual, 20.0, 98.0)
					So(result.Rating, ShouldNotBeEmpty)
					So(result.ModelDescription, ShouldNotBeEmpty)
				}
			}
		})
	})
}

func TestScoreInvalidInput(t *testing.T) {
	Convey("Given invalid scoring input", t, func() {
		fpA, profA := prep(t, 1990, 1, 1, 12, model.Male)

		Convey("An unknown confidence fails", func() {
			_, err := scoring.Score(scoring.Input{
				ProfileA:    profA,
				ProfileB:    profA,
				Clash:       relation.Classify(fpA, fpA),
				ConfidenceA: model.Confidence("certain"),
				ConfidenceB: model.ConfidenceHigh,
			})
			So(err, ShouldNotBeNil)
		})

		Convey("An empty profile fails before any stage runs", func() {
			_, err := scoring.Score(scoring.Input{
				ProfileA:    profA,
				ProfileB:    model.ElementalProfile{},
				Clash:       relation.Classify(fpA, fpA),
				ConfidenceA: model.ConfidenceHigh,
				ConfidenceB: model.ConfidenceHigh,
			})
			So(err, ShouldNotBeNil)
			So(errors.Is(err, scoring.ErrScoring), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "concentration")
		})

		Convey("A profile with an unknown pattern fails", func() {
			bad := profA
			bad.Pattern = model.Pattern("heroic")
			_, err := scoring.Score(scoring.Input{
				ProfileA:    bad,
				ProfileB:    profA,
				Clash:       relation.Classify(fpA, fpA),
				ConfidenceA: model.ConfidenceHigh,
				ConfidenceB: model.ConfidenceHigh,
			})
			So(err, ShouldNotBeNil)
			So(errors.Is(err, scoring.ErrScoring), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "pattern")
		})

		Convey("An unknown relation fails", func() {
			clash := relation.Classify(fpA, fpA)
			clash.Dominant = model.Relation("sworn_enemies")
			_, err := scoring.Score(scoring.Input{
				ProfileA:    profA,
				ProfileB:    profA,
				Clash:       clash,
				ConfidenceA: model.ConfidenceHigh,
				ConfidenceB: model.ConfidenceHigh,
			})
			So(err, ShouldNotBeNil)
		})
	})
}

func TestRatingBands(t *testing.T) {
	Convey("Given a scored pair", t, func() {
		fpA, profA := prep(t, 1990, 1, 1, 12, model.Male)
		fpB, profB := prep(t, 1990, 7, 1, 12, model.Female)

		result := scorePair(t, fpA, fpB, profA, profB, model.ConfidenceHigh, model.ConfidenceHigh)

		Convey("Then the rating matches the score band", func() {
			switch {
			case result.Score >= 45.0:
				So(result.Rating, ShouldEqual, "強烈不建議")
			default:
				So(result.Rating, ShouldEqual, "極不相配")
			}
		})
	})
}
