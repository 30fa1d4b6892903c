package profile_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/siuwai/hehun/internal/domain/calendar"
	"github.com/siuwai/hehun/internal/domain/model"
	"github.com/siuwai/hehun/internal/domain/pillars"
	"github.com/siuwai/hehun/internal/domain/profile"
)

func chart(year, month, day, hour int) model.FourPillars {
	n := calendar.New()
	m, err := n.Normalize(model.BirthInput{
		Year: year, Month: month, Day: day, Hour: hour,
		Longitude: 120.0, Gender: model.Female, Confidence: model.ConfidenceHigh,
	})
	if err != nil {
		panic(err)
	}
	fp, err := pillars.Derive(m)
	if err != nil {
		panic(err)
	}
	return fp
}

func TestBuild(t *testing.T) {
	Convey("Given a derived chart", t, func() {
		fp := chart(1990, 1, 1, 12)
		p := profile.Build(fp)

		Convey("The concentrations cover all five elements and sum to ~100", func() {
			var sum float64
			for _, e := range model.Elements() {
				c, ok := p.Concentration[e]
				So(ok, ShouldBeTrue)
				So(c, ShouldBeGreaterThanOrEqualTo, 0)
				sum += c
			}
			So(sum, ShouldBeBetween, 99.0, 101.0)
		})

		Convey("The day element follows the day stem", func() {
			So(p.DayElement, ShouldEqual, fp.Day.Stem.Element())
		})

		Convey("The strength stays within its scale", func() {
			So(p.Strength, ShouldBeGreaterThanOrEqualTo, 0)
			So(p.Strength, ShouldBeLessThanOrEqualTo, 100)
		})

		Convey("The favorable list is non-empty, sorted and deduplicated", func() {
			So(len(p.Favorable), ShouldBeGreaterThan, 0)
			for i := 1; i < len(p.Favorable); i++ {
				So(p.Favorable[i], ShouldBeGreaterThan, p.Favorable[i-1])
			}
		})
	})

	Convey("Given the same chart twice", t, func() {
		fp := chart(1984, 5, 20, 8)

		So(profile.Build(fp), ShouldResemble, profile.Build(fp))
	})

	Convey("Given the pattern thresholds", t, func() {
		samples := []model.FourPillars{
			chart(1960, 2, 10, 0),
			chart(1972, 7, 4, 14),
			chart(1984, 11, 30, 22),
			chart(1990, 1, 1, 12),
			chart(1990, 7, 1, 12),
			chart(2001, 9, 9, 6),
		}

		Convey("Every sample lands in exactly one pattern consistent with its strength", func() {
			for _, fp := range samples {
				p := profile.Build(fp)
				switch p.Pattern {
				case model.PatternSubordinate:
					So(p.Strength, ShouldBeLessThan, 20.0)
				case model.PatternDominant:
					So(p.Strength, ShouldBeGreaterThan, 80.0)
				case model.PatternStrong:
					So(p.Strength, ShouldBeGreaterThanOrEqualTo, 65.0)
				case model.PatternNeutral:
					So(p.Strength, ShouldBeGreaterThanOrEqualTo, 35.0)
				case model.PatternWeak:
					So(p.Strength, ShouldBeLessThan, 35.0)
				case model.PatternSpecial:
					// gated on a stem combination, not on strength bands
				default:
					So(p.Pattern, ShouldBeIn,
						model.PatternSubordinate, model.PatternDominant,
						model.PatternSpecial, model.PatternStrong,
						model.PatternNeutral, model.PatternWeak)
				}
			}
		})
	})

	Convey("Given pattern-driven favorable elements", t, func() {
		Convey("A strong day master favors what drains or controls it", func() {
			fp := chart(1990, 7, 1, 12)
			p := profile.Build(fp)
			if p.Pattern == model.PatternStrong {
				So(p.Favorable, ShouldContain, p.DayElement.OvercomeBy())
			}
		})

		Convey("A weak day master favors its resource or itself", func() {
			fp := chart(1990, 1, 1, 12)
			p := profile.Build(fp)
			if p.Pattern == model.PatternWeak {
				So(p.Favorable, ShouldContain, p.DayElement.GeneratedBy())
			}
		})
	})
}

func TestStars(t *testing.T) {
	Convey("Given a chart", t, func() {
		p := profile.Build(chart(1990, 1, 1, 12))

		Convey("The star list holds no duplicates", func() {
			seen := make(map[model.Star]bool)
			for _, s := range p.Stars {
				So(seen[s], ShouldBeFalse)
				seen[s] = true
			}
		})
	})
}

func TestSeedScore(t *testing.T) {
	Convey("Given a perfectly even spread without stars", t, func() {
		p := model.ElementalProfile{
			Concentration: map[model.Element]float64{
				model.Wood: 20, model.Fire: 20, model.Earth: 20,
				model.Metal: 20, model.Water: 20,
			},
		}

		So(profile.SeedScore(p), ShouldEqual, 100.0)
	})

	Convey("Given a skewed spread", t, func() {
		p := model.ElementalProfile{
			Concentration: map[model.Element]float64{
				model.Wood: 60, model.Fire: 10, model.Earth: 10,
				model.Metal: 10, model.Water: 10,
			},
		}

		// |60-20| + 4*|10-20| = 80 off the even baseline
		So(profile.SeedScore(p), ShouldEqual, 20.0)
	})

	Convey("Given romance stars on an even spread", t, func() {
		p := model.ElementalProfile{
			Concentration: map[model.Element]float64{
				model.Wood: 20, model.Fire: 20, model.Earth: 20,
				model.Metal: 20, model.Water: 20,
			},
			Stars: []model.Star{model.StarHongLuan, model.StarTianXi},
		}

		So(profile.SeedScore(p), ShouldEqual, 110.0)
	})

	Convey("Given isolation stars on an even spread", t, func() {
		p := model.ElementalProfile{
			Concentration: map[model.Element]float64{
				model.Wood: 20, model.Fire: 20, model.Earth: 20,
				model.Metal: 20, model.Water: 20,
			},
			Stars: []model.Star{model.StarGuChen, model.StarGuaSu},
		}

		So(profile.SeedScore(p), ShouldEqual, 96.0)
	})
}
