// Package profile builds elemental profiles from four-pillar charts.
package profile

import (
	"math"
	"sort"

	"github.com/siuwai/hehun/internal/domain/model"
)

// Strength scoring constants.
const (
	monthCommandWeight = 35.0
	rootingWeight      = 15.0
	supportBonus       = 8.0

	subordinateBelow = 20.0
	dominantAbove    = 80.0
	strongFrom       = 65.0
	neutralFrom      = 35.0

	// specialMinConcentration gates the special pattern on the
	// combined element's share of the chart.
	specialMinConcentration = 40.0
)

// Build computes the elemental profile of a chart. Pure: the same pillars
// always produce the same profile.
func Build(fp model.FourPillars) model.ElementalProfile {
	weights := accumulate(fp)

	var total float64
	for _, w := range weights {
		total += w
	}
	conc := make(map[model.Element]float64, 5)
	for _, e := range model.Elements() {
		conc[e] = round1(weights[e] * 100.0 / total)
	}

	dayElem := fp.Day.Stem.Element()
	strength := strengthScore(fp, dayElem)
	pattern, combined := classifyPattern(fp, conc, strength)
	favorable := favorableElements(pattern, combined, dayElem, fp.Month.Branch, weights)

	return model.ElementalProfile{
		Concentration: conc,
		DayElement:    dayElem,
		Strength:      strength,
		Pattern:       pattern,
		Favorable:     favorable,
		Stars:         stars(fp),
	}
}

// accumulate sums weighted elemental presence over stems, branch primaries,
// and hidden stems.
func accumulate(fp model.FourPillars) [5]float64 {
	var weights [5]float64
	for i, p := range fp.Pillars() {
		w := pillarWeights[i]
		weights[p.Stem.Element()] += w
		weights[p.Branch.Element()] += w * 0.5
		for _, h := range p.Branch.HiddenStems() {
			weights[h.Stem.Element()] += w * h.Weight
		}
	}
	return weights
}

// strengthScore grades the day master: month command, rooting in hidden
// stems, and supporting stems.
func strengthScore(fp model.FourPillars, dayElem model.Element) float64 {
	score := monthStrength[dayElem][fp.Month.Branch] * monthCommandWeight

	for _, p := range fp.Pillars() {
		for _, h := range p.Branch.HiddenStems() {
			if h.Stem.Element() == dayElem {
				score += h.Weight * rootingWeight
				break // one root per branch
			}
		}
	}
	for _, p := range fp.Pillars() {
		if p.Stem.Element().Generates() == dayElem {
			score += supportBonus
		}
	}
	return math.Min(100.0, math.Max(0.0, score))
}

// classifyPattern tags the day master. The special pattern requires the
// day stem to five-combine with the month or hour stem while the combined
// element dominates the chart.
func classifyPattern(fp model.FourPillars, conc map[model.Element]float64, strength float64) (model.Pattern, model.Element) {
	switch {
	case strength < subordinateBelow:
		return model.PatternSubordinate, 0
	case strength > dominantAbove:
		return model.PatternDominant, 0
	}

	for _, other := range []model.Stem{fp.Month.Stem, fp.Hour.Stem} {
		if combined, ok := model.FiveCombination(fp.Day.Stem, other); ok {
			if conc[combined] >= specialMinConcentration {
				return model.PatternSpecial, combined
			}
		}
	}

	switch {
	case strength >= strongFrom:
		return model.PatternStrong, 0
	case strength >= neutralFrom:
		return model.PatternNeutral, 0
	}
	return model.PatternWeak, 0
}

// favorableElements applies the classical balancing rules per pattern.
func favorableElements(pattern model.Pattern, combined, dayElem model.Element, monthBranch model.Branch, weights [5]float64) []model.Element {
	var fav []model.Element
	switch pattern {
	case model.PatternSubordinate:
		// follow the strongest element in the chart
		strongest := model.Wood
		for _, e := range model.Elements() {
			if weights[e] > weights[strongest] {
				strongest = e
			}
		}
		fav = []model.Element{strongest}
	case model.PatternDominant:
		fav = []model.Element{dayElem}
	case model.PatternSpecial:
		fav = []model.Element{combined}
	case model.PatternStrong:
		fav = []model.Element{dayElem.OvercomeBy(), dayElem.Generates()}
	case model.PatternWeak:
		fav = []model.Element{dayElem.GeneratedBy(), dayElem}
	default: // neutral: balance the season of the month branch
		fav = []model.Element{seasonBalance(monthBranch)}
	}

	sort.Slice(fav, func(i, j int) bool { return fav[i] < fav[j] })
	return dedupe(fav)
}

// seasonBalance picks the element that tempers the month branch's season.
func seasonBalance(b model.Branch) model.Element {
	switch b {
	case 11, 0, 1: // 亥子丑: deep winter wants fire
		return model.Fire
	case 5, 6, 7: // 巳午未: high summer wants water
		return model.Water
	case 2, 3: // 寅卯: wood in command wants metal
		return model.Metal
	case 8, 9: // 申酉: metal in command wants wood
		return model.Wood
	}
	return model.Wood
}

func dedupe(es []model.Element) []model.Element {
	out := es[:0]
	for i, e := range es {
		if i == 0 || es[i-1] != e {
			out = append(out, e)
		}
	}
	return out
}

// stars walks the fixed marker tables in canonical order.
func stars(fp model.FourPillars) []model.Star {
	yb := fp.Year.Branch
	ds := fp.Day.Stem
	branches := fp.Branches()

	has := func(want model.Branch) bool {
		for _, b := range branches {
			if b == want {
				return true
			}
		}
		return false
	}

	var out []model.Star
	if has(hongLuan[yb]) {
		out = append(out, model.StarHongLuan)
	}
	if has(tianXi[yb]) {
		out = append(out, model.StarTianXi)
	}
	if has(tianYi[ds][0]) || has(tianYi[ds][1]) {
		out = append(out, model.StarTianYi)
	}
	if has(wenChang[ds]) {
		out = append(out, model.StarWenChang)
	}
	if has(jiangXing[yb]) {
		out = append(out, model.StarJiangXing)
	}
	if blade, ok := yangRen[ds]; ok && has(blade) {
		out = append(out, model.StarYangRen)
	}
	if has(guChen[yb]) {
		out = append(out, model.StarGuChen)
	}
	if has(guaSu[yb]) {
		out = append(out, model.StarGuaSu)
	}
	return out
}

// round1 rounds half away from zero to one decimal place.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
