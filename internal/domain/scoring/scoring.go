// Package scoring implements the nine-stage compatibility pipeline.
package scoring

import (
	"fmt"
	"math"

	"github.com/siuwai/hehun/internal/domain/model"
	"github.com/siuwai/hehun/internal/domain/relation"
)

// Pipeline constants.
const (
	baseFloor   = 40.0
	baseCeiling = 95.0

	// attenuation factors per weighted clash band; never below the floor
	attenBondedLight = 0.92
	attenLight       = 0.85
	attenModerate    = 0.78
	attenHeavy       = 0.62
	attenFloor       = 0.50

	// rescue boosts by where the harmonizing pair sits
	rescueDayDay  = 0.15
	rescueOneDay  = 0.10
	rescueOther   = 0.06
	rescueCap     = 0.20
	rescueHalvedW = 3.0

	favorableCap  = 12.0
	starBonusCap  = 12.0
	starBonusFloor = -3.0

	heavyClashCeiling    = 52.0
	moderateClashCeiling = 68.0

	scoreFloor   = 20.0
	scoreCeiling = 98.0

	lowConfidenceAvg = 0.85
	lowConfidenceCap = 70.0
)

// Input bundles everything the pipeline needs for one pair.
type Input struct {
	ProfileA model.ElementalProfile
	ProfileB model.ElementalProfile
	Clash    model.ClashProfile

	ConfidenceA model.Confidence
	ConfidenceB model.Confidence
}

// Score runs the nine stages and returns the final result with a complete
// audit trail. The pipeline is symmetric in A and B and fully
// deterministic; on invalid input it fails without a partial result.
func Score(in Input) (model.ScoreResult, error) {
	if !in.ConfidenceA.Valid() || !in.ConfidenceB.Valid() {
		return model.ScoreResult{}, fmt.Errorf("confidence %q/%q: %w", in.ConfidenceA, in.ConfidenceB, ErrScoring)
	}
	if _, ok := structureBase[in.Clash.Dominant]; !ok {
		return model.ScoreResult{}, fmt.Errorf("unknown relation %q: %w", in.Clash.Dominant, ErrScoring)
	}
	if field := missingProfileField(in.ProfileA); field != "" {
		return model.ScoreResult{}, fmt.Errorf("profile A %s: %w", field, ErrScoring)
	}
	if field := missingProfileField(in.ProfileB); field != "" {
		return model.ScoreResult{}, fmt.Errorf("profile B %s: %w", field, ErrScoring)
	}

	steps := make([]string, 0, 9)

	// stage 1: structure base with pattern adjustment. The pattern pair is
	// rendered in canonical order so the audit trail reads the same from
	// either side.
	base := structureBase[in.Clash.Dominant]
	pp := pairPatterns(in.ProfileA.Pattern, in.ProfileB.Pattern)
	adj, ok := patternAdjust[pp]
	if !ok {
		if in.ProfileA.Pattern == in.ProfileB.Pattern {
			adj = -1.0
		}
	}
	base = clamp(base+adj, baseFloor, baseCeiling)
	steps = append(steps, fmt.Sprintf("structure base %.1f (%s, patterns %s/%s)", base, in.Clash.Dominant, pp.a, pp.b))

	// stage 2: clash attenuation
	atten := attenuation(in.Clash.Weighted, in.Clash.Dominant)
	steps = append(steps, fmt.Sprintf("clash attenuation %.2f (weighted %.1f)", atten, in.Clash.Weighted))

	// stage 3: rescue boost
	boost := rescueBoost(in.Clash)
	steps = append(steps, fmt.Sprintf("rescue boost %.3f", boost))

	// stage 4: favorable-element bonus
	favorable := favorableBonus(in.ProfileA, in.ProfileB)
	steps = append(steps, fmt.Sprintf("favorable bonus %.1f", favorable))

	// stage 5: star bonus
	starBonus := starsBonus(in.ProfileA, in.ProfileB)
	steps = append(steps, fmt.Sprintf("star bonus %.1f", starBonus))

	// stage 6: combine
	score := base*atten*(1.0+boost) + favorable + starBonus
	steps = append(steps, fmt.Sprintf("combined %.2f", score))

	// stage 7: conflict ceilings and global clamp
	switch {
	case in.Clash.Weighted >= 3.0:
		score = math.Min(score, heavyClashCeiling)
	case in.Clash.Weighted >= 2.0:
		score = math.Min(score, moderateClashCeiling)
	}
	score = clamp(score, scoreFloor, scoreCeiling)
	steps = append(steps, fmt.Sprintf("after ceilings %.2f", score))

	relModel := relationshipModel(score, atten, favorable, boost, in.Clash)

	// stage 8: confidence
	factor := (in.ConfidenceA.Factor() + in.ConfidenceB.Factor()) / 2.0
	score *= factor
	if factor < lowConfidenceAvg {
		score = math.Min(score, lowConfidenceCap)
	}
	steps = append(steps, fmt.Sprintf("confidence ×%.3f -> %.2f", factor, score))

	// stage 9: range calibration
	score = calibrate(score, boost, in.Clash)
	final := clamp(round1(score), scoreFloor, scoreCeiling)
	steps = append(steps, fmt.Sprintf("calibrated %.1f", final))

	label, desc := ratingFor(final)
	return model.ScoreResult{
		Score:             final,
		Model:             relModel,
		ModelDescription:  modelDescriptions[relModel],
		Rating:            label,
		RatingDescription: desc,
		ConfidenceFactor:  factor,
		Steps:             steps,
	}, nil
}

// attenuation maps the weighted clash count to a multiplier. A bonded
// dominant relation softens the lightest band.
func attenuation(weighted float64, dom model.Relation) float64 {
	switch {
	case weighted <= 0:
		return 1.0
	case weighted <= 1.0:
		if dom.Harmonious() {
			return attenBondedLight
		}
		return attenLight
	case weighted <= 2.0:
		return attenModerate
	case weighted <= 3.0:
		return attenHeavy
	}
	return attenFloor
}

// rescueBoost finds the strongest six-harmony across the two charts. Only
// six-harmony pairs rescue; the boost halves under heavy clash and never
// exceeds the cap. No clash means nothing to rescue.
func rescueBoost(cl model.ClashProfile) float64 {
	if cl.Weighted <= 0 {
		return 0
	}
	best := 0.0
	for i, x := range cl.BranchesA {
		for j, y := range cl.BranchesB {
			if !relation.SixHarmonyPair(x, y) {
				continue
			}
			v := rescueOther
			switch {
			case i == 2 && j == 2:
				v = rescueDayDay
			case i == 2 || j == 2:
				v = rescueOneDay
			}
			if v > best {
				best = v
			}
		}
	}
	if cl.Weighted >= rescueHalvedW {
		best *= 0.5
	}
	return math.Min(best, rescueCap)
}

// favorableBonus rewards each side's favorable elements by their
// concentration in the other chart, capped overall.
func favorableBonus(a, b model.ElementalProfile) float64 {
	total := 0.0
	for _, dir := range [2][2]model.ElementalProfile{{a, b}, {b, a}} {
		for _, e := range dir[0].Favorable {
			switch c := dir[1].Concentration[e]; {
			case c > 30.0:
				total += 6.0
			case c > 20.0:
				total += 4.0
			case c > 10.0:
				total += 2.0
			}
		}
	}
	return math.Min(total, favorableCap)
}

// starsBonus combines the marker effects: the 紅鸞/天喜 cross pairing
// scores above either star alone, nobility and minor stars are capped,
// and negative markers are floored.
func starsBonus(a, b model.ElementalProfile) float64 {
	total := 0.0
	if (a.HasStar(model.StarHongLuan) && b.HasStar(model.StarTianXi)) ||
		(a.HasStar(model.StarTianXi) && b.HasStar(model.StarHongLuan)) {
		total += 5.0
	}

	nobility := 0.0
	if a.HasStar(model.StarTianYi) {
		nobility += 2.0
	}
	if b.HasStar(model.StarTianYi) {
		nobility += 2.0
	}
	total += math.Min(nobility, 4.0)

	minor := 0.0
	for _, p := range [2]model.ElementalProfile{a, b} {
		for _, s := range [2]model.Star{model.StarWenChang, model.StarJiangXing} {
			if p.HasStar(s) {
				minor += 1.0
			}
		}
	}
	total += math.Min(minor, 3.0)

	negative := 0.0
	for _, p := range [2]model.ElementalProfile{a, b} {
		for _, s := range [3]model.Star{model.StarYangRen, model.StarGuChen, model.StarGuaSu} {
			if p.HasStar(s) {
				negative -= 1.0
			}
		}
	}
	total += math.Max(negative, starBonusFloor)

	return clamp(total, starBonusFloor, starBonusCap)
}

// relationshipModel derives the model from the post-ceiling score and the
// structural signals, with fixed overrides.
func relationshipModel(score, atten, favorable, boost float64, cl model.ClashProfile) model.RelationshipModel {
	switch {
	case cl.Dominant == model.RelationStemCombination && cl.Weighted == 0 && score >= 70.0:
		return model.ModelBalanced
	case cl.Weighted >= 3.0:
		return model.ModelAvoid
	case cl.DayClash && boost == 0:
		return model.ModelAvoid
	case score >= 75.0 && atten >= attenBondedLight:
		return model.ModelBalanced
	case score >= 68.0:
		return model.ModelStable
	case score >= 55.0 || (favorable >= 6.0 && score >= 50.0):
		return model.ModelGrinding
	case score >= 45.0:
		return model.ModelTrouble
	}
	return model.ModelAvoid
}

// calibrate applies the mutually exclusive band clamps; the first
// matching band wins.
func calibrate(score, boost float64, cl model.ClashProfile) float64 {
	switch {
	case cl.DayClash && boost == 0:
		return clamp(score, 35.0, 48.0)
	case cl.FuYin:
		return clamp(score, 50.0, 62.0)
	case cl.Dominant == model.RelationStemCombination && cl.Weighted == 0:
		return clamp(score, 76.0, 90.0)
	case cl.Weighted >= 3.0 && boost == 0:
		return clamp(score, 35.0, 48.0)
	}
	return score
}

// missingProfileField names the first field a profile is missing, or ""
// when the profile arrived complete from the builder.
func missingProfileField(p model.ElementalProfile) string {
	for e := model.Wood; e <= model.Water; e++ {
		if _, ok := p.Concentration[e]; !ok {
			return "concentration"
		}
	}
	if !p.Pattern.Valid() {
		return "pattern"
	}
	return ""
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

// round1 rounds half away from zero to one decimal place.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
