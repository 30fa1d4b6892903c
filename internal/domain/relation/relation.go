// Package relation classifies the structural relations between two
// four-pillar charts.
package relation

import (
	"fmt"

	"github.com/siuwai/hehun/internal/domain/model"
)

// Clash weighting constants.
const (
	dayClashWeight   = 3.0
	dayHarmWeight    = 2.0
	otherClashWeight = 1.0
	otherHarmWeight  = 0.5
	fuYinWeight      = 4.0
)

// branchPair is an unordered pair of branches, stored low branch first.
type branchPair struct {
	lo, hi model.Branch
}

func pairOf(a, b model.Branch) branchPair {
	if a > b {
		a, b = b, a
	}
	return branchPair{a, b}
}

// Six-harmony, six-clash, and six-harm pair sets.
var (
	sixHarmony = map[branchPair]struct{}{
		pairOf(0, 1):  {}, // 子丑
		pairOf(2, 11): {}, // 寅亥
		pairOf(3, 10): {}, // 卯戌
		pairOf(4, 9):  {}, // 辰酉
		pairOf(5, 8):  {}, // 巳申
		pairOf(6, 7):  {}, // 午未
	}
	sixClash = map[branchPair]struct{}{
		pairOf(0, 6):  {}, // 子午
		pairOf(1, 7):  {}, // 丑未
		pairOf(2, 8):  {}, // 寅申
		pairOf(3, 9):  {}, // 卯酉
		pairOf(4, 10): {}, // 辰戌
		pairOf(5, 11): {}, // 巳亥
	}
	sixHarm = map[branchPair]struct{}{
		pairOf(0, 7):  {}, // 子未
		pairOf(1, 6):  {}, // 丑午
		pairOf(2, 5):  {}, // 寅巳
		pairOf(3, 4):  {}, // 卯辰
		pairOf(8, 11): {}, // 申亥
		pairOf(9, 10): {}, // 酉戌
	}
)

// triads are the three-harmony frames.
var triads = [4][3]model.Branch{
	{8, 0, 4},  // 申子辰
	{2, 6, 10}, // 寅午戌
	{5, 9, 1},  // 巳酉丑
	{11, 3, 7}, // 亥卯未
}

// SixHarmonyPair reports whether two branches form a six-harmony.
func SixHarmonyPair(a, b model.Branch) bool {
	_, ok := sixHarmony[pairOf(a, b)]
	return ok
}

// sameTriad reports whether two distinct branches share a three-harmony frame.
func sameTriad(a, b model.Branch) bool {
	if a == b {
		return false
	}
	for _, t := range triads {
		var hitA, hitB bool
		for _, m := range t {
			hitA = hitA || m == a
			hitB = hitB || m == b
		}
		if hitA && hitB {
			return true
		}
	}
	return false
}

// Classify computes the clash profile between two charts. Always computed
// fresh; the result depends only on the two inputs.
func Classify(a, b model.FourPillars) model.ClashProfile {
	cp := model.ClashProfile{
		Dominant:  dominant(a, b),
		BranchesA: a.Branches(),
		BranchesB: b.Branches(),
	}
	cp.Notes = append(cp.Notes, fmt.Sprintf("日柱關係: %s", cp.Dominant))

	pillarNames := [4]string{"年", "月", "日", "時"}
	for i, x := range cp.BranchesA {
		for j, y := range cp.BranchesB {
			pr := pairOf(x, y)
			if _, ok := sixClash[pr]; ok {
				if i == 2 && j == 2 {
					cp.Weighted += dayClashWeight
					cp.DayClash = true
				} else {
					cp.Weighted += otherClashWeight
				}
				cp.Notes = append(cp.Notes, fmt.Sprintf("%s%s沖: %s%s", pillarNames[i], pillarNames[j], x, y))
			}
			if _, ok := sixHarm[pr]; ok {
				if i == 2 && j == 2 {
					cp.Weighted += dayHarmWeight
				} else {
					cp.Weighted += otherHarmWeight
				}
				cp.Notes = append(cp.Notes, fmt.Sprintf("%s%s害: %s%s", pillarNames[i], pillarNames[j], x, y))
			}
		}
	}

	if a == b {
		cp.FuYin = true
		cp.Weighted += fuYinWeight
		cp.Notes = append(cp.Notes, "伏吟: 八字完全相同")
	}
	return cp
}

// dominant resolves the day-pillar relation by fixed precedence.
func dominant(a, b model.FourPillars) model.Relation {
	switch {
	case stemCombines(a.Day.Stem, b.Day.Stem):
		return model.RelationStemCombination
	case SixHarmonyPair(a.Day.Branch, b.Day.Branch):
		return model.RelationSixHarmony
	case sameTriad(a.Day.Branch, b.Day.Branch):
		return model.RelationThreeHarmony
	case a.Day.Stem == b.Day.Stem:
		return model.RelationSameStem
	case a.Day.Branch == b.Day.Branch:
		return model.RelationSameBranch
	}
	return model.RelationNone
}

func stemCombines(a, b model.Stem) bool {
	_, ok := model.FiveCombination(a, b)
	return ok
}
