package profile

import (
	"math"

	"github.com/siuwai/hehun/internal/domain/model"
)

// seedStarAdjust weighs markers for the pool pre-screen: romance and
// nobility stars pull a chart forward, isolation stars push it back.
var seedStarAdjust = map[model.Star]float64{
	model.StarHongLuan:  5,
	model.StarTianXi:    5,
	model.StarTianYi:    3,
	model.StarWenChang:  1,
	model.StarJiangXing: 1,
	model.StarYangRen:   -2,
	model.StarGuChen:    -2,
	model.StarGuaSu:     -2,
}

// SeedScore ranks a chart for the candidate pool without a reference
// chart: balanced elemental spread first, nudged by star markers. An even
// spread of 20% per element scores 100 before adjustments.
func SeedScore(p model.ElementalProfile) float64 {
	score := 100.0
	for _, e := range model.Elements() {
		score -= math.Abs(p.Concentration[e] - 20.0)
	}
	for _, s := range p.Stars {
		score += seedStarAdjust[s]
	}
	return round1(score)
}
