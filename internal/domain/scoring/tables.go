package scoring

import "github.com/siuwai/hehun/internal/domain/model"

// structureBase is the stage-1 base score per dominant relation.
var structureBase = map[model.Relation]float64{
	model.RelationStemCombination: 84.0,
	model.RelationSixHarmony:      80.0,
	model.RelationThreeHarmony:    76.0,
	model.RelationSameStem:        70.0,
	model.RelationSameBranch:      66.0,
	model.RelationNone:            68.0,
}

// patternPair is an unordered pattern pair, stored in sorted string order.
type patternPair struct {
	a, b model.Pattern
}

func pairPatterns(a, b model.Pattern) patternPair {
	if a > b {
		a, b = b, a
	}
	return patternPair{a, b}
}

// patternAdjust tweaks the base by how the two day masters complement
// each other. Pairs absent from the table fall back to -1 when equal and
// 0 otherwise.
var patternAdjust = map[patternPair]float64{
	pairPatterns(model.PatternNeutral, model.PatternNeutral):      2.0,
	pairPatterns(model.PatternStrong, model.PatternWeak):          3.0,
	pairPatterns(model.PatternWeak, model.PatternWeak):            -2.0,
	pairPatterns(model.PatternStrong, model.PatternStrong):        -3.0,
	pairPatterns(model.PatternDominant, model.PatternDominant):    -6.0,
	pairPatterns(model.PatternDominant, model.PatternSubordinate): 4.0,
	pairPatterns(model.PatternNeutral, model.PatternStrong):       1.0,
	pairPatterns(model.PatternNeutral, model.PatternWeak):         1.0,
}

// ratingBand is one row of the rating ladder.
type ratingBand struct {
	from  float64
	label string
	desc  string
}

// ratingBands run from best to worst; the first band whose threshold the
// score meets wins.
var ratingBands = []ratingBand{
	{93, "萬中無一", "萬中無一的絕配，天作之合"},
	{85, "上等婚配", "上等婚配，五行互補，情投意合"},
	{75, "主流成功", "主流成功組合，相處融洽"},
	{68, "普通可行", "普通可行，平淡中見真情"},
	{60, "需要努力", "需要雙方經營，用心磨合"},
	{55, "不建議", "不建議，分歧多於共識"},
	{45, "強烈不建議", "強烈不建議，衝突難以調和"},
	{0, "極不相配", "極不相配，命理結構相剋"},
}

// modelDescriptions explain each relationship model.
var modelDescriptions = map[model.RelationshipModel]string{
	model.ModelBalanced: "五行平衡互補，彼此成就，順境同行",
	model.ModelStable:   "結構穩固，相處安穩，細水長流",
	model.ModelGrinding: "需要磨合，包容差異方能長久",
	model.ModelTrouble:  "問題較多，需正視分歧，謹慎經營",
	model.ModelAvoid:    "命理相沖，勉強結合恐多波折",
}

// ratingFor returns the band label and description for a final score.
func ratingFor(score float64) (string, string) {
	for _, b := range ratingBands {
		if score >= b.from {
			return b.label, b.desc
		}
	}
	last := ratingBands[len(ratingBands)-1]
	return last.label, last.desc
}
