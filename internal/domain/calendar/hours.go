package calendar

import (
	"strings"

	"github.com/siuwai/hehun/internal/domain/model"
)

// hourGuess maps a fuzzy time-of-day phrase to a representative clock hour.
type hourGuess struct {
	keywords []string
	hour     int
}

// guesses are checked in order; earlier entries win on overlapping phrases.
var guesses = []hourGuess{
	{[]string{"凌晨", "半夜", "midnight"}, 1},
	{[]string{"清晨", "黎明", "dawn", "early morning"}, 6},
	{[]string{"早上", "上午", "morning"}, 9},
	{[]string{"中午", "正午", "noon", "midday"}, 12},
	{[]string{"下午", "afternoon"}, 15},
	{[]string{"傍晚", "黄昏", "黃昏", "dusk", "evening"}, 18},
	{[]string{"晚上", "夜晚", "night"}, 21},
}

// EstimateHour maps a fuzzy hour description to a representative hour with
// estimated confidence. The boolean is false when nothing matched.
func EstimateHour(desc string) (int, model.Confidence, bool) {
	d := strings.ToLower(strings.TrimSpace(desc))
	if d == "" {
		return 0, "", false
	}
	for _, g := range guesses {
		for _, kw := range g.keywords {
			if strings.Contains(d, kw) {
				return g.hour, model.ConfidenceEstimated, true
			}
		}
	}
	return 0, "", false
}
