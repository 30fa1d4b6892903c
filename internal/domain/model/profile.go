package model

// Pattern classifies the day master's standing within its own chart.
type Pattern string

// Day-master patterns.
const (
	PatternSubordinate Pattern = "subordinate"
	PatternWeak        Pattern = "weak"
	PatternNeutral     Pattern = "neutral"
	PatternStrong      Pattern = "strong"
	PatternDominant    Pattern = "dominant"
	PatternSpecial     Pattern = "special"
)

// Valid reports whether the pattern is one the profile builder produces.
func (p Pattern) Valid() bool {
	switch p {
	case PatternSubordinate, PatternWeak, PatternNeutral, PatternStrong, PatternDominant, PatternSpecial:
		return true
	}
	return false
}

// Star is a named auspicious or inauspicious marker.
type Star string

// Stars recognized by the profile builder.
const (
	StarHongLuan  Star = "紅鸞"
	StarTianXi    Star = "天喜"
	StarTianYi    Star = "天乙貴人"
	StarWenChang  Star = "文昌"
	StarJiangXing Star = "將星"
	StarYangRen   Star = "羊刃"
	StarGuChen    Star = "孤辰"
	StarGuaSu     Star = "寡宿"
)

// ElementalProfile summarizes a chart's elemental makeup.
type ElementalProfile struct {
	// Concentration holds each element's share of the chart as a
	// percentage; the five values sum to 100 within rounding.
	Concentration map[Element]float64 `json:"concentration"`

	// DayElement is the element of the day stem.
	DayElement Element `json:"day_element"`

	// Strength is the day-master strength score in [0, 100].
	Strength float64 `json:"strength"`

	Pattern Pattern `json:"pattern"`

	// Favorable elements in canonical element order.
	Favorable []Element `json:"favorable"`

	// Stars present in the chart, in fixed table order.
	Stars []Star `json:"stars"`
}

// HasStar reports whether the profile carries the given marker.
func (p ElementalProfile) HasStar(s Star) bool {
	for _, have := range p.Stars {
		if have == s {
			return true
		}
	}
	return false
}
