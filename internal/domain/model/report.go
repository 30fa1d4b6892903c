package model

// Analysis is the complete self-analysis of one person: the normalized
// moment, the derived chart, and its elemental profile.
type Analysis struct {
	Moment  NormalizedMoment `json:"moment"`
	Pillars FourPillars      `json:"pillars"`
	Profile ElementalProfile `json:"profile"`
}

// PairOutcome is the full result of matching two people.
type PairOutcome struct {
	PillarsA FourPillars      `json:"pillars_a"`
	PillarsB FourPillars      `json:"pillars_b"`
	ProfileA ElementalProfile `json:"profile_a"`
	ProfileB ElementalProfile `json:"profile_b"`
	Clash    ClashProfile     `json:"clash"`
	Result   ScoreResult      `json:"result"`
}
