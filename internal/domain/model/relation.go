package model

// Relation is the dominant day-pillar relation between two charts.
type Relation string

// Dominant relations in precedence order.
const (
	RelationStemCombination Relation = "stem_combination"
	RelationSixHarmony      Relation = "six_harmony"
	RelationThreeHarmony    Relation = "three_harmony"
	RelationSameStem        Relation = "same_stem"
	RelationSameBranch      Relation = "same_branch"
	RelationNone            Relation = "none"
)

// Harmonious reports whether the relation is one of the bonded kinds that
// soften clash attenuation.
func (r Relation) Harmonious() bool {
	switch r {
	case RelationStemCombination, RelationSixHarmony, RelationThreeHarmony:
		return true
	}
	return false
}

// ClashProfile captures the conflict structure between two charts.
type ClashProfile struct {
	Dominant Relation `json:"dominant"`

	// Weighted is the weighted clash count over all pillar pairs.
	Weighted float64 `json:"weighted"`

	// DayClash marks a six-clash between the two day branches.
	DayClash bool `json:"day_clash"`

	// FuYin marks full eight-character identity.
	FuYin bool `json:"fu_yin"`

	// Notes lists human-readable relation descriptions in the order
	// they were found.
	Notes []string `json:"notes,omitempty"`

	// BranchesA and BranchesB are the pillar branches of each chart in
	// year, month, day, hour order, kept for downstream rescue checks.
	BranchesA [4]Branch `json:"-"`
	BranchesB [4]Branch `json:"-"`
}
