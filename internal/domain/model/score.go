package model

// RelationshipModel names the predicted dynamic of a pairing.
type RelationshipModel string

// Relationship models from worst to best.
const (
	ModelAvoid    RelationshipModel = "忌避型"
	ModelTrouble  RelationshipModel = "問題型"
	ModelGrinding RelationshipModel = "磨合型"
	ModelStable   RelationshipModel = "穩定型"
	ModelBalanced RelationshipModel = "平衡型"
)

// ScoreResult is the outcome of scoring one pair of charts.
type ScoreResult struct {
	// Score is the final compatibility score in [20, 98], one decimal.
	Score float64 `json:"score"`

	Model RelationshipModel `json:"model"`

	// ModelDescription explains the relationship model.
	ModelDescription string `json:"model_description"`

	// Rating is the label of the score band the final score falls in.
	Rating string `json:"rating"`

	// RatingDescription explains the rating band.
	RatingDescription string `json:"rating_description"`

	// ConfidenceFactor is the averaged confidence multiplier applied
	// at the confidence stage.
	ConfidenceFactor float64 `json:"confidence_factor"`

	// Steps is the ordered audit trail, one entry per pipeline stage.
	Steps []string `json:"steps"`
}

// Candidate is a pre-scored pool member available to year-window searches.
type Candidate struct {
	ID      string           `json:"id"`
	Input   BirthInput       `json:"input"`
	Pillars FourPillars      `json:"pillars"`
	Profile ElementalProfile `json:"profile"`

	// PreScore is the reference-independent seed score used to order
	// the pool; higher is examined first.
	PreScore float64 `json:"pre_score"`
}

// Match pairs a candidate with its score against the reference chart.
type Match struct {
	Candidate Candidate   `json:"candidate"`
	Result    ScoreResult `json:"result"`
}

// SeedJob asks a pool worker to derive and insert one candidate.
type SeedJob struct {
	ID    string     `json:"id"`
	Input BirthInput `json:"input"`
}
