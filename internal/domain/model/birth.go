package model

// Gender of the chart owner.
type Gender string

// Supported genders.
const (
	Male   Gender = "male"
	Female Gender = "female"
)

// Valid reports whether the gender value is one of the supported constants.
func (g Gender) Valid() bool {
	return g == Male || g == Female
}

// Confidence grades how reliable a birth moment is.
type Confidence string

// Confidence grades from most to least reliable.
const (
	ConfidenceHigh      Confidence = "high"
	ConfidenceMedium    Confidence = "medium"
	ConfidenceLow       Confidence = "low"
	ConfidenceEstimated Confidence = "estimated"
)

// Factor returns the score multiplier attached to the grade.
func (c Confidence) Factor() float64 {
	switch c {
	case ConfidenceHigh:
		return 0.95
	case ConfidenceMedium:
		return 0.90
	case ConfidenceLow:
		return 0.85
	case ConfidenceEstimated:
		return 0.80
	}
	return 0
}

// Valid reports whether the confidence value is a known grade.
func (c Confidence) Valid() bool {
	return c.Factor() > 0
}

// BirthInput is a civil birth moment as supplied by a client.
type BirthInput struct {
	Year   int `json:"year"`
	Month  int `json:"month"`
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`

	// Longitude of the birthplace in degrees east; zero means unknown
	// and falls back to the configured default.
	Longitude float64 `json:"longitude,omitempty"`

	Gender     Gender     `json:"gender"`
	Confidence Confidence `json:"confidence"`
}

// NormalizedMoment is a birth moment after true-solar-time correction and
// the late-night day-boundary rule have been applied.
type NormalizedMoment struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
	Hour  int `json:"hour"`

	Gender     Gender     `json:"gender"`
	Confidence Confidence `json:"confidence"`
}
