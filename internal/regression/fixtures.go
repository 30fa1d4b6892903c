// Package regression holds the calibrated compatibility fixtures and a
// checker that verifies a running service still reproduces them.
package regression

import "github.com/siuwai/hehun/internal/domain/model"

// Fixture is one calibrated pair with the band its score must land in.
type Fixture struct {
	Name     string
	A        model.BirthInput
	B        model.BirthInput
	MinScore float64
	MaxScore float64
	Model    model.RelationshipModel
}

func birth(year, month, day, hour int, lon float64, g model.Gender, c model.Confidence) model.BirthInput {
	return model.BirthInput{
		Year:       year,
		Month:      month,
		Day:        day,
		Hour:       hour,
		Longitude:  lon,
		Gender:     g,
		Confidence: c,
	}
}

// Fixtures are calibrated against the scoring pipeline; expected scores
// carry a tolerance band and the relationship model is exact.
var Fixtures = []Fixture{
	{
		Name:     "harmonious mid-band pair",
		A:        birth(1989, 4, 12, 11, 0, model.Male, model.ConfidenceHigh),
		B:        birth(1990, 6, 18, 13, 0, model.Female, model.ConfidenceHigh),
		MinScore: 55.1, MaxScore: 63.1,
		Model: model.ModelGrinding,
	},
	{
		Name:     "stem combination near-ideal pair",
		A:        birth(1988, 8, 8, 8, 0, model.Male, model.ConfidenceHigh),
		B:        birth(1988, 5, 15, 8, 0, model.Female, model.ConfidenceHigh),
		MinScore: 86.0, MaxScore: 94.0,
		Model: model.ModelBalanced,
	},
	{
		Name:     "heavy month clash pair",
		A:        birth(1990, 1, 1, 12, 0, model.Male, model.ConfidenceHigh),
		B:        birth(1990, 7, 1, 12, 0, model.Female, model.ConfidenceHigh),
		MinScore: 44.0, MaxScore: 48.0,
		Model: model.ModelAvoid,
	},
	{
		Name:     "five year gap pair",
		A:        birth(1985, 2, 14, 12, 0, model.Male, model.ConfidenceHigh),
		B:        birth(1986, 8, 15, 12, 0, model.Female, model.ConfidenceHigh),
		MinScore: 50.5, MaxScore: 58.5,
		Model: model.ModelGrinding,
	},
	{
		Name:     "older woman pair",
		A:        birth(1990, 1, 5, 12, 0, model.Male, model.ConfidenceHigh),
		B:        birth(1988, 5, 9, 12, 0, model.Female, model.ConfidenceHigh),
		MinScore: 44.2, MaxScore: 48.9,
		Model: model.ModelAvoid,
	},
	{
		Name:     "same year opposite season pair",
		A:        birth(1992, 6, 6, 12, 0, model.Male, model.ConfidenceHigh),
		B:        birth(1992, 12, 6, 12, 0, model.Female, model.ConfidenceHigh),
		MinScore: 60.6, MaxScore: 67.9,
		Model: model.ModelGrinding,
	},
	{
		Name:     "twenty year gap pair",
		A:        birth(1975, 3, 9, 12, 0, model.Male, model.ConfidenceHigh),
		B:        birth(1995, 4, 11, 12, 0, model.Female, model.ConfidenceHigh),
		MinScore: 39.0, MaxScore: 47.0,
		Model: model.ModelAvoid,
	},
	{
		Name:     "identical chart fu yin pair",
		A:        birth(1990, 1, 1, 12, 0, model.Male, model.ConfidenceHigh),
		B:        birth(1990, 1, 1, 12, 0, model.Female, model.ConfidenceHigh),
		MinScore: 50.0, MaxScore: 54.0,
		Model: model.ModelAvoid,
	},
	{
		Name:     "late night hour pair",
		A:        birth(1984, 12, 15, 2, 0, model.Male, model.ConfidenceHigh),
		B:        birth(1990, 6, 20, 12, 0, model.Female, model.ConfidenceHigh),
		MinScore: 39.8, MaxScore: 47.8,
		Model: model.ModelAvoid,
	},
	{
		Name:     "auspicious eights pair",
		A:        birth(1988, 8, 8, 8, 0, model.Male, model.ConfidenceHigh),
		B:        birth(1989, 9, 9, 9, 0, model.Female, model.ConfidenceHigh),
		MinScore: 70.1, MaxScore: 77.1,
		Model: model.ModelBalanced,
	},
	{
		Name:     "medium confidence millennium pair",
		A:        birth(2000, 1, 1, 12, 0, model.Male, model.ConfidenceMedium),
		B:        birth(2001, 1, 1, 12, 0, model.Female, model.ConfidenceMedium),
		MinScore: 32.9, MaxScore: 40.9,
		Model: model.ModelAvoid,
	},
	{
		Name:     "ten year gap morning pair",
		A:        birth(1980, 3, 15, 10, 0, model.Male, model.ConfidenceHigh),
		B:        birth(1990, 6, 20, 14, 0, model.Female, model.ConfidenceHigh),
		MinScore: 55.5, MaxScore: 63.5,
		Model: model.ModelGrinding,
	},
	{
		Name:     "low confidence day boundary pair",
		A:        birth(2000, 1, 1, 23, 0, model.Male, model.ConfidenceLow),
		B:        birth(2001, 6, 15, 0, 0, model.Female, model.ConfidenceLow),
		MinScore: 40.2, MaxScore: 48.2,
		Model: model.ModelAvoid,
	},
	{
		Name:     "explicit longitude pair",
		A:        birth(2005, 4, 4, 12, 114.17, model.Male, model.ConfidenceHigh),
		B:        birth(2006, 5, 5, 12, 116.4, model.Female, model.ConfidenceHigh),
		MinScore: 59.2, MaxScore: 67.2,
		Model: model.ModelGrinding,
	},
	{
		Name:     "six harmony spring autumn pair",
		A:        birth(1990, 3, 3, 12, 0, model.Male, model.ConfidenceHigh),
		B:        birth(1990, 9, 3, 12, 0, model.Female, model.ConfidenceHigh),
		MinScore: 85.2, MaxScore: 93.2,
		Model: model.ModelBalanced,
	},
	{
		Name:     "estimated hours pair",
		A:        birth(1990, 6, 16, 12, 0, model.Male, model.ConfidenceEstimated),
		B:        birth(1991, 7, 17, 12, 0, model.Female, model.ConfidenceEstimated),
		MinScore: 36.4, MaxScore: 44.4,
		Model: model.ModelAvoid,
	},
	{
		Name:     "afternoon hours pair",
		A:        birth(1995, 5, 15, 14, 0, model.Male, model.ConfidenceHigh),
		B:        birth(1996, 8, 20, 16, 0, model.Female, model.ConfidenceHigh),
		MinScore: 43.1, MaxScore: 48.0,
		Model: model.ModelAvoid,
	},
	{
		Name:     "christmas and midsummer pair",
		A:        birth(1988, 12, 25, 8, 0, model.Male, model.ConfidenceHigh),
		B:        birth(1989, 6, 18, 12, 0, model.Female, model.ConfidenceHigh),
		MinScore: 60.6, MaxScore: 68.6,
		Model: model.ModelStable,
	},
	{
		Name:     "valentine pair",
		A:        birth(1990, 2, 14, 12, 0, model.Male, model.ConfidenceHigh),
		B:        birth(1990, 8, 14, 12, 0, model.Female, model.ConfidenceHigh),
		MinScore: 61.2, MaxScore: 69.2,
		Model: model.ModelStable,
	},
	{
		Name:     "millennium half year pair",
		A:        birth(2000, 1, 1, 12, 0, model.Male, model.ConfidenceHigh),
		B:        birth(2000, 7, 1, 12, 0, model.Female, model.ConfidenceHigh),
		MinScore: 39.3, MaxScore: 47.3,
		Model: model.ModelTrouble,
	},
}
