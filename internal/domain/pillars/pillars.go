// Package pillars derives the four sexagenary pillars from a normalized
// birth moment.
package pillars

import (
	"fmt"

	"github.com/siuwai/hehun/internal/domain/model"
)

// Derivation constants.
const (
	// EpochYear is the earliest supported birth year.
	EpochYear = 1900

	// jdnDayOffset aligns the Julian day number with the sexagenary
	// day cycle: (JDN + 49) mod 60 indexes the day pillar.
	jdnDayOffset = 49

	// yearCycleOffset aligns the civil year with the sexagenary year
	// cycle: 1984 (甲子) satisfies (1984 - 4) mod 60 == 0.
	yearCycleOffset = 4
)

// jieConstants hold the tabulated solar-term day constants per civil
// month, one constant for the 21st century and one for the 20th.
var jieConstants = [13][2]float64{
	{},                 // index 0 unused
	{5.4055, 6.11},     // 小寒
	{3.87, 4.6295},     // 立春
	{5.63, 6.318},      // 驚蟄
	{4.81, 5.59},       // 清明
	{5.52, 6.318},      // 立夏
	{5.678, 6.5},       // 芒種
	{7.108, 7.928},     // 小暑
	{7.5, 8.35},        // 立秋
	{7.646, 8.44},      // 白露
	{8.318, 9.098},     // 寒露
	{7.438, 8.218},     // 立冬
	{7.18, 7.9},        // 大雪
}

// monthBranchFrom maps a civil month to the month branch that begins at
// that month's jie: January turns 丑, February turns 寅, ... December 子.
var monthBranchFrom = [13]model.Branch{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 0}

// Derive computes the four pillars for a normalized moment. It is a pure
// function of its input; deriving twice always yields identical pillars.
func Derive(m model.NormalizedMoment) (model.FourPillars, error) {
	if m.Year < EpochYear {
		return model.FourPillars{}, fmt.Errorf("year %d: %w", m.Year, ErrBeforeEpoch)
	}

	yearStem, yearBranch := yearPillar(m.Year, m.Month, m.Day)
	monthStem, monthBranch := monthPillar(yearStem, m.Year, m.Month, m.Day)

	dayIndex := (julianDayNumber(m.Year, m.Month, m.Day) + jdnDayOffset) % 60
	dayStem := model.Stem(dayIndex % 10)
	dayBranch := model.Branch(dayIndex % 12)

	hourBranch := model.Branch(((m.Hour + 1) / 2) % 12)
	// five-rats rule: the 子 hour stem follows from the day stem
	hourStem := model.Stem(((int(dayStem)%5)*2 + int(hourBranch)) % 10)

	return model.FourPillars{
		Year:  model.Pillar{Stem: yearStem, Branch: yearBranch},
		Month: model.Pillar{Stem: monthStem, Branch: monthBranch},
		Day:   model.Pillar{Stem: dayStem, Branch: dayBranch},
		Hour:  model.Pillar{Stem: hourStem, Branch: hourBranch},
	}, nil
}

// yearPillar resolves the sexagenary year with the Lichun boundary: dates
// before Lichun still belong to the previous sexagenary year.
func yearPillar(y, m, d int) (model.Stem, model.Branch) {
	sy := y
	if m < 2 || (m == 2 && d < JieDay(y, 2)) {
		sy--
	}
	return model.Stem(mod(sy-yearCycleOffset, 10)), model.Branch(mod(sy-yearCycleOffset, 12))
}

// monthPillar resolves the month branch from the jie windows and the month
// stem by the five-tigers rule anchored on the year stem.
func monthPillar(yearStem model.Stem, y, m, d int) (model.Stem, model.Branch) {
	var branch model.Branch
	if d >= JieDay(y, m) {
		branch = monthBranchFrom[m]
	} else {
		prev := m - 1
		if prev < 1 {
			prev = 12
		}
		branch = monthBranchFrom[prev]
	}
	// month number with 寅 as the first month
	monthNum := mod(int(branch)-2, 12) + 1
	start := ((int(yearStem)%5)*2 + 2) % 10
	stem := model.Stem((start + monthNum - 1) % 10)
	return stem, branch
}

// JieDay approximates the civil day of month on which the month's jie
// (sectional solar term) falls, using the tabulated century constants.
func JieDay(year, month int) int {
	var y int
	var c float64
	if year >= 2000 {
		y = year - 2000
		c = jieConstants[month][0]
	} else {
		y = year - 1900
		c = jieConstants[month][1]
	}
	return int(float64(y)*0.2422+c) - y/4
}

// julianDayNumber converts a Gregorian calendar date to its Julian day
// number. Integer division truncates toward zero, matching the classical
// Fliegel-Van Flandern formulation for positive years.
func julianDayNumber(y, m, d int) int {
	a := (m - 14) / 12
	return (1461*(y+4800+a))/4 + (367*(m-2-12*a))/12 - (3*((y+4900+a)/100))/4 + d - 32075
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
