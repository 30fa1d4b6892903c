// Package calendar normalizes civil birth moments into the solar-corrected
// moments the pillar deriver works from.
package calendar

import (
	"fmt"

	"github.com/siuwai/hehun/internal/domain/model"
)

// Normalization constants.
const (
	// ReferenceMeridian is the meridian civil time is anchored to.
	ReferenceMeridian = 120.0

	// DefaultLongitude is assumed when a birth input carries none.
	DefaultLongitude = 114.17

	// minutesPerDegree converts a longitude offset to clock minutes.
	minutesPerDegree = 4.0

	// lateNightHour starts the next sexagenary day at 23:00.
	lateNightHour = 23

	minutesPerDay = 24 * 60
)

// Normalizer converts birth inputs to normalized moments.
type Normalizer struct {
	defaultLongitude float64
}

// Option applies a configuration option to the Normalizer.
type Option func(*Normalizer)

// WithDefaultLongitude overrides the longitude assumed for inputs that
// carry none.
func WithDefaultLongitude(lon float64) Option {
	return func(n *Normalizer) {
		if lon != 0 {
			n.defaultLongitude = lon
		}
	}
}

// New creates a Normalizer with configuration options.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		defaultLongitude: DefaultLongitude,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize validates the input, applies the true-solar-time correction
// against the reference meridian, and applies the 23:00 day-boundary rule.
// The confidence grade is carried through unchanged; the same input always
// yields the same moment.
func (n *Normalizer) Normalize(in model.BirthInput) (model.NormalizedMoment, error) {
	if err := validate(in); err != nil {
		return model.NormalizedMoment{}, err
	}

	lon := in.Longitude
	if lon == 0 {
		lon = n.defaultLongitude
	}

	offset := (lon - ReferenceMeridian) * minutesPerDegree
	total := float64(in.Hour*60+in.Minute) + offset

	y, m, d := in.Year, in.Month, in.Day
	switch {
	case total < 0:
		total += minutesPerDay
		y, m, d = prevDay(y, m, d)
	case total >= minutesPerDay:
		total -= minutesPerDay
		y, m, d = nextDay(y, m, d)
	}
	hour := int(total / 60)

	// 23:00 onward belongs to the following sexagenary day; only the
	// date advances so the hour branch still resolves to 子.
	if hour >= lateNightHour {
		y, m, d = nextDay(y, m, d)
	}

	return model.NormalizedMoment{
		Year:       y,
		Month:      m,
		Day:        d,
		Hour:       hour,
		Gender:     in.Gender,
		Confidence: in.Confidence,
	}, nil
}

func validate(in model.BirthInput) error {
	switch {
	case in.Month < 1 || in.Month > 12:
		return fmt.Errorf("month %d out of range: %w", in.Month, ErrInvalidBirthData)
	case in.Day < 1 || in.Day > daysInMonth(in.Year, in.Month):
		return fmt.Errorf("day %d out of range: %w", in.Day, ErrInvalidBirthData)
	case in.Hour < 0 || in.Hour > 23:
		return fmt.Errorf("hour %d out of range: %w", in.Hour, ErrInvalidBirthData)
	case in.Minute < 0 || in.Minute > 59:
		return fmt.Errorf("minute %d out of range: %w", in.Minute, ErrInvalidBirthData)
	case !in.Gender.Valid():
		return fmt.Errorf("gender %q: %w", in.Gender, ErrInvalidBirthData)
	case !in.Confidence.Valid():
		return fmt.Errorf("confidence %q: %w", in.Confidence, ErrInvalidBirthData)
	}
	return nil
}

func prevDay(y, m, d int) (int, int, int) {
	d--
	if d < 1 {
		m--
		if m < 1 {
			m, y = 12, y-1
		}
		d = daysInMonth(y, m)
	}
	return y, m, d
}

func nextDay(y, m, d int) (int, int, int) {
	if d < daysInMonth(y, m) {
		return y, m, d + 1
	}
	m++
	if m > 12 {
		return y + 1, 1, 1
	}
	return y, m, 1
}

var monthDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func daysInMonth(y, m int) int {
	if m == 2 && isLeap(y) {
		return 29
	}
	return monthDays[m-1]
}

func isLeap(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}
