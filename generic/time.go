package generic

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// TIME POINT - Calendar day used for period boundaries
// =============================================================================

// TimePoint is a calendar day at UTC midnight. Payroll periods never carry a
// time-of-day component.
type TimePoint struct {
	Time time.Time
}

// Constructors
func NewTimePoint(year int, month time.Month, day int) TimePoint {
	return TimePoint{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Comparison
func (tp TimePoint) Before(other TimePoint) bool        { return tp.Time.Before(other.Time) }
func (tp TimePoint) After(other TimePoint) bool         { return tp.Time.After(other.Time) }
func (tp TimePoint) BeforeOrEqual(other TimePoint) bool { return !tp.After(other) }

// AddMonths moves to the first day of the month n months away. Plain AddDate
// normalizes Jan 31 + 1 month into March, which is never what a month walk wants.
func (tp TimePoint) AddMonths(n int) TimePoint {
	return NewTimePoint(tp.Year(), tp.Month()+time.Month(n), 1)
}

// Properties
func (tp TimePoint) Year() int         { return tp.Time.Year() }
func (tp TimePoint) Month() time.Month { return tp.Time.Month() }
func (tp TimePoint) Day() int          { return tp.Time.Day() }

// SameMonth reports whether both points fall in the same calendar month.
func (tp TimePoint) SameMonth(other TimePoint) bool {
	return tp.Year() == other.Year() && tp.Month() == other.Month()
}

// String returns the ISO form, YYYY-MM-DD.
func (tp TimePoint) String() string { return tp.Time.Format("2006-01-02") }

// Format returns the payroll display form, DD/MM/YYYY.
func (tp TimePoint) Format() string { return tp.Time.Format("02/01/2006") }

// =============================================================================
// TIME UTILITIES
// =============================================================================

func StartOfMonth(year int, month time.Month) TimePoint { return NewTimePoint(year, month, 1) }
func EndOfMonth(year int, month time.Month) TimePoint {
	return TimePoint{Time: time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)}
}

// =============================================================================
// DATE FORMATS - Accepted textual date inputs
// =============================================================================

// DateFormat identifies which textual layout a date string uses.
type DateFormat int

const (
	DateFormatUnknown DateFormat = iota
	DateFormatISO                // YYYY-MM-DD
	DateFormatDayFirstHyphen     // DD-MM-YYYY
	DateFormatDayFirstSlash      // DD/MM/YYYY
)

// yearThreshold separates a leading year from a leading day in hyphenated input.
const yearThreshold = 1000

// Years outside this range do not fit the four-digit formats.
const (
	minYear = 1
	maxYear = 9999
)

func (f DateFormat) String() string {
	switch f {
	case DateFormatISO:
		return "YYYY-MM-DD"
	case DateFormatDayFirstHyphen:
		return "DD-MM-YYYY"
	case DateFormatDayFirstSlash:
		return "DD/MM/YYYY"
	default:
		return "unknown"
	}
}

// DetectDateFormat classifies s by separator. Hyphenated strings whose first
// component is greater than 1000 are ISO dates; any other hyphenated string
// is read day-first.
func DetectDateFormat(s string) (DateFormat, []int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DateFormatUnknown, nil, false
	}

	var sep string
	switch {
	case strings.Contains(s, "/"):
		sep = "/"
	case strings.Contains(s, "-"):
		sep = "-"
	default:
		return DateFormatUnknown, nil, false
	}

	parts := strings.Split(s, sep)
	if len(parts) != 3 {
		return DateFormatUnknown, nil, false
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return DateFormatUnknown, nil, false
		}
		nums[i] = n
	}

	if sep == "/" {
		return DateFormatDayFirstSlash, nums, true
	}
	if nums[0] > yearThreshold {
		return DateFormatISO, nums, true
	}
	return DateFormatDayFirstHyphen, nums, true
}

// ParseDate parses s in any accepted format. Components that do not form a
// real calendar date are rejected rather than normalized.
func ParseDate(s string) (TimePoint, error) {
	format, nums, ok := DetectDateFormat(s)
	if !ok {
		return TimePoint{}, &DateError{Input: s}
	}

	var year, month, day int
	switch format {
	case DateFormatISO:
		year, month, day = nums[0], nums[1], nums[2]
	default:
		day, month, year = nums[0], nums[1], nums[2]
	}

	if year < minYear || year > maxYear || month < 1 || month > 12 || day < 1 {
		return TimePoint{}, &DateError{Input: s, Format: format}
	}
	if day > EndOfMonth(year, time.Month(month)).Day() {
		return TimePoint{}, &DateError{Input: s, Format: format}
	}
	return NewTimePoint(year, time.Month(month), day), nil
}

// DateError reports a date string that could not be parsed.
type DateError struct {
	Input  string
	Format DateFormat
}

func (e *DateError) Error() string {
	if e.Format == DateFormatUnknown {
		return fmt.Sprintf("invalid date %q: unrecognized format", e.Input)
	}
	return fmt.Sprintf("invalid date %q: not a calendar date in %s", e.Input, e.Format)
}

func (e *DateError) Unwrap() error {
	return ErrInvalidDate
}
