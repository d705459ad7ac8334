package generic

import (
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// PERIOD - A closed payroll accounting interval
// =============================================================================

// Period is a closed interval [Start, End] aligned to a payroll cycle:
// a whole month, or one half of a month (1-15, 16-last day).
type Period struct {
	Start TimePoint
	End   TimePoint
}

// Days returns the number of calendar days in the period.
func (p Period) Days() int {
	return int(p.End.Time.Sub(p.Start.Time).Hours()/24) + 1
}

// String returns a string representation of the period.
func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}

// =============================================================================
// CYCLE - Recurrence of pay periods
// =============================================================================

// Cycle is the payroll cycle of a batch. It is fixed for every record in it.
type Cycle string

const (
	CycleMonthly     Cycle = "monthly"      // 1st - last day
	CycleSemiMonthly Cycle = "semi_monthly" // 1st - 15th, 16th - last day
)

// Share of a full month's salary difference paid per period.
var (
	MonthlyPeriodFactor     = decimal.NewFromInt(1)
	SemiMonthlyPeriodFactor = decimal.NewFromFloat(0.5)
)

// Half-month boundaries.
const (
	FirstHalfEndDay    = 15
	SecondHalfStartDay = 16
)

// ParseCycle maps user input to a Cycle.
func ParseCycle(s string) (Cycle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "monthly", "mensual", "month":
		return CycleMonthly, nil
	case "semi_monthly", "semimonthly", "semi-monthly", "quincenal", "biweekly":
		return CycleSemiMonthly, nil
	default:
		return "", &CycleError{Input: s}
	}
}

// Valid reports whether c is a supported cycle.
func (c Cycle) Valid() bool {
	return c == CycleMonthly || c == CycleSemiMonthly
}

// Factor returns the per-period share of a monthly amount. Unknown cycles
// pay nothing.
func (c Cycle) Factor() decimal.Decimal {
	switch c {
	case CycleMonthly:
		return MonthlyPeriodFactor
	case CycleSemiMonthly:
		return SemiMonthlyPeriodFactor
	default:
		return decimal.Zero
	}
}

// =============================================================================
// SEGMENTER - Splits a date range into closed periods
// =============================================================================

// Segment parses both dates and returns the closed periods of cycle fully
// covered by [start, end]. Unparseable dates yield no periods.
func Segment(start, end string, cycle Cycle) []Period {
	from, err := ParseDate(start)
	if err != nil {
		return nil
	}
	to, err := ParseDate(end)
	if err != nil {
		return nil
	}
	return SegmentDates(from, to, cycle)
}

// SegmentDates walks every calendar month from start's month to end's month
// and keeps the periods the range covers completely. A period that touches
// the start month must begin on or after start; one that touches the end
// month must finish on or before end. Partial periods at either edge are
// dropped.
func SegmentDates(start, end TimePoint, cycle Cycle) []Period {
	if !cycle.Valid() || end.Before(start) {
		return nil
	}

	var periods []Period
	last := StartOfMonth(end.Year(), end.Month())
	for month := StartOfMonth(start.Year(), start.Month()); month.BeforeOrEqual(last); month = month.AddMonths(1) {
		monthEnd := EndOfMonth(month.Year(), month.Month())
		isStart := month.SameMonth(start)
		isEnd := month.SameMonth(end)

		covers := func(firstDay, lastDay int) bool {
			if isStart && start.Day() > firstDay {
				return false
			}
			if isEnd && end.Day() < lastDay {
				return false
			}
			return true
		}

		switch cycle {
		case CycleMonthly:
			if covers(1, monthEnd.Day()) {
				periods = append(periods, Period{Start: month, End: monthEnd})
			}

		case CycleSemiMonthly:
			if covers(1, FirstHalfEndDay) {
				periods = append(periods, Period{
					Start: month,
					End:   NewTimePoint(month.Year(), month.Month(), FirstHalfEndDay),
				})
			}
			if covers(SecondHalfStartDay, monthEnd.Day()) {
				periods = append(periods, Period{
					Start: NewTimePoint(month.Year(), month.Month(), SecondHalfStartDay),
					End:   monthEnd,
				})
			}
		}
	}
	return periods
}
