/*
Package generic provides the calendar and money primitives of the
retroactive payroll engine.

PURPOSE:
  This package knows nothing about salaries or overtime. It turns date
  strings into calendar days, calendar ranges into closed payroll periods,
  and loosely typed spreadsheet cells into exact decimal values.

KEY CONCEPTS IN THIS FILE (types.go):
  - DecimalOrZero: the parse-or-default combinator for numeric cells
  - RoundCurrency: the single rounding rule applied to payable amounts

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal to avoid floating-point errors
  2. Totality: Malformed numbers become zero, they never fail a record
  3. Determinism: No clock, no randomness, no shared state

USAGE:
  periods := generic.Segment("2024-01-01", "31/03/2024", generic.CycleMonthly)
  salary := generic.DecimalOrZero(" 1100000 ")

SEE ALSO:
  - period.go: Period, Cycle and the segmenter
  - time.go: TimePoint and date format detection
*/
package generic

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// PARSE-OR-DEFAULT - Permissive numeric input
// =============================================================================

// DecimalOrZero parses s as a decimal. Blank or malformed input is zero.
func DecimalOrZero(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// DecimalOrZeroAny applies DecimalOrZero to a loosely typed value such as a
// decoded JSON field.
func DecimalOrZeroAny(v any) decimal.Decimal {
	switch x := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return x
	case string:
		return DecimalOrZero(x)
	case json.Number:
		return DecimalOrZero(x.String())
	case float64:
		return decimal.NewFromFloat(x)
	case float32:
		return decimal.NewFromFloat32(x)
	case int:
		return decimal.NewFromInt(int64(x))
	case int64:
		return decimal.NewFromInt(x)
	case int32:
		return decimal.NewFromInt32(x)
	default:
		return decimal.Zero
	}
}

// =============================================================================
// ROUNDING
// =============================================================================

// RoundCurrency rounds to whole currency units, half away from zero.
// Amounts beyond the int64 range saturate at its bounds.
func RoundCurrency(d decimal.Decimal) int64 {
	b := d.Round(0).BigInt()
	if b.IsInt64() {
		return b.Int64()
	}
	if b.Sign() < 0 {
		return math.MinInt64
	}
	return math.MaxInt64
}
