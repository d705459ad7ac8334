/*
Package retro computes retroactive salary adjustments.

PURPOSE:
  Given an employee's previous and new monthly salary, the backdated range
  and the overtime hours worked in it, produce the itemized payment lines a
  reviewer reads and the per-period rows a payroll import consumes.

BUSINESS RULES (all defined in this file):
  - Salary difference per period = (new - previous) x cycle factor
    (1 for monthly, 0.5 for semi-monthly), identical for every period.
  - Hourly difference = salary difference / 240.
  - Overtime difference = hourly difference x category factor x hours,
    attributed to the FIRST period of the range only.
  - Amounts are rounded once, half away from zero, after all arithmetic.
  - Only positive rounded amounts produce lines.

SEE ALSO:
  - calculator.go: Calculate, the per-record engine
  - batch.go: CalculateBatch, parallel evaluation of imported rows
  - generic/period.go: the period segmenter
*/
package retro

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"github.com/warp/retro-payroll/generic"
)

// =============================================================================
// BUSINESS CONSTANTS
// =============================================================================

// MonthlyHoursDivisor converts a monthly salary into an hourly rate.
var MonthlyHoursDivisor = decimal.NewFromInt(240)

// OvertimeFirstPeriodOnly records that overtime hours are reported once for
// the whole retroactive range and paid on its first period, never repeated.
const OvertimeFirstPeriodOnly = true

// SalaryConcept labels the per-period salary line.
const SalaryConcept = "Retroactivo sueldo"

// =============================================================================
// OVERTIME CATEGORIES
// =============================================================================

// Category is an overtime category with a fixed pay multiplier.
type Category string

const (
	CategoryDay          Category = "HED"  // Hora extra diurna
	CategoryNight        Category = "HEN"  // Hora extra nocturna
	CategoryHolidayDay   Category = "HEFD" // Hora extra festiva diurna
	CategoryHolidayNight Category = "HEFN" // Hora extra festiva nocturna

	// CategoryNightSurcharge belongs to an earlier formula set and is not
	// paid by the period-aware calculation.
	// TODO: confirm with payroll whether RN was dropped on purpose when period
	// support was added; if not, add it to ActiveCategories with an RN_CANTIDAD column.
	CategoryNightSurcharge Category = "RN"
)

var categoryFactors = map[Category]decimal.Decimal{
	CategoryDay:            decimal.RequireFromString("1.25"),
	CategoryNight:          decimal.RequireFromString("1.75"),
	CategoryHolidayDay:     decimal.RequireFromString("2.05"),
	CategoryHolidayNight:   decimal.RequireFromString("2.55"),
	CategoryNightSurcharge: decimal.RequireFromString("0.35"),
}

var categoryLabels = map[Category]string{
	CategoryDay:            "Retroactivo hora extra diurna",
	CategoryNight:          "Retroactivo hora extra nocturna",
	CategoryHolidayDay:     "Retroactivo hora extra festiva diurna",
	CategoryHolidayNight:   "Retroactivo hora extra festiva nocturna",
	CategoryNightSurcharge: "Retroactivo recargo nocturno",
}

var activeCategories = []Category{
	CategoryDay,
	CategoryNight,
	CategoryHolidayDay,
	CategoryHolidayNight,
}

// ActiveCategories returns the categories paid by Calculate, in output order.
func ActiveCategories() []Category {
	out := make([]Category, len(activeCategories))
	copy(out, activeCategories)
	return out
}

// Factor returns the category's pay multiplier.
func (c Category) Factor() decimal.Decimal { return categoryFactors[c] }

// Label returns the concept label used on detail lines.
func (c Category) Label() string { return categoryLabels[c] }

// =============================================================================
// INPUT
// =============================================================================

// Input is one employee record with every numeric field already parsed.
type Input struct {
	ID             string // CEDULA
	Name           string // NOMBRE
	SecondaryID    string // CODIGO_FICHA_COLABORADOR, passed through
	PreviousSalary decimal.Decimal
	NewSalary      decimal.Decimal
	StartDate      string
	EndDate        string
	Overtime       map[Category]decimal.Decimal
}

// Hours returns the worked quantity for a category, zero when absent.
func (in Input) Hours(c Category) decimal.Decimal {
	if q, ok := in.Overtime[c]; ok {
		return q
	}
	return decimal.Zero
}

// Record is one employee record as raw cell text.
type Record struct {
	ID             string
	Name           string
	SecondaryID    string
	PreviousSalary string
	NewSalary      string
	StartDate      string
	EndDate        string
	Overtime       map[Category]string
}

// ParseRecord converts raw cells into an Input. Every numeric field goes
// through generic.DecimalOrZero, so blank or malformed cells become zero.
func ParseRecord(r Record) Input {
	in := Input{
		ID:             r.ID,
		Name:           r.Name,
		SecondaryID:    r.SecondaryID,
		PreviousSalary: generic.DecimalOrZero(r.PreviousSalary),
		NewSalary:      generic.DecimalOrZero(r.NewSalary),
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		Overtime:       make(map[Category]decimal.Decimal, len(activeCategories)),
	}
	for _, c := range activeCategories {
		in.Overtime[c] = generic.DecimalOrZero(r.Overtime[c])
	}
	return in
}

// =============================================================================
// OUTPUT
// =============================================================================

// DetailLine is one itemized payment for human review.
type DetailLine struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Concept string `json:"concept"`
	Detail  string `json:"detail"`
	Amount  int64  `json:"amount"`
}

// OvertimeField holds a category's summary amount and originating hours.
type OvertimeField struct {
	Amount   int64           `json:"amount"`
	Quantity decimal.Decimal `json:"quantity"`
}

// MarshalJSON writes Quantity as a JSON number, matching Amount.
func (f OvertimeField) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Amount   int64       `json:"amount"`
		Quantity json.Number `json:"quantity"`
	}{f.Amount, json.Number(f.Quantity.String())})
}

// SummaryRow is one payroll import row per period. Fields that do not apply
// to the period stay at zero.
type SummaryRow struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	SecondaryID  string        `json:"secondary_id"`
	Period       string        `json:"period"`
	Salary       int64         `json:"salary"`
	Day          OvertimeField `json:"hed"`
	Night        OvertimeField `json:"hen"`
	HolidayDay   OvertimeField `json:"hefd"`
	HolidayNight OvertimeField `json:"hefn"`
}

// Overtime returns a pointer to the row's field for c, nil for inactive categories.
func (s *SummaryRow) Overtime(c Category) *OvertimeField {
	switch c {
	case CategoryDay:
		return &s.Day
	case CategoryNight:
		return &s.Night
	case CategoryHolidayDay:
		return &s.HolidayDay
	case CategoryHolidayNight:
		return &s.HolidayNight
	default:
		return nil
	}
}

// Result is the full output for one record.
type Result struct {
	Details   []DetailLine `json:"details"`
	Summaries []SummaryRow `json:"summaries"`
}

// Empty reports whether the record produced no periods.
func (r Result) Empty() bool { return len(r.Summaries) == 0 }
