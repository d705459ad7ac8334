/*
Package factory converts tabular payroll records to and from engine types.

PURPOSE:
  The calculation core takes typed inputs and returns typed rows. The
  outside world speaks in spreadsheet columns. This package owns that
  contract in both directions:
  - Import: header + cells (or JSON objects keyed by column) -> retro.Input
  - Export: retro.SummaryRow / retro.DetailLine -> ordered cells under the
    payroll import headers

IMPORT COLUMNS (case-sensitive):
  CEDULA, NOMBRE, CODIGO_FICHA_COLABORADOR, SUELDO_ANTERIOR, SUELDO_NUEVO,
  FECHA_INICIO, FECHA_FIN, HED_CANTIDAD, HEN_CANTIDAD, HEFD_CANTIDAD,
  HEFN_CANTIDAD

  Only the two salary and two date columns are required. Missing optional
  columns read as blank cells, which the core treats as zero.

KEY FEATURES:
  - Rejects batches above the configured row ceiling before any calculation
  - Reports every missing required column at once
  - Numeric cells are never validated here; the core's parse-or-default
    policy applies to them uniformly

USAGE:
  f := factory.NewRecordFactory(10000)
  inputs, err := f.FromRows(header, rows)

SEE ALSO:
  - retro/types.go: Record, Input, SummaryRow, DetailLine
  - sheet/excel.go: Reads and writes the cells handled here
*/
package factory

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/warp/retro-payroll/generic"
	"github.com/warp/retro-payroll/retro"
)

// DefaultMaxRows is the batch ceiling used when none is configured.
const DefaultMaxRows = 10000

// =============================================================================
// COLUMN CONTRACT
// =============================================================================

const (
	ColID             = "CEDULA"
	ColName           = "NOMBRE"
	ColSecondaryID    = "CODIGO_FICHA_COLABORADOR"
	ColPreviousSalary = "SUELDO_ANTERIOR"
	ColNewSalary      = "SUELDO_NUEVO"
	ColStartDate      = "FECHA_INICIO"
	ColEndDate        = "FECHA_FIN"
	ColDayHours       = "HED_CANTIDAD"
	ColNightHours     = "HEN_CANTIDAD"
	ColHolidayDay     = "HEFD_CANTIDAD"
	ColHolidayNight   = "HEFN_CANTIDAD"
)

// Columns lists every import column in canonical order.
var Columns = []string{
	ColID, ColName, ColSecondaryID, ColPreviousSalary, ColNewSalary,
	ColStartDate, ColEndDate, ColDayHours, ColNightHours, ColHolidayDay, ColHolidayNight,
}

// RequiredColumns must be present in every batch header.
var RequiredColumns = []string{ColPreviousSalary, ColNewSalary, ColStartDate, ColEndDate}

// DateColumns hold dates; importers may need to convert serial values in them.
var DateColumns = []string{ColStartDate, ColEndDate}

var hoursColumns = map[retro.Category]string{
	retro.CategoryDay:          ColDayHours,
	retro.CategoryNight:        ColNightHours,
	retro.CategoryHolidayDay:   ColHolidayDay,
	retro.CategoryHolidayNight: ColHolidayNight,
}

// HoursColumn returns the import column carrying a category's hours.
func HoursColumn(c retro.Category) string { return hoursColumns[c] }

// =============================================================================
// FACTORY
// =============================================================================

// RecordFactory maps batches of tabular records to engine inputs.
type RecordFactory struct {
	MaxRows int
}

// NewRecordFactory creates a factory with the given row ceiling.
// A non-positive ceiling falls back to DefaultMaxRows.
func NewRecordFactory(maxRows int) *RecordFactory {
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}
	return &RecordFactory{MaxRows: maxRows}
}

// CheckColumns returns a *generic.MissingColumnsError naming every required
// column absent from header.
func CheckColumns(header []string) error {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[strings.TrimSpace(h)] = true
	}
	var missing []string
	for _, c := range RequiredColumns {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &generic.MissingColumnsError{Columns: missing}
	}
	return nil
}

// CheckRowCount enforces the batch ceiling.
func (f *RecordFactory) CheckRowCount(n int) error {
	if n == 0 {
		return generic.ErrEmptyBatch
	}
	if n > f.MaxRows {
		return &generic.RowLimitError{Rows: n, Limit: f.MaxRows}
	}
	return nil
}

// FromRows maps a header and its data rows to inputs. Short rows read the
// missing cells as blank.
func (f *RecordFactory) FromRows(header []string, rows [][]string) ([]retro.Input, error) {
	if err := CheckColumns(header); err != nil {
		return nil, err
	}
	if err := f.CheckRowCount(len(rows)); err != nil {
		return nil, err
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}
	cell := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	inputs := make([]retro.Input, len(rows))
	for n, row := range rows {
		rec := retro.Record{
			ID:             cell(row, ColID),
			Name:           cell(row, ColName),
			SecondaryID:    cell(row, ColSecondaryID),
			PreviousSalary: cell(row, ColPreviousSalary),
			NewSalary:      cell(row, ColNewSalary),
			StartDate:      cell(row, ColStartDate),
			EndDate:        cell(row, ColEndDate),
			Overtime:       make(map[retro.Category]string, len(hoursColumns)),
		}
		for c, col := range hoursColumns {
			rec.Overtime[c] = cell(row, col)
		}
		inputs[n] = retro.ParseRecord(rec)
	}
	return inputs, nil
}

// FromMaps maps JSON-style records keyed by column name. The header is the
// union of keys across all records, so a column absent from every record is
// reported missing.
func (f *RecordFactory) FromMaps(records []map[string]any) ([]retro.Input, error) {
	seen := make(map[string]bool)
	for _, r := range records {
		for k := range r {
			seen[k] = true
		}
	}
	header := make([]string, 0, len(seen))
	for k := range seen {
		header = append(header, k)
	}
	if len(records) > 0 {
		if err := CheckColumns(header); err != nil {
			return nil, err
		}
	}
	if err := f.CheckRowCount(len(records)); err != nil {
		return nil, err
	}

	inputs := make([]retro.Input, len(records))
	for n, r := range records {
		inputs[n] = RecordFromMap(r)
	}
	return inputs, nil
}

// RecordFromMap maps a single JSON-style record. Numbers and strings are
// both accepted for numeric columns.
func RecordFromMap(r map[string]any) retro.Input {
	rec := retro.Record{
		ID:             text(r[ColID]),
		Name:           text(r[ColName]),
		SecondaryID:    text(r[ColSecondaryID]),
		PreviousSalary: generic.DecimalOrZeroAny(r[ColPreviousSalary]).String(),
		NewSalary:      generic.DecimalOrZeroAny(r[ColNewSalary]).String(),
		StartDate:      text(r[ColStartDate]),
		EndDate:        text(r[ColEndDate]),
		Overtime:       make(map[retro.Category]string, len(hoursColumns)),
	}
	for c, col := range hoursColumns {
		rec.Overtime[c] = generic.DecimalOrZeroAny(r[col]).String()
	}
	return retro.ParseRecord(rec)
}

func text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case json.Number:
		// Identifiers such as CEDULA often arrive unquoted; keep every digit.
		return x.String()
	case float64:
		return generic.DecimalOrZeroAny(x).String()
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}
