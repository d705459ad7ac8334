package factory

import "github.com/warp/retro-payroll/retro"

// =============================================================================
// EXPORT CONTRACT - Payroll import headers
// =============================================================================

// SummaryHeaders are the payroll import headers, one per SummaryRow field,
// in the order SummaryToRow emits cells.
var SummaryHeaders = []string{
	"Empleado - Identificación",
	"Empleado - Nombre",
	"Empleado - Código Ficha",
	"Comprobante - Período",
	"Devengos Prestacionales - Salario",
	"Devengos Prestacionales - Hora Extra Diurna",
	"Devengos Prestacionales - Hora Extra Diurna - Cantidad",
	"Devengos Prestacionales - Hora Extra Nocturna",
	"Devengos Prestacionales - Hora Extra Nocturna - Cantidad",
	"Devengos Prestacionales - Hora Extra Festiva Diurna",
	"Devengos Prestacionales - Hora Extra Festiva Diurna - Cantidad",
	"Devengos Prestacionales - Hora Extra Festiva Nocturna",
	"Devengos Prestacionales - Hora Extra Festiva Nocturna - Cantidad",
}

// DetailHeaders label the itemized review report columns.
var DetailHeaders = []string{"Cédula", "Nombre", "Concepto", "Detalle", "Valor"}

// SummaryToRow returns the row's cells under SummaryHeaders. Quantities are
// emitted as float64 so spreadsheets store them as numbers.
func SummaryToRow(s retro.SummaryRow) []any {
	row := []any{s.ID, s.Name, s.SecondaryID, s.Period, s.Salary}
	for _, c := range retro.ActiveCategories() {
		f := s.Overtime(c)
		qty, _ := f.Quantity.Float64()
		row = append(row, f.Amount, qty)
	}
	return row
}

// DetailToRow returns the line's cells under DetailHeaders.
func DetailToRow(d retro.DetailLine) []any {
	return []any{d.ID, d.Name, d.Concept, d.Detail, d.Amount}
}
