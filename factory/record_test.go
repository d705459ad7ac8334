package factory_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/retro-payroll/factory"
	"github.com/warp/retro-payroll/generic"
	"github.com/warp/retro-payroll/retro"
)

func TestFromRows_MapsColumnsByHeader(t *testing.T) {
	// GIVEN: A header in non-canonical order with one optional column missing
	// WHEN: Mapping rows
	// THEN: Cells land on the right fields and blanks read as zero

	header := []string{"FECHA_FIN", "CEDULA", "NOMBRE", "SUELDO_NUEVO", "SUELDO_ANTERIOR", "FECHA_INICIO", "HED_CANTIDAD"}
	rows := [][]string{
		{"2024-01-31", "123", "Ana", "1100000", "1000000", "2024-01-01", "10"},
		{"31/03/2024", "456", "Luis", "2000000", ""}, // short row
	}

	inputs, err := factory.NewRecordFactory(0).FromRows(header, rows)
	require.NoError(t, err)
	require.Len(t, inputs, 2)

	assert.Equal(t, "123", inputs[0].ID)
	assert.Equal(t, "2024-01-01", inputs[0].StartDate)
	assert.Equal(t, "10", inputs[0].Hours(retro.CategoryDay).String())
	assert.True(t, inputs[0].Hours(retro.CategoryNight).IsZero())
	assert.Empty(t, inputs[0].SecondaryID)

	assert.True(t, inputs[1].PreviousSalary.IsZero())
	assert.Empty(t, inputs[1].StartDate)
	assert.Equal(t, "31/03/2024", inputs[1].EndDate)
}

func TestFromRows_MissingRequiredColumns(t *testing.T) {
	_, err := factory.NewRecordFactory(0).FromRows([]string{"CEDULA", "SUELDO_NUEVO", "FECHA_FIN"}, [][]string{{"1", "2", "3"}})

	require.Error(t, err)
	assert.ErrorIs(t, err, generic.ErrMissingColumns)

	var missing *generic.MissingColumnsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{factory.ColPreviousSalary, factory.ColStartDate}, missing.Columns)
}

func TestFromRows_RowCeiling(t *testing.T) {
	f := factory.NewRecordFactory(2)
	rows := [][]string{{"1"}, {"2"}, {"3"}}

	_, err := f.FromRows(factory.Columns, rows)

	assert.ErrorIs(t, err, generic.ErrTooManyRows)
	assert.True(t, generic.IsClientError(err))

	_, err = f.FromRows(factory.Columns, nil)
	assert.ErrorIs(t, err, generic.ErrEmptyBatch)
}

func TestNewRecordFactory_DefaultCeiling(t *testing.T) {
	assert.Equal(t, factory.DefaultMaxRows, factory.NewRecordFactory(-1).MaxRows)
	assert.Equal(t, 10000, factory.DefaultMaxRows)
}

func TestFromMaps_AcceptsNumbersAndStrings(t *testing.T) {
	records := []map[string]any{
		{
			"CEDULA":          float64(1020304050),
			"NOMBRE":          "Ana",
			"SUELDO_ANTERIOR": float64(1000000),
			"SUELDO_NUEVO":    "1100000",
			"FECHA_INICIO":    "2024-01-01",
			"FECHA_FIN":       "2024-01-31",
			"HEN_CANTIDAD":    float64(2.5),
			"HEFD_CANTIDAD":   "n/a",
		},
	}

	inputs, err := factory.NewRecordFactory(0).FromMaps(records)
	require.NoError(t, err)
	require.Len(t, inputs, 1)

	in := inputs[0]
	assert.Equal(t, "1020304050", in.ID)
	assert.Equal(t, "1000000", in.PreviousSalary.String())
	assert.Equal(t, "1100000", in.NewSalary.String())
	assert.Equal(t, "2.5", in.Hours(retro.CategoryNight).String())
	assert.True(t, in.Hours(retro.CategoryHolidayDay).IsZero())
}

func TestFromMaps_KeepsJSONNumberDigits(t *testing.T) {
	records := []map[string]any{{
		"CEDULA":          json.Number("12345678901234567"),
		"SUELDO_ANTERIOR": json.Number("1000000"),
		"SUELDO_NUEVO":    json.Number("1100000"),
		"FECHA_INICIO":    "2024-01-01",
		"FECHA_FIN":       "2024-01-31",
		"HED_CANTIDAD":    json.Number("2.5"),
	}}

	inputs, err := factory.NewRecordFactory(0).FromMaps(records)
	require.NoError(t, err)
	require.Len(t, inputs, 1)

	assert.Equal(t, "12345678901234567", inputs[0].ID)
	assert.Equal(t, "1100000", inputs[0].NewSalary.String())
	assert.Equal(t, "2.5", inputs[0].Hours(retro.CategoryDay).String())
}

func TestFromMaps_MissingColumns(t *testing.T) {
	_, err := factory.NewRecordFactory(0).FromMaps([]map[string]any{{"CEDULA": "1"}})

	var missing *generic.MissingColumnsError
	require.ErrorAs(t, err, &missing)
	assert.Len(t, missing.Columns, 4)
}

func TestSummaryToRow_MatchesHeaders(t *testing.T) {
	in := retro.ParseRecord(retro.Record{
		ID: "7", Name: "Eva", SecondaryID: "F-1",
		PreviousSalary: "1000000", NewSalary: "1100000",
		StartDate: "2024-01-01", EndDate: "2024-01-31",
		Overtime: map[retro.Category]string{retro.CategoryHolidayNight: "1"},
	})
	result := retro.Calculate(in, generic.CycleMonthly)
	require.Len(t, result.Summaries, 1)

	row := factory.SummaryToRow(result.Summaries[0])

	require.Len(t, row, len(factory.SummaryHeaders))
	assert.Equal(t, []any{
		"7", "Eva", "F-1", "01/01/2024", int64(100000),
		int64(0), float64(0),
		int64(0), float64(0),
		int64(0), float64(0),
		int64(1063), float64(1),
	}, row)

	detail := factory.DetailToRow(result.Details[0])
	assert.Len(t, detail, len(factory.DetailHeaders))
}
