package sheet

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/retro-payroll/factory"
	"github.com/warp/retro-payroll/generic"
	"github.com/warp/retro-payroll/retro"
	"github.com/xuri/excelize/v2"
)

// buildWorkbook writes header and rows into the first sheet of a new file.
func buildWorkbook(t *testing.T, header []any, rows ...[]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestReadInputs_ConvertsSerialDates(t *testing.T) {
	// GIVEN: A workbook where one row stores dates as Excel serial numbers
	// WHEN: Reading inputs
	// THEN: Serials become ISO dates and numbers survive as raw values

	header := []any{"CEDULA", "NOMBRE", "SUELDO_ANTERIOR", "SUELDO_NUEVO", "FECHA_INICIO", "FECHA_FIN", "HED_CANTIDAD"}
	buf := buildWorkbook(t, header,
		[]any{"123", "Ana", 1000000, 1100000, 45292, 45322, 10}, // 2024-01-01, 2024-01-31
		[]any{},
		[]any{"456", "Luis", 1000000, 1100000, "01/02/2024", "29/02/2024"},
	)

	inputs, err := ReadInputs(buf, factory.NewRecordFactory(0))
	require.NoError(t, err)
	require.Len(t, inputs, 2)

	assert.Equal(t, "2024-01-01", inputs[0].StartDate)
	assert.Equal(t, "2024-01-31", inputs[0].EndDate)
	assert.Equal(t, "1100000", inputs[0].NewSalary.String())
	assert.Equal(t, "10", inputs[0].Hours(retro.CategoryDay).String())
	assert.Equal(t, "01/02/2024", inputs[1].StartDate)
}

func TestReadInputs_MissingColumns(t *testing.T) {
	buf := buildWorkbook(t, []any{"CEDULA", "NOMBRE"}, []any{"1", "x"})

	_, err := ReadInputs(buf, factory.NewRecordFactory(0))

	assert.ErrorIs(t, err, generic.ErrMissingColumns)
}

func TestReadRows_RejectsNonWorkbook(t *testing.T) {
	_, _, err := ReadRows(bytes.NewReader([]byte("CEDULA,NOMBRE\n1,x\n")))

	assert.Error(t, err)
}

func sampleBatch(t *testing.T) retro.BatchResult {
	t.Helper()
	in := retro.ParseRecord(retro.Record{
		ID: "123", Name: "Ana Muñoz", SecondaryID: "F-9",
		PreviousSalary: "1000000", NewSalary: "1100000",
		StartDate: "2024-01-01", EndDate: "2024-02-29",
		Overtime: map[retro.Category]string{retro.CategoryDay: "10"},
	})
	skipped := in
	skipped.ID = "999"
	skipped.StartDate = "2024-01-05"

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	batch, err := retro.CalculateBatch(context.Background(), []retro.Input{in, skipped},
		generic.CycleMonthly, retro.BatchOptions{Workers: 2, Logger: logger})
	require.NoError(t, err)
	return batch
}

func TestWriteWorkbook_RoundTrip(t *testing.T) {
	batch := sampleBatch(t)

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, batch))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	require.Len(t, summary, 1+2)
	assert.Equal(t, factory.SummaryHeaders, summary[0])
	assert.Equal(t, "01/01/2024", summary[1][3])
	assert.Equal(t, "100000", summary[1][4])
	assert.Equal(t, "5208", summary[1][5])
	assert.Equal(t, "01/02/2024", summary[2][3])

	detail, err := f.GetRows(DetailSheet)
	require.NoError(t, err)
	require.Len(t, detail, 1+3)
	assert.Equal(t, factory.DetailHeaders, detail[0])
	assert.Equal(t, retro.SalaryConcept, detail[1][2])
}

func TestWriteDetailPDF(t *testing.T) {
	batch := sampleBatch(t)

	var buf bytes.Buffer
	require.NoError(t, WriteDetailPDF(&buf, batch, "Retroactivo de nómina"))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0", formatAmount(0))
	assert.Equal(t, "999", formatAmount(999))
	assert.Equal(t, "1.000", formatAmount(1000))
	assert.Equal(t, "1.234.567", formatAmount(1234567))
	assert.Equal(t, "-50.000", formatAmount(-50000))
}
