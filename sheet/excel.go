// Package sheet reads payroll batches from spreadsheets and writes the
// calculated results back out as a workbook or a PDF review report.
package sheet

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/warp/retro-payroll/factory"
	"github.com/warp/retro-payroll/retro"
	"github.com/xuri/excelize/v2"
)

const (
	SummarySheet = "Resumen"
	DetailSheet  = "Detalle"
)

// Excel serial day numbers treated as dates: 1927-05-18 .. 2119-01-08.
const (
	minDateSerial = 10000
	maxDateSerial = 80000
)

// ReadRows returns the header and data rows of the workbook's first sheet.
// Cells are read raw so dates stored as serial numbers can be converted
// explicitly; fully blank rows are dropped.
func ReadRows(r io.Reader) ([]string, [][]string, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, nil, fmt.Errorf("no worksheet found")
	}

	rows, err := file.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read worksheet %q: %w", sheetName, err)
	}

	var data [][]string
	for _, row := range rows {
		if isBlank(row) {
			continue
		}
		data = append(data, row)
	}
	if len(data) == 0 {
		return nil, nil, fmt.Errorf("worksheet is empty")
	}

	header := make([]string, len(data[0]))
	for i, h := range data[0] {
		header[i] = strings.TrimSpace(h)
	}
	body := data[1:]
	convertDateSerials(header, body)
	return header, body, nil
}

// ReadInputs reads a workbook and maps it through f, which enforces the
// column contract and row ceiling.
func ReadInputs(r io.Reader, f *factory.RecordFactory) ([]retro.Input, error) {
	header, rows, err := ReadRows(r)
	if err != nil {
		return nil, err
	}
	return f.FromRows(header, rows)
}

func convertDateSerials(header []string, rows [][]string) {
	for _, col := range factory.DateColumns {
		idx := -1
		for i, h := range header {
			if h == col {
				idx = i
				break
			}
		}
		if idx < 0 {
			continue
		}
		for _, row := range rows {
			if idx >= len(row) {
				continue
			}
			if iso, ok := serialToISO(row[idx]); ok {
				row[idx] = iso
			}
		}
	}
}

func serialToISO(value string) (string, bool) {
	serial, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || serial < minDateSerial || serial > maxDateSerial {
		return "", false
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// WriteWorkbook writes the summary rows and the detail lines of a batch as
// two sheets under their export headers.
func WriteWorkbook(w io.Writer, batch retro.BatchResult) error {
	file := excelize.NewFile()
	defer func() { _ = file.Close() }()

	if err := file.SetSheetName(file.GetSheetName(0), SummarySheet); err != nil {
		return fmt.Errorf("failed to name summary sheet: %w", err)
	}
	if _, err := file.NewSheet(DetailSheet); err != nil {
		return fmt.Errorf("failed to create detail sheet: %w", err)
	}

	summaries := make([][]any, len(batch.Summaries))
	for i, s := range batch.Summaries {
		summaries[i] = factory.SummaryToRow(s)
	}
	if err := writeTable(file, SummarySheet, factory.SummaryHeaders, summaries); err != nil {
		return err
	}

	details := make([][]any, len(batch.Details))
	for i, d := range batch.Details {
		details[i] = factory.DetailToRow(d)
	}
	if err := writeTable(file, DetailSheet, factory.DetailHeaders, details); err != nil {
		return err
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeTable(file *excelize.File, sheet string, headers []string, rows [][]any) error {
	head := make([]any, len(headers))
	for i, h := range headers {
		head[i] = h
	}
	if err := file.SetSheetRow(sheet, "A1", &head); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := file.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
