package sheet

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/warp/retro-payroll/factory"
	"github.com/warp/retro-payroll/retro"
)

var detailColumnWidths = []float64{32, 58, 62, 28, 30}

// WriteDetailPDF renders the itemized detail lines of a batch for review,
// followed by the grand total and the rows that produced no periods.
func WriteDetailPDF(w io.Writer, batch retro.BatchResult, title string) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(title))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range factory.DetailHeaders {
		pdf.CellFormat(detailColumnWidths[i], 7, tr(h), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, d := range batch.Details {
		pdf.CellFormat(detailColumnWidths[0], 6, tr(d.ID), "1", 0, "L", false, 0, "")
		pdf.CellFormat(detailColumnWidths[1], 6, tr(d.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(detailColumnWidths[2], 6, tr(d.Concept), "1", 0, "L", false, 0, "")
		pdf.CellFormat(detailColumnWidths[3], 6, tr(d.Detail), "1", 0, "L", false, 0, "")
		pdf.CellFormat(detailColumnWidths[4], 6, formatAmount(d.Amount), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(0, 8, fmt.Sprintf("Total: %s", formatAmount(batch.Total())))
	pdf.Ln(8)

	if len(batch.Skipped) > 0 {
		pdf.SetFont("Helvetica", "", 9)
		for _, s := range batch.Skipped {
			pdf.Cell(0, 6, tr(fmt.Sprintf("Fila %d (%s): %s", s.Row, s.ID, s.Reason)))
			pdf.Ln(6)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}

// formatAmount groups thousands with dots: 1234567 -> 1.234.567.
func formatAmount(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	s := fmt.Sprintf("%d", n)
	out := make([]byte, 0, len(s)+len(s)/3)
	for i := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, s[i])
	}
	return sign + string(out)
}
