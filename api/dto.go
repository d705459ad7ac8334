/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's types from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

RECORDS:
  Records travel as JSON objects keyed by the spreadsheet column names
  (CEDULA, SUELDO_NUEVO, ...). Numeric columns accept numbers or strings;
  anything unreadable counts as zero.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/record.go: Column contract
*/
package api

import (
	"github.com/warp/retro-payroll/generic"
	"github.com/warp/retro-payroll/retro"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// SegmentRequest asks for the closed periods of a date range.
type SegmentRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Cycle     string `json:"cycle,omitempty"`
}

// PeriodDTO represents a closed payroll period.
type PeriodDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Days  int    `json:"days"`
}

// SegmentResponse lists the periods covered by a range.
type SegmentResponse struct {
	Cycle   generic.Cycle `json:"cycle"`
	Periods []PeriodDTO   `json:"periods"`
}

// CalculateRequest holds one record keyed by column name.
type CalculateRequest struct {
	Cycle  string         `json:"cycle,omitempty"`
	Record map[string]any `json:"record"`
}

// CalculateResponse is the result for one record.
type CalculateResponse struct {
	Cycle     generic.Cycle      `json:"cycle"`
	Details   []retro.DetailLine `json:"details"`
	Summaries []retro.SummaryRow `json:"summaries"`
	Message   string             `json:"message,omitempty"`
}

// BatchRequest holds many records keyed by column name.
type BatchRequest struct {
	Cycle   string           `json:"cycle,omitempty"`
	Records []map[string]any `json:"records"`
}

// BatchResponse wraps a batch result with its correlation id.
type BatchResponse struct {
	BatchID string        `json:"batch_id"`
	Cycle   generic.Cycle `json:"cycle"`
	Total   int64         `json:"total"`
	retro.BatchResult
}

// CategoryDTO describes an overtime category.
type CategoryDTO struct {
	Code   string `json:"code"`
	Label  string `json:"label"`
	Factor string `json:"factor"`
	Column string `json:"column"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func toPeriodDTOs(periods []generic.Period) []PeriodDTO {
	dtos := make([]PeriodDTO, len(periods))
	for i, p := range periods {
		dtos[i] = PeriodDTO{Start: p.Start.String(), End: p.End.String(), Days: p.Days()}
	}
	return dtos
}
