/*
handlers.go - HTTP API handlers for the retroactive payroll engine

PURPOSE:
  Exposes period segmentation and adjustment calculation via REST API.
  Handles HTTP request/response, JSON serialization, and delegates to the
  engine. The engine is pure; everything stateful about a request (its
  batch id, its log entry) lives here.

ENDPOINTS:
  POST   /api/segment          Closed periods for a date range
  POST   /api/calculate        Adjustment for one record
  POST   /api/batches          Adjustments for a JSON batch
  POST   /api/batches/upload   Adjustments for an uploaded workbook
                               (?format=json|xlsx|pdf)
  GET    /api/categories       Overtime categories and factors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Invalid body, unknown cycle, missing columns, empty batch
  - 413: Batch above the row ceiling
  - 503: Request cancelled while calculating

  A record whose dates cover no closed period is NOT an error: the
  response is 200 with empty arrays and a message.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/warp/retro-payroll/factory"
	"github.com/warp/retro-payroll/generic"
	"github.com/warp/retro-payroll/retro"
	"github.com/warp/retro-payroll/sheet"
)

const (
	noPeriodsMessage = "dates do not cover a complete closed period"
	maxUploadBytes   = 32 << 20
	reportTitle      = "Retroactivo de nómina"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Factory      *factory.RecordFactory
	DefaultCycle generic.Cycle
	Workers      int
	Logger       logrus.FieldLogger
}

// NewHandler creates a new handler.
func NewHandler(f *factory.RecordFactory, defaultCycle generic.Cycle, workers int, logger logrus.FieldLogger) *Handler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Handler{
		Factory:      f,
		DefaultCycle: defaultCycle,
		Workers:      workers,
		Logger:       logger,
	}
}

func (h *Handler) cycle(name string) (generic.Cycle, error) {
	if strings.TrimSpace(name) == "" {
		return h.DefaultCycle, nil
	}
	return generic.ParseCycle(name)
}

// =============================================================================
// SEGMENTATION
// =============================================================================

// Segment returns the closed periods covered by a date range.
// POST /api/segment
func (h *Handler) Segment(w http.ResponseWriter, r *http.Request) {
	var req SegmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	cycle, err := h.cycle(req.Cycle)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid cycle", err)
		return
	}

	periods := generic.Segment(req.StartDate, req.EndDate, cycle)
	writeJSON(w, http.StatusOK, SegmentResponse{Cycle: cycle, Periods: toPeriodDTOs(periods)})
}

// =============================================================================
// CALCULATION
// =============================================================================

// Calculate returns the adjustment for a single record.
// POST /api/calculate
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	cycle, err := h.cycle(req.Cycle)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid cycle", err)
		return
	}

	result := retro.Calculate(factory.RecordFromMap(req.Record), cycle)
	resp := CalculateResponse{Cycle: cycle, Details: result.Details, Summaries: result.Summaries}
	if result.Empty() {
		resp.Message = noPeriodsMessage
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateBatch calculates a JSON batch of records.
// POST /api/batches
func (h *Handler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	cycle, err := h.cycle(req.Cycle)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid cycle", err)
		return
	}

	inputs, err := h.Factory.FromMaps(req.Records)
	if err != nil {
		writeClientError(w, err)
		return
	}

	resp, err := h.runBatch(r.Context(), inputs, cycle)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Batch cancelled", err)
		return
	}
	w.Header().Set("X-Batch-ID", resp.BatchID)
	writeJSON(w, http.StatusOK, resp)
}

// UploadBatch calculates a batch read from an uploaded workbook.
// POST /api/batches/upload (multipart: file, cycle, format)
func (h *Handler) UploadBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form", err)
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing file", err)
		return
	}
	defer file.Close()

	cycle, err := h.cycle(r.FormValue("cycle"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid cycle", err)
		return
	}
	format := strings.ToLower(r.FormValue("format"))
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "xlsx" && format != "pdf" {
		writeError(w, http.StatusBadRequest, "Invalid format (use json, xlsx or pdf)", nil)
		return
	}

	inputs, err := sheet.ReadInputs(file, h.Factory)
	if err != nil {
		writeClientError(w, err)
		return
	}

	resp, err := h.runBatch(r.Context(), inputs, cycle)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Batch cancelled", err)
		return
	}
	w.Header().Set("X-Batch-ID", resp.BatchID)

	switch format {
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"retroactivo-%s.xlsx\"", resp.BatchID))
		if err := sheet.WriteWorkbook(w, resp.BatchResult); err != nil {
			h.Logger.WithError(err).WithField("batch_id", resp.BatchID).Error("failed to stream workbook")
		}
	case "pdf":
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"retroactivo-%s.pdf\"", resp.BatchID))
		if err := sheet.WriteDetailPDF(w, resp.BatchResult, reportTitle); err != nil {
			h.Logger.WithError(err).WithField("batch_id", resp.BatchID).Error("failed to stream pdf")
		}
	default:
		writeJSON(w, http.StatusOK, resp)
	}
}

func (h *Handler) runBatch(ctx context.Context, inputs []retro.Input, cycle generic.Cycle) (BatchResponse, error) {
	batchID := uuid.NewString()
	logger := h.Logger.WithField("batch_id", batchID)

	result, err := retro.CalculateBatch(ctx, inputs, cycle, retro.BatchOptions{
		Workers: h.Workers,
		Logger:  logger,
	})
	if err != nil {
		logger.WithError(err).Warn("batch aborted")
		return BatchResponse{}, err
	}
	return BatchResponse{BatchID: batchID, Cycle: cycle, Total: result.Total(), BatchResult: result}, nil
}

// =============================================================================
// CATEGORIES
// =============================================================================

// ListCategories returns the overtime categories paid by the engine.
// GET /api/categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories := retro.ActiveCategories()
	dtos := make([]CategoryDTO, len(categories))
	for i, c := range categories {
		dtos[i] = CategoryDTO{
			Code:   string(c),
			Label:  c.Label(),
			Factor: c.Factor().String(),
			Column: factory.HoursColumn(c),
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// HELPERS
// =============================================================================

// decodeJSON reads the request body into v. Numbers landing in untyped
// fields stay json.Number so long identifiers keep every digit.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeClientError maps import errors to a status and a stable code.
func writeClientError(w http.ResponseWriter, err error) {
	var missing *generic.MissingColumnsError
	switch {
	case errors.As(err, &missing):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "Missing required columns", Code: "missing_columns", Details: missing.Columns,
		})
	case errors.Is(err, generic.ErrTooManyRows):
		writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{
			Error: "Too many rows", Code: "too_many_rows", Details: err.Error(),
		})
	case errors.Is(err, generic.ErrEmptyBatch):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "Batch has no rows", Code: "empty_batch",
		})
	case generic.IsClientError(err):
		writeError(w, http.StatusBadRequest, "Invalid batch", err)
	default:
		writeError(w, http.StatusBadRequest, "Could not read batch", err)
	}
}
