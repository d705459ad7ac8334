package retro

import (
	"context"
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/warp/retro-payroll/generic"
	"golang.org/x/sync/errgroup"
)

// =============================================================================
// BATCH - Independent evaluation of many records
// =============================================================================

// BatchOptions controls parallelism and logging of CalculateBatch.
type BatchOptions struct {
	// Workers bounds concurrent records. Zero means runtime.NumCPU().
	Workers int

	// Logger receives the batch summary. Nil means the logrus standard logger.
	Logger logrus.FieldLogger
}

// SkippedRow identifies a record whose range covers no closed period.
type SkippedRow struct {
	Row    int    `json:"row"` // 1-based position among the data rows
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// BatchResult concatenates per-record results in source row order.
type BatchResult struct {
	Details   []DetailLine `json:"details"`
	Summaries []SummaryRow `json:"summaries"`
	Skipped   []SkippedRow `json:"skipped"`
	Rows      int          `json:"rows"`
}

// CalculateBatch runs Calculate for every input using a bounded set of
// goroutines. Records share no state, so the only coordination is writing
// each result into its own slot; concatenation then follows input order.
// It returns an error only when ctx is cancelled.
func CalculateBatch(ctx context.Context, inputs []Input, cycle generic.Cycle, opts BatchOptions) (BatchResult, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	results := make([]Result, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range inputs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = Calculate(inputs[i], cycle)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return BatchResult{}, fmt.Errorf("batch cancelled: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return BatchResult{}, fmt.Errorf("batch cancelled: %w", err)
	}

	batch := BatchResult{
		Details:   []DetailLine{},
		Summaries: []SummaryRow{},
		Skipped:   []SkippedRow{},
		Rows:      len(inputs),
	}
	for i, r := range results {
		if r.Empty() {
			batch.Skipped = append(batch.Skipped, SkippedRow{
				Row:    i + 1,
				ID:     inputs[i].ID,
				Reason: "dates do not cover a complete closed period",
			})
			continue
		}
		batch.Details = append(batch.Details, r.Details...)
		batch.Summaries = append(batch.Summaries, r.Summaries...)
	}

	logger.WithFields(logrus.Fields{
		"cycle":     cycle,
		"rows":      batch.Rows,
		"details":   len(batch.Details),
		"summaries": len(batch.Summaries),
		"skipped":   len(batch.Skipped),
		"workers":   workers,
	}).Info("retroactive batch calculated")

	return batch, nil
}

// Total returns the sum of every detail line amount.
func (b BatchResult) Total() int64 {
	var total int64
	for _, d := range b.Details {
		total += d.Amount
	}
	return total
}
