// Package importer turns an arbitrary-length set of raw spreadsheet rows
// into normalized line-item rows by batching them through the external
// normalizer. Header vocabulary and duration formats are unbounded free
// text, so matching and parsing are delegated to the oracle; this package
// owns only the batching, the 1:1 row-count contract, and the merge.
package importer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/calebward/fueltally/internal/common"
	"github.com/calebward/fueltally/internal/llm"
	"github.com/calebward/fueltally/internal/model"
)

// BatchSize is the fixed number of rows sent to the normalizer per call.
const BatchSize = 50

// Normalizer runs whole-file normalization.
type Normalizer struct {
	client llm.Client
	logger *slog.Logger

	// OnBatch, when set, is called once per completed batch.
	OnBatch func(completed, total int)
}

// NewNormalizer creates a normalizer around an LLM client.
func NewNormalizer(client llm.Client, logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{client: client, logger: logger}
}

// Result is the outcome of a whole-file normalization.
type Result struct {
	// Rows are the recognized rows, in original order, after the
	// Unknown-Equipment filter.
	Rows []model.ProcessedRow
	// RoundNameCandidate is the first candidate found in original order,
	// or empty when none was present.
	RoundNameCandidate string
	// TotalRows counts the normalized rows before filtering; it always
	// equals the input row count on success.
	TotalRows int
}

// Normalize partitions rows into fixed-size batches, dispatches all batches
// concurrently, and merges the results in original order. Any batch failing
// aborts the whole import: a half-imported selection is worse than none.
func (n *Normalizer) Normalize(ctx context.Context, rows []model.ImportedRow) (Result, error) {
	if len(rows) == 0 {
		return Result{}, fmt.Errorf("%w: no rows to normalize", common.ErrImportFailed)
	}

	batches := partition(rows, BatchSize)
	results := make([][]model.ProcessedRow, len(batches))

	n.logger.Info("dispatching normalization batches",
		"rows", len(rows),
		"batches", len(batches),
		"batch_size", BatchSize)

	var mu sync.Mutex
	var completed int
	g, gctx := errgroup.WithContext(ctx)
	for i, batch := range batches {
		g.Go(func() error {
			resp, err := n.client.NormalizeRows(gctx, buildNormalizePrompt(batch))
			if err != nil {
				return fmt.Errorf("%w: batch %d: %w", common.ErrImportFailed, i, err)
			}
			if len(resp.ProcessedRows) != len(batch) {
				return fmt.Errorf("%w: batch %d: %w: got %d rows for %d inputs",
					common.ErrImportFailed, i, common.ErrInvalidNormalizerResponse,
					len(resp.ProcessedRows), len(batch))
			}
			results[i] = resp.ProcessedRows

			mu.Lock()
			completed++
			if n.OnBatch != nil {
				n.OnBatch(completed, len(batches))
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	merged := make([]model.ProcessedRow, 0, len(rows))
	for _, r := range results {
		merged = append(merged, r...)
	}

	// Filtering unrecognized equipment is downstream policy; the
	// normalizer itself never drops rows, so the candidate scan and the
	// filter both run over the full merged sequence.
	candidate := firstRoundNameCandidate(merged)
	kept := make([]model.ProcessedRow, 0, len(merged))
	for _, row := range merged {
		if row.Name == model.UnknownEquipment {
			continue
		}
		kept = append(kept, row)
	}

	n.logger.Info("normalization complete",
		"rows", len(merged),
		"recognized", len(kept),
		"round_name_candidate", candidate)

	return Result{Rows: kept, RoundNameCandidate: candidate, TotalRows: len(merged)}, nil
}

// partition splits rows into order-preserving chunks of at most size each;
// chunk k covers rows [k*size, k*size+size).
func partition(rows []model.ImportedRow, size int) [][]model.ImportedRow {
	var out [][]model.ImportedRow
	for start := 0; start < len(rows); start += size {
		end := start + size
		if end > len(rows) {
			end = len(rows)
		}
		out = append(out, rows[start:end])
	}
	return out
}

// firstRoundNameCandidate returns the first non-empty candidate in original
// order.
func firstRoundNameCandidate(rows []model.ProcessedRow) string {
	for _, row := range rows {
		if row.RoundNameCandidate != nil && *row.RoundNameCandidate != "" {
			return *row.RoundNameCandidate
		}
	}
	return ""
}
