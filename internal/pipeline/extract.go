package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/koortimativa/rgi-extractor/internal/common"
	"github.com/koortimativa/rgi-extractor/internal/imaging"
	"github.com/koortimativa/rgi-extractor/internal/llm"
	"github.com/koortimativa/rgi-extractor/internal/rgi"
)

// Extractor drives the batched extraction flow: encode pages, call the
// model per batch with a single light-tier retry, fold every fragment into
// one record, finalize.
type Extractor struct {
	client       llm.BatchExtractor
	payload      common.PayloadConfig
	maxPerCall   int
	batchTimeout time.Duration
	logger       *slog.Logger
}

// New builds an Extractor around a BatchExtractor. batchTimeout bounds each
// batch (both attempts); zero means no per-batch deadline beyond ctx.
func New(client llm.BatchExtractor, payload common.PayloadConfig, maxPerCall int, batchTimeout time.Duration, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if maxPerCall <= 0 {
		maxPerCall = 2
	}
	return &Extractor{
		client:       client,
		payload:      payload,
		maxPerCall:   maxPerCall,
		batchTimeout: batchTimeout,
		logger:       logger,
	}
}

func (e *Extractor) normalTier() imaging.Tier {
	return imaging.Tier{MaxWidth: e.payload.TargetWidthPx, Quality: e.payload.JPEGQuality}
}

func (e *Extractor) lightTier() imaging.Tier {
	return imaging.Tier{MaxWidth: e.payload.LightWidthPx, Quality: e.payload.LightJPEGQuality}
}

// Run processes the given pages and returns the finalized document record.
// Batches are dispatched sequentially: the append-only fields' ordering
// guarantee is original page order, and sequential merge is what upholds it.
// A batch that fails twice aborts the whole run; prior fragments are not
// surfaced.
func (e *Extractor) Run(ctx context.Context, pages []Page) (*rgi.Record, error) {
	runID := uuid.New().String()
	start := time.Now()

	acc := rgi.NewRecord()
	totalPages := 0
	batches := Chunk(pages, e.maxPerCall)

	e.logger.Info("extract.run.start", "run_id", runID, "pages", len(pages), "batches", len(batches))

	for i, batch := range batches {
		frag, err := e.extractBatch(ctx, runID, i+1, batch)
		if err != nil {
			e.logger.Error("extract.run.failed", "run_id", runID, "batch", i+1, "error", err)
			return nil, err
		}
		rgi.Merge(acc, frag)
		totalPages += len(batch)
	}

	acc.SetProcessedPages(totalPages)
	acc.Finalize()

	e.logger.Info("extract.run.ok",
		"run_id", runID,
		"pages", totalPages,
		"proprietarios", len(acc.Proprietarios),
		"registros", len(acc.Registros),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return acc, nil
}

// extractBatch performs the call for one batch: normal tier first, then
// exactly one retry with every page re-encoded at the light tier. Only
// transient failures earn the retry; a configuration error is fatal on the
// first attempt. A second failure propagates unchanged.
func (e *Extractor) extractBatch(ctx context.Context, runID string, num int, batch []Page) (*rgi.Record, error) {
	if e.batchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.batchTimeout)
		defer cancel()
	}

	req, err := e.encode(batch, e.normalTier())
	if err != nil {
		return nil, err
	}

	e.logger.Info("extract.batch.start", "run_id", runID, "batch", num, "pages", len(batch))
	frag, err := e.client.ExtractBatch(ctx, req)
	if err == nil {
		return frag, nil
	}
	if errors.Is(err, common.ErrConfig) {
		return nil, err
	}

	e.logger.Warn("extract.batch.retry", "run_id", runID, "batch", num, "error", err)
	req, encErr := e.encode(batch, e.lightTier())
	if encErr != nil {
		return nil, encErr
	}
	frag, err = e.client.ExtractBatch(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("batch %d failed after light-tier retry: %w", num, err)
	}
	return frag, nil
}

func (e *Extractor) encode(batch []Page, tier imaging.Tier) (llm.BatchRequest, error) {
	req := llm.BatchRequest{Pages: make([]llm.PageImage, 0, len(batch))}
	for _, page := range batch {
		src, err := os.ReadFile(page.Path)
		if err != nil {
			return llm.BatchRequest{}, fmt.Errorf("read page %d: %w", page.Number, err)
		}
		jpg, err := imaging.CompressJPEG(src, tier)
		if err != nil {
			return llm.BatchRequest{}, fmt.Errorf("compress page %d: %w", page.Number, err)
		}
		req.Pages = append(req.Pages, llm.PageImage{Number: page.Number, JPEG: jpg})
	}
	return req, nil
}
