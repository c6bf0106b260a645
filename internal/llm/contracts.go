package llm

import (
	"context"

	"github.com/koortimativa/rgi-extractor/internal/rgi"
)

// PageImage is one encoded page ready for transmission. Number is the page's
// 1-based position in the original document and survives batching so the
// model can tag page-scoped fields (valores_mencionados, referencias).
type PageImage struct {
	Number int
	JPEG   []byte
}

// BatchRequest is the payload for a single model call.
type BatchRequest struct {
	Pages []PageImage
}

// BatchExtractor is the capability the pipeline depends on: one batch of
// pages in, one parsed schema-shaped fragment out. Implementations fail with
// an error wrapping common.ErrTransientExtraction when the call itself
// failed, or common.ErrConfig when no call could be attempted; a
// deterministic fixture can stand in during tests.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, req BatchRequest) (*rgi.Record, error)
}
