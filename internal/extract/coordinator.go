package extract

import (
	"context"
	"strings"

	"github.com/hargamobil/hargamobil/internal/dataset"
	"github.com/hargamobil/hargamobil/internal/observability"
)

// Coordinator orchestrates model-assisted extraction with a deterministic
// fallback. A model result missing any of brand/tipe/tahun is discarded
// wholesale; partial results from the two sources are never merged.
type Coordinator struct {
	model    Extractor
	fallback Extractor
	store    *dataset.Store
	logger   *observability.Logger
}

// NewCoordinator wires the two extractors over the loaded sheet.
func NewCoordinator(model, fallback Extractor, store *dataset.Store, logger *observability.Logger) *Coordinator {
	return &Coordinator{
		model:    model,
		fallback: fallback,
		store:    store,
		logger:   logger,
	}
}

// Extract produces the best-effort structured query for raw text. Model
// failures are recovered here and never surface to the caller.
func (c *Coordinator) Extract(ctx context.Context, text string) (Query, error) {
	q, err := c.model.Extract(ctx, text)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Model extraction failed, using rule-based fallback")
		q = Query{}
	}

	if !q.Complete() {
		if err == nil {
			c.logger.Debug().
				Strs("missing", q.MissingFields()).
				Msg("Model extraction incomplete, using rule-based fallback")
		}
		q, _ = c.fallback.Extract(ctx, text)
	}

	return c.correctBrand(q), nil
}

// correctBrand overwrites the brand using the sheet's type-to-brand linkage.
// The sheet is authoritative: a model-hallucinated or rule-misguessed brand
// loses to the brand of the first record whose tipe_match contains the
// extracted type. Case-only differences are left alone.
func (c *Coordinator) correctBrand(q Query) Query {
	if q.Type == "" {
		return q
	}

	brand, ok := c.store.BrandForTypeContaining(strings.ToLower(strings.TrimSpace(q.Type)))
	if !ok {
		return q
	}

	if !strings.EqualFold(q.Brand, brand) {
		c.logger.Debug().
			Str("from", q.Brand).
			Str("to", brand).
			Msg("Brand corrected from type linkage")
		q.Brand = brand
	}
	return q
}
