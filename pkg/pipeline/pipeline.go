// Package pipeline ties extraction, search, and audit logging into the
// single end-to-end operation behind every user query.
package pipeline

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hargamobil/hargamobil/internal/extract"
	"github.com/hargamobil/hargamobil/internal/observability"
	"github.com/hargamobil/hargamobil/internal/querylog"
	"github.com/hargamobil/hargamobil/internal/search"
)

// ErrEmptyQuery is returned when the input is blank after trimming.
var ErrEmptyQuery = errors.New("query text is empty")

// Echo reports the structured fields the extractor settled on, so callers
// can show the user what was understood before the results.
type Echo struct {
	Brand     string `json:"brand"`
	Tipe      string `json:"tipe"`
	Tahun     string `json:"tahun"`
	Transmisi string `json:"transmisi"`
}

// QueryResult is the full outcome of one processed query.
type QueryResult struct {
	ID      uuid.UUID      `json:"id"`
	Input   string         `json:"input"`
	Query   extract.Query  `json:"-"`
	Echo    Echo           `json:"understood"`
	Outcome search.Outcome `json:"outcome"`
}

// Pipeline runs free-text queries end to end. It is safe for sequential
// reuse; each call produces exactly one audit entry.
type Pipeline struct {
	extractor extract.Extractor
	resolver  *search.Resolver
	sink      querylog.Sink
	logger    *observability.Logger
	now       func() time.Time
}

func New(extractor extract.Extractor, resolver *search.Resolver, sink querylog.Sink, logger *observability.Logger) *Pipeline {
	return &Pipeline{
		extractor: extractor,
		resolver:  resolver,
		sink:      sink,
		logger:    logger,
		now:       time.Now,
	}
}

// Process extracts structured fields from text, resolves them against the
// price sheet, and records an audit entry. An audit failure is logged but
// does not fail the query.
func (p *Pipeline) Process(ctx context.Context, text string) (QueryResult, error) {
	input := strings.TrimSpace(text)
	if input == "" {
		return QueryResult{}, ErrEmptyQuery
	}

	id := uuid.New()
	log := p.logger.WithQuery(id.String())

	q, err := p.extractor.Extract(ctx, input)
	if err != nil {
		return QueryResult{}, err
	}

	outcome := p.resolver.Resolve(q)

	result := QueryResult{
		ID:    id,
		Input: input,
		Query: q,
		Echo: Echo{
			Brand:     q.Brand,
			Tipe:      q.Type,
			Tahun:     q.Year,
			Transmisi: q.TransmissionLabel(),
		},
		Outcome: outcome,
	}

	entry := querylog.Entry{
		Timestamp:   p.now(),
		UserInput:   input,
		Brand:       q.Brand,
		Tipe:        q.Type,
		Tahun:       q.Year,
		Transmisi:   string(q.Transmission),
		ResultCount: outcome.ResultCount(),
	}
	if err := p.sink.Append(ctx, entry); err != nil {
		log.Error().Err(err).Msg("Failed to append query log entry")
	}

	log.Info().
		Str("status", string(outcome.Status)).
		Int("results", outcome.ResultCount()).
		Msg("Query processed")

	return result, nil
}

// Close releases the audit sink.
func (p *Pipeline) Close() error {
	return p.sink.Close()
}
