package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hargamobil/hargamobil/internal/dataset"
	"github.com/hargamobil/hargamobil/internal/extract"
	"github.com/hargamobil/hargamobil/internal/observability"
	"github.com/hargamobil/hargamobil/internal/querylog"
	"github.com/hargamobil/hargamobil/internal/search"
)

const pipelineSheet = `merk,tipe_match,tahun,transmisi,otr_min,otr_avg,otr_vm
TOYOTA,avanza 1.3 e,2020,automatic,200000000,220000000,230000000
DAIHATSU,sigra 1.2 r,2025,manual,140000000,150000000,155000000
`

type fixedExtractor struct {
	q   extract.Query
	err error
}

func (f *fixedExtractor) Extract(ctx context.Context, text string) (extract.Query, error) {
	return f.q, f.err
}

type recordingSink struct {
	entries []querylog.Entry
	err     error
	closed  bool
}

func (r *recordingSink) Append(ctx context.Context, e querylog.Entry) error {
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, e)
	return nil
}

func (r *recordingSink) Close() error {
	r.closed = true
	return nil
}

func newTestPipeline(t *testing.T, ex extract.Extractor, sink querylog.Sink) *Pipeline {
	t.Helper()
	store, err := dataset.Read(strings.NewReader(pipelineSheet))
	require.NoError(t, err)
	p := New(ex, search.NewResolver(store), sink, observability.Nop())
	p.now = func() time.Time { return time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC) }
	return p
}

func TestProcess_FoundQuery(t *testing.T) {
	sink := &recordingSink{}
	ex := &fixedExtractor{q: extract.Query{Brand: "toyota", Type: "avanza", Year: "2020"}}
	p := newTestPipeline(t, ex, sink)

	res, err := p.Process(context.Background(), "  harga avanza 2020  ")
	require.NoError(t, err)

	assert.Equal(t, "harga avanza 2020", res.Input)
	assert.NotEqual(t, res.ID.String(), "00000000-0000-0000-0000-000000000000")
	assert.Equal(t, search.StatusFound, res.Outcome.Status)
	assert.Equal(t, Echo{Brand: "toyota", Tipe: "avanza", Tahun: "2020", Transmisi: "Semua"}, res.Echo)

	require.Len(t, sink.entries, 1)
	e := sink.entries[0]
	assert.Equal(t, "harga avanza 2020", e.UserInput)
	assert.Equal(t, "toyota", e.Brand)
	assert.Equal(t, "", e.Transmisi)
	assert.Equal(t, 1, e.ResultCount)
	assert.Equal(t, time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC), e.Timestamp)
}

func TestProcess_EmptyInput(t *testing.T) {
	sink := &recordingSink{}
	p := newTestPipeline(t, &fixedExtractor{}, sink)

	_, err := p.Process(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyQuery)
	assert.Empty(t, sink.entries, "rejected input is not audited")
}

func TestProcess_IncompleteQueryStillAudited(t *testing.T) {
	sink := &recordingSink{}
	ex := &fixedExtractor{q: extract.Query{Type: "avanza"}}
	p := newTestPipeline(t, ex, sink)

	res, err := p.Process(context.Background(), "avanza berapa")
	require.NoError(t, err)

	assert.Equal(t, search.StatusIncomplete, res.Outcome.Status)
	require.Len(t, sink.entries, 1)
	assert.Equal(t, 0, sink.entries[0].ResultCount)
}

func TestProcess_ExtractorError(t *testing.T) {
	sink := &recordingSink{}
	p := newTestPipeline(t, &fixedExtractor{err: errors.New("boom")}, sink)

	_, err := p.Process(context.Background(), "harga avanza")
	assert.Error(t, err)
	assert.Empty(t, sink.entries)
}

func TestProcess_AuditFailureDoesNotFailQuery(t *testing.T) {
	sink := &recordingSink{err: errors.New("disk full")}
	ex := &fixedExtractor{q: extract.Query{Brand: "toyota", Type: "avanza", Year: "2020"}}
	p := newTestPipeline(t, ex, sink)

	res, err := p.Process(context.Background(), "harga avanza 2020")
	require.NoError(t, err)
	assert.Equal(t, search.StatusFound, res.Outcome.Status)
}

func TestProcess_Idempotent(t *testing.T) {
	sink := &recordingSink{}
	ex := &fixedExtractor{q: extract.Query{Brand: "daihatsu", Type: "sigra", Year: "2025", Transmission: extract.TransmissionMT}}
	p := newTestPipeline(t, ex, sink)

	first, err := p.Process(context.Background(), "sigra manual 2025")
	require.NoError(t, err)
	second, err := p.Process(context.Background(), "sigra manual 2025")
	require.NoError(t, err)

	assert.Equal(t, first.Outcome, second.Outcome)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, sink.entries, 2)
}

func TestClose_ReleasesSink(t *testing.T) {
	sink := &recordingSink{}
	p := newTestPipeline(t, &fixedExtractor{}, sink)

	require.NoError(t, p.Close())
	assert.True(t, sink.closed)
}
