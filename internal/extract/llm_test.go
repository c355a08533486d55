package extract

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hargamobil/hargamobil/internal/observability"
)

func newTestExtractor(url string) *ModelExtractor {
	return NewModelExtractor(ModelConfig{
		Endpoint:  url,
		APIKey:    "test-key",
		Model:     "test-model",
		MaxTokens: 150,
	}, observability.Nop())
}

func completionBody(content string) string {
	b, _ := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	})
	return string(b)
}

func TestModelExtractor_Extract(t *testing.T) {
	var captured chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody("{'brand':'DAIHATSU', 'tipe':'sigra 1.2 r', 'tahun':'2025', 'transmisi':'MT'}")))
	}))
	defer srv.Close()

	e := newTestExtractor(srv.URL)
	q, err := e.Extract(context.Background(), "sigra 2025 manual")
	require.NoError(t, err)

	assert.Equal(t, Query{Brand: "DAIHATSU", Type: "sigra 1.2 r", Year: "2025", Transmission: TransmissionMT}, q)

	// Deterministic decoding with a bounded response.
	assert.Equal(t, "test-model", captured.Model)
	assert.Zero(t, captured.Temperature)
	assert.Equal(t, 150, captured.MaxTokens)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Contains(t, captured.Messages[0].Content, "DAIHATSU, HONDA, MITSUBISHI, SUZUKI, TOYOTA")
	assert.Equal(t, "sigra 2025 manual", captured.Messages[1].Content)
}

func TestModelExtractor_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer srv.Close()

	e := newTestExtractor(srv.URL)
	_, err := e.Extract(context.Background(), "sigra 2025")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestModelExtractor_UnparseableContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(completionBody("Maaf, tidak ada parameter yang bisa diekstrak.")))
	}))
	defer srv.Close()

	e := newTestExtractor(srv.URL)
	_, err := e.Extract(context.Background(), "???")
	require.Error(t, err)
}

func TestModelExtractor_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	e := newTestExtractor(srv.URL)
	_, err := e.Extract(context.Background(), "sigra")
	require.Error(t, err)
}

func TestModelExtractor_NotConfigured(t *testing.T) {
	e := NewModelExtractor(ModelConfig{}, observability.Nop())
	_, err := e.Extract(context.Background(), "sigra 2025")
	assert.ErrorIs(t, err, ErrServiceUnavailable)
}
