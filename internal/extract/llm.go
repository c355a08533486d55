package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hargamobil/hargamobil/internal/observability"
)

// ErrServiceUnavailable is returned when no completion service is configured.
var ErrServiceUnavailable = errors.New("completion service not configured")

// systemInstruction is the fixed extraction task sent with every call. The
// brand vocabulary is enumerated so the model stays inside the sheet's
// domain; the answer format is a Python-style dict literal.
const systemInstruction = "Ekstrak brand, tipe lengkap, tahun, dan transmisi dari input teks berikut. " +
	"Jawab dalam Python dict format (kutip tunggal):\n" +
	"{'brand':'...', 'tipe':'...', 'tahun':..., 'transmisi':'...'}\n" +
	"Jika tidak ada tahun atau tipe, kosongkan nilainya. " +
	"Untuk transmisi, map ke 'AT'/'MT' bila terdeteksi. " +
	"Sinonim: at/a/t/auto/automatic/matic -> AT; mt/m/t/manual -> MT. " +
	"Brand dan model yang tersedia: DAIHATSU, HONDA, MITSUBISHI, SUZUKI, TOYOTA."

// ModelConfig holds completion service settings.
type ModelConfig struct {
	Endpoint  string
	APIKey    string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

// ModelExtractor delegates extraction to an OpenAI-compatible chat-completions
// endpoint. The service is treated as an unreliable best-effort oracle: one
// call per invocation, no retry, zero-temperature decoding, bounded response
// length. Transport and parse failures surface as errors so the Coordinator
// can fall back; they must never reach the end user.
type ModelExtractor struct {
	endpoint   string
	apiKey     string
	model      string
	maxTokens  int
	httpClient *http.Client
	logger     *observability.Logger
}

// NewModelExtractor creates a model-assisted extractor.
func NewModelExtractor(cfg ModelConfig, logger *observability.Logger) *ModelExtractor {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 150
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &ModelExtractor{
		endpoint:   cfg.Endpoint,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		maxTokens:  cfg.MaxTokens,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Extract sends the fixed instruction plus the user text and parses the
// dict-literal reply. Any error means "no extraction"; the caller decides
// what to do with that.
func (e *ModelExtractor) Extract(ctx context.Context, text string) (Query, error) {
	if e.endpoint == "" || e.apiKey == "" {
		return Query{}, ErrServiceUnavailable
	}

	body, err := json.Marshal(chatRequest{
		Model: e.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemInstruction},
			{Role: "user", Content: text},
		},
		Temperature: 0,
		MaxTokens:   e.maxTokens,
	})
	if err != nil {
		return Query{}, fmt.Errorf("marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(body))
	if err != nil {
		return Query{}, fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return Query{}, fmt.Errorf("call completion service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return Query{}, fmt.Errorf("completion service status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return Query{}, fmt.Errorf("decode completion response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return Query{}, fmt.Errorf("completion response has no choices")
	}

	q, err := parseDictLiteral(cr.Choices[0].Message.Content)
	if err != nil {
		e.logger.Warn().Err(err).Msg("Unparseable completion content")
		return Query{}, err
	}
	return q, nil
}
