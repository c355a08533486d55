package extract

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/hargamobil/hargamobil/internal/dataset"
)

// Years are matched as "20xx"; the leftmost occurrence wins.
var yearRe = regexp.MustCompile(`20\d{2}`)

// AT tokens are checked before MT tokens, so text carrying both signals
// resolves to AT.
var (
	atTokens = []string{"at", "auto", "matic"}
	mtTokens = []string{"mt", "manual"}
)

// RuleExtractor derives a Query from text using the dataset vocabulary only.
// It makes no external call and is fully deterministic, which makes it both
// the fallback for the model path and the reference behavior in tests.
type RuleExtractor struct {
	store *dataset.Store
}

// NewRuleExtractor creates a rule-based extractor over the loaded sheet.
func NewRuleExtractor(store *dataset.Store) *RuleExtractor {
	return &RuleExtractor{store: store}
}

// Extract never fails; it returns whatever fields the text yields.
func (e *RuleExtractor) Extract(_ context.Context, text string) (Query, error) {
	low := strings.ToLower(text)
	var q Query

	q.Year = yearRe.FindString(low)

	// First dataset brand appearing in the text wins; candidates are
	// scanned in first-appearance-in-file order.
	for _, b := range e.store.DistinctBrands() {
		if strings.Contains(low, b) {
			q.Brand = b
			break
		}
	}

	// Two-pass type match: prefer a candidate containing every alphabetic
	// word of the input, accept a candidate containing any of them. A
	// strict multi-word hit beats a single-token hit, but a single token
	// still beats failing outright.
	words := alphaWords(low)
	q.Type = e.matchType(words, matchAll)
	if q.Type == "" {
		q.Type = e.matchType(words, matchAny)
	}
	if q.Type != "" && q.Brand == "" {
		if brand, ok := e.store.BrandForType(q.Type); ok {
			q.Brand = strings.ToLower(brand)
		}
	}

	q.Transmission = detectTransmission(low)
	return q, nil
}

type wordMatch func(words []string, candidate string) bool

func matchAll(words []string, candidate string) bool {
	for _, w := range words {
		if !strings.Contains(candidate, w) {
			return false
		}
	}
	// Vacuously true for inputs with no alphabetic words, so the first
	// candidate type wins. Matches the historical lookup behavior.
	return true
}

func matchAny(words []string, candidate string) bool {
	for _, w := range words {
		if strings.Contains(candidate, w) {
			return true
		}
	}
	return false
}

func (e *RuleExtractor) matchType(words []string, match wordMatch) string {
	for _, t := range e.store.DistinctTypes() {
		if match(words, t) {
			return t
		}
	}
	return ""
}

// alphaWords keeps only whitespace-separated words made entirely of letters,
// dropping numerals and mixed tokens like "1.3".
func alphaWords(text string) []string {
	var out []string
	for _, w := range strings.Fields(text) {
		if isAlpha(w) {
			out = append(out, w)
		}
	}
	return out
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func detectTransmission(low string) Transmission {
	for _, tok := range atTokens {
		if strings.Contains(low, tok) {
			return TransmissionAT
		}
	}
	for _, tok := range mtTokens {
		if strings.Contains(low, tok) {
			return TransmissionMT
		}
	}
	return TransmissionAny
}
