// Package extract turns free-text car queries into structured filters.
//
// Two extractors exist: a model-assisted one that calls an external
// completion service, and a deterministic rule-based one driven entirely by
// the dataset vocabulary. The Coordinator tries the model first and falls
// back on any incompleteness; results from the two sources are never merged.
package extract

import "context"

// Transmission is the normalized transmission constraint.
type Transmission string

// Transmission constants. The empty value means unconstrained.
const (
	TransmissionAny Transmission = ""
	TransmissionAT  Transmission = "AT"
	TransmissionMT  Transmission = "MT"
)

// Query is the structured result of extraction. Empty fields are
// unconstrained, except that brand, type and year must all be present
// before a search is attempted.
type Query struct {
	Brand        string
	Type         string
	Year         string // 4-digit, compared as text downstream
	Transmission Transmission
}

// Complete reports whether brand, type and year are all present.
func (q Query) Complete() bool {
	return q.Brand != "" && q.Type != "" && q.Year != ""
}

// MissingFields lists the required fields that are still unresolved.
func (q Query) MissingFields() []string {
	var missing []string
	if q.Brand == "" {
		missing = append(missing, "brand")
	}
	if q.Type == "" {
		missing = append(missing, "tipe")
	}
	if q.Year == "" {
		missing = append(missing, "tahun")
	}
	return missing
}

// TransmissionLabel renders the constraint for user-facing echoes. An absent
// constraint reads "Semua" (all transmissions).
func (q Query) TransmissionLabel() string {
	if q.Transmission == TransmissionAny {
		return "Semua"
	}
	return string(q.Transmission)
}

// Extractor derives a Query from raw text.
type Extractor interface {
	Extract(ctx context.Context, text string) (Query, error)
}
