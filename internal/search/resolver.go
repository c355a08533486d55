// Package search applies structured filters to the price sheet and formats
// the resulting price table.
package search

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/hargamobil/hargamobil/internal/dataset"
	"github.com/hargamobil/hargamobil/internal/extract"
)

// OutcomeStatus tags the result of a search.
type OutcomeStatus string

// Outcome statuses, in degradation order: an exact hit, a type hit with the
// wrong year, no hit at all, or a query too incomplete to search.
const (
	StatusFound        OutcomeStatus = "found"
	StatusPartialMatch OutcomeStatus = "partial_match"
	StatusNotFound     OutcomeStatus = "not_found"
	StatusIncomplete   OutcomeStatus = "incomplete"
)

// Row is one display row of the price table.
type Row struct {
	Ordinal   int    `json:"no"`
	Label     string `json:"tipe"`
	Min       string `json:"min"`
	Average   string `json:"average"`
	Max       string `json:"max"`
	HargaBaru string `json:"harga_baru"`
}

// Outcome is the tagged result of resolving a query against the sheet.
type Outcome struct {
	Status         OutcomeStatus `json:"status"`
	Rows           []Row         `json:"rows,omitempty"`
	AvailableYears []string      `json:"available_years,omitempty"`
	MissingFields  []string      `json:"missing_fields,omitempty"`
}

// ResultCount is the number of display rows; 0 for any non-found outcome.
func (o Outcome) ResultCount() int {
	if o.Status != StatusFound {
		return 0
	}
	return len(o.Rows)
}

// maxMarkup is applied on top of the average price for the displayed upper
// bound; it is derived, not a stored sheet value.
const maxMarkup = 1.10

// Resolver filters the price sheet and formats results.
type Resolver struct {
	store *dataset.Store
}

// NewResolver creates a resolver over the loaded sheet.
func NewResolver(store *dataset.Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve applies the structured query. Brand, type and year are all
// required; transmission is an optional constraint. Matching degrades
// gracefully: exact match, then same type with other years, then not found.
func (r *Resolver) Resolve(q extract.Query) Outcome {
	if !q.Complete() {
		return Outcome{Status: StatusIncomplete, MissingFields: q.MissingFields()}
	}

	brand := strings.ToLower(strings.TrimSpace(q.Brand))
	typ := strings.ToLower(strings.TrimSpace(q.Type))
	year := strings.TrimSpace(q.Year)

	exact := r.store.Filter(func(rec dataset.PriceRecord) bool {
		return strings.ToLower(rec.Brand) == brand &&
			strings.Contains(strings.ToLower(rec.TypeMatch), typ) &&
			strconv.Itoa(rec.Year) == year
	})

	if len(exact) == 0 {
		relaxed := r.store.Filter(func(rec dataset.PriceRecord) bool {
			return strings.ToLower(rec.Brand) == brand &&
				strings.Contains(strings.ToLower(rec.TypeMatch), typ)
		})
		if len(relaxed) == 0 {
			return Outcome{Status: StatusNotFound}
		}
		return Outcome{Status: StatusPartialMatch, AvailableYears: availableYears(relaxed)}
	}

	rows := formatRows(exact, q.Transmission)
	if len(rows) == 0 {
		// The transmission constraint filtered out every exact match.
		return Outcome{Status: StatusNotFound}
	}
	return Outcome{Status: StatusFound, Rows: rows}
}

// availableYears returns the distinct year strings, ascending lexical order.
func availableYears(recs []dataset.PriceRecord) []string {
	seen := make(map[string]bool)
	var years []string
	for _, rec := range recs {
		y := strconv.Itoa(rec.Year)
		if !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	sort.Strings(years)
	return years
}

// formatRows labels, applies the transmission constraint, formats prices and
// collapses identical display rows in first-seen order.
func formatRows(recs []dataset.PriceRecord, constraint extract.Transmission) []Row {
	seen := make(map[Row]bool)
	var rows []Row
	for _, rec := range recs {
		if constraint == extract.TransmissionAT && rec.Transmission != dataset.TransmissionAutomatic {
			continue
		}
		if constraint == extract.TransmissionMT && rec.Transmission != dataset.TransmissionManual {
			continue
		}

		row := Row{
			Label:     label(rec),
			Min:       FormatRupiah(float64(rec.OTRMin)),
			Average:   FormatRupiah(float64(rec.OTRAvg)),
			Max:       FormatRupiah(float64(rec.OTRAvg) * maxMarkup),
			HargaBaru: FormatRupiah(float64(rec.OTRVM)),
		}
		if seen[row] {
			continue
		}
		seen[row] = true
		rows = append(rows, row)
	}

	// Display rows are 1-indexed.
	for i := range rows {
		rows[i].Ordinal = i + 1
	}
	return rows
}

// label renders the display type: titlecased tipe_match plus a transmission
// suffix when the stored value is recognized.
func label(rec dataset.PriceRecord) string {
	l := titleCase(rec.TypeMatch)
	switch rec.Transmission {
	case dataset.TransmissionAutomatic:
		l += " A/T"
	case dataset.TransmissionManual:
		l += " M/T"
	}
	return l
}

// titleCase uppercases every letter that follows a non-letter, so
// "avanza 1.3 e" becomes "Avanza 1.3 E".
func titleCase(s string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range s {
		switch {
		case !unicode.IsLetter(r):
			b.WriteRune(r)
			prevLetter = false
		case prevLetter:
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(unicode.ToUpper(r))
			prevLetter = true
		}
	}
	return b.String()
}
