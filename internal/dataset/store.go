package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Required sheet columns. Header names are lowercased and trimmed on load,
// so " Merk " and "MERK" both resolve to "merk". Extra columns are ignored.
var requiredColumns = []string{"merk", "tipe_match", "tahun", "transmisi", "otr_min", "otr_avg", "otr_vm"}

// Store holds the price sheet in memory for the process lifetime.
type Store struct {
	records []PriceRecord

	// Distinct values keep first-appearance-in-file order so that
	// substring matching has a fixed, documented winner rather than
	// depending on incidental map iteration order.
	distinctBrands []string
	distinctTypes  []string
}

// Load reads the sheet at path. A missing or malformed file is fatal to
// startup; there is no partial load.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	s, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", path, err)
	}
	return s, nil
}

// Read parses a CSV export of the price sheet.
func Read(r io.Reader) (*Store, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	s := &Store{}
	seenBrand := make(map[string]bool)
	seenType := make(map[string]bool)

	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}

		year, err := strconv.Atoi(strings.TrimSpace(row[cols["tahun"]]))
		if err != nil {
			return nil, fmt.Errorf("row %d: bad tahun %q", line, row[cols["tahun"]])
		}

		rec := PriceRecord{
			Brand:        strings.TrimSpace(row[cols["merk"]]),
			TypeMatch:    strings.TrimSpace(row[cols["tipe_match"]]),
			Year:         year,
			Transmission: strings.ToLower(strings.TrimSpace(row[cols["transmisi"]])),
			OTRMin:       parseAmount(row[cols["otr_min"]]),
			OTRAvg:       parseAmount(row[cols["otr_avg"]]),
			OTRVM:        parseAmount(row[cols["otr_vm"]]),
		}
		s.records = append(s.records, rec)

		lb := strings.ToLower(rec.Brand)
		if lb != "" && !seenBrand[lb] {
			seenBrand[lb] = true
			s.distinctBrands = append(s.distinctBrands, lb)
		}
		lt := strings.ToLower(rec.TypeMatch)
		if lt != "" && !seenType[lt] {
			seenType[lt] = true
			s.distinctTypes = append(s.distinctTypes, lt)
		}
	}

	if len(s.records) == 0 {
		return nil, fmt.Errorf("no rows")
	}
	return s, nil
}

// parseAmount reads a monetary cell. Empty or unparseable cells load as 0,
// which the price formatter renders as "-".
func parseAmount(cell string) int64 {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0
	}
	// Sheet exports sometimes carry a decimal tail ("200000000.0").
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil || f < 0 {
		return 0
	}
	return int64(f)
}

// Records returns all rows in file order.
func (s *Store) Records() []PriceRecord {
	return s.records
}

// Len returns the number of rows.
func (s *Store) Len() int {
	return len(s.records)
}

// DistinctBrands returns lowercased brand values in first-appearance order.
func (s *Store) DistinctBrands() []string {
	return s.distinctBrands
}

// DistinctTypes returns lowercased tipe_match values in first-appearance order.
func (s *Store) DistinctTypes() []string {
	return s.distinctTypes
}

// BrandForType returns the brand of the first record whose lowercased
// tipe_match equals lowType.
func (s *Store) BrandForType(lowType string) (string, bool) {
	for _, rec := range s.records {
		if strings.ToLower(rec.TypeMatch) == lowType {
			return rec.Brand, true
		}
	}
	return "", false
}

// BrandForTypeContaining returns the brand of the first record whose
// tipe_match contains lowType, case-insensitively.
func (s *Store) BrandForTypeContaining(lowType string) (string, bool) {
	if lowType == "" {
		return "", false
	}
	for _, rec := range s.records {
		if strings.Contains(strings.ToLower(rec.TypeMatch), lowType) {
			return rec.Brand, true
		}
	}
	return "", false
}

// Filter returns the rows matching pred, in file order.
func (s *Store) Filter(pred func(PriceRecord) bool) []PriceRecord {
	var out []PriceRecord
	for _, rec := range s.records {
		if pred(rec) {
			out = append(out, rec)
		}
	}
	return out
}
