// Package dataset loads the on-the-road (OTR) price sheet into memory.
package dataset

// Transmission values as stored in the sheet.
const (
	TransmissionAutomatic = "automatic"
	TransmissionManual    = "manual"
)

// PriceRecord is one row of the price sheet. Records are immutable after
// load; the sheet is read once per process lifetime and shared without
// locking because no writer exists afterwards.
type PriceRecord struct {
	Brand        string // uppercase canonical, e.g. "TOYOTA"
	TypeMatch    string // canonical model-type token used for matching
	Year         int    // 4-digit model year
	Transmission string // "automatic" or "manual", lowercased on load
	OTRMin       int64  // smallest-unit currency; 0 means missing
	OTRAvg       int64
	OTRVM        int64
}
