package search

import (
	"math"
	"strconv"
	"strings"
)

// FormatRupiah renders a smallest-unit amount as "Rp {N} juta", rounding to
// the nearest million and grouping thousands with "." (Indonesian
// convention). Missing or zero amounts render as "-".
func FormatRupiah(value float64) string {
	if value <= 0 || math.IsNaN(value) {
		return "-"
	}
	juta := int64(math.Round(value / 1_000_000))
	return "Rp " + groupThousands(juta) + " juta"
}

// groupThousands inserts "." separators every three digits.
func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
