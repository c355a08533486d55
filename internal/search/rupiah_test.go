package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatRupiah(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{"zero renders dash", 0, "-"},
		{"negative renders dash", -1, "-"},
		{"exact millions", 200_000_000, "Rp 200 juta"},
		{"rounded up", 242_000_000, "Rp 242 juta"},
		{"rounds to nearest million", 242_499_999, "Rp 242 juta"},
		{"half rounds away", 242_500_000, "Rp 243 juta"},
		{"sub-million rounds down to dash boundary", 400_000, "Rp 0 juta"},
		{"thousands grouped with dots", 1_500_000_000_000, "Rp 1.500.000 juta"},
		{"billions", 2_340_000_000, "Rp 2.340 juta"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatRupiah(tc.value))
		})
	}
}

func TestGroupThousands(t *testing.T) {
	assert.Equal(t, "7", groupThousands(7))
	assert.Equal(t, "999", groupThousands(999))
	assert.Equal(t, "1.000", groupThousands(1000))
	assert.Equal(t, "12.345", groupThousands(12345))
	assert.Equal(t, "123.456.789", groupThousands(123456789))
}
