package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDictLiteral(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Query
	}{
		{
			name:    "single quotes as instructed",
			content: "{'brand':'TOYOTA', 'tipe':'avanza 1.3 e', 'tahun':'2020', 'transmisi':'AT'}",
			want:    Query{Brand: "TOYOTA", Type: "avanza 1.3 e", Year: "2020", Transmission: TransmissionAT},
		},
		{
			name:    "double quotes",
			content: `{"brand":"DAIHATSU", "tipe":"sigra", "tahun":"2025", "transmisi":"MT"}`,
			want:    Query{Brand: "DAIHATSU", Type: "sigra", Year: "2025", Transmission: TransmissionMT},
		},
		{
			name:    "unquoted year",
			content: "{'brand':'HONDA', 'tipe':'brio rs', 'tahun':2024, 'transmisi':''}",
			want:    Query{Brand: "HONDA", Type: "brio rs", Year: "2024"},
		},
		{
			name:    "empty and None values stay absent",
			content: "{'brand':'TOYOTA', 'tipe':'', 'tahun':None, 'transmisi':None}",
			want:    Query{Brand: "TOYOTA"},
		},
		{
			name:    "fenced code block with prose",
			content: "Berikut hasilnya:\n```python\n{'brand':'SUZUKI', 'tipe':'ertiga', 'tahun':'2023', 'transmisi':'at'}\n```",
			want:    Query{Brand: "SUZUKI", Type: "ertiga", Year: "2023", Transmission: TransmissionAT},
		},
		{
			name:    "unknown transmission value is unconstrained",
			content: "{'brand':'TOYOTA', 'tipe':'avanza', 'tahun':'2020', 'transmisi':'CVT'}",
			want:    Query{Brand: "TOYOTA", Type: "avanza", Year: "2020"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q, err := parseDictLiteral(tc.content)
			require.NoError(t, err)
			assert.Equal(t, tc.want, q)
		})
	}
}

func TestParseDictLiteral_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty content", ""},
		{"prose only", "Maaf, saya tidak dapat mengekstrak parameter."},
		{"braces without known keys", "{'foo':'bar'}"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseDictLiteral(tc.content)
			require.Error(t, err)
		})
	}
}
