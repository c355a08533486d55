package extract

import (
	"fmt"
	"regexp"
	"strings"
)

// The model is instructed to answer with a Python-style dict literal using
// single quotes. Real responses also show up with double quotes, unquoted
// years, None values, or markdown fences, so parsing is pattern-based rather
// than strict JSON.
var dictEntryRe = regexp.MustCompile(`['"](brand|tipe|tahun|transmisi)['"]\s*:\s*(?:'([^']*)'|"([^"]*)"|(\d+)|(None|null))`)

// parseDictLiteral extracts the four known keys from the completion content.
// Any content without a recognizable dict literal is a parse error, which the
// caller treats as total extraction failure.
func parseDictLiteral(content string) (Query, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```python")
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end <= start {
		return Query{}, fmt.Errorf("no dict literal in completion content")
	}

	var q Query
	matched := false
	for _, m := range dictEntryRe.FindAllStringSubmatch(content[start:end+1], -1) {
		matched = true

		value := m[2]
		if value == "" {
			value = m[3]
		}
		if value == "" {
			value = m[4]
		}
		// m[5] (None/null) leaves the field absent.
		value = strings.TrimSpace(value)

		switch m[1] {
		case "brand":
			q.Brand = value
		case "tipe":
			q.Type = value
		case "tahun":
			q.Year = value
		case "transmisi":
			switch strings.ToUpper(value) {
			case "AT":
				q.Transmission = TransmissionAT
			case "MT":
				q.Transmission = TransmissionMT
			}
		}
	}

	if !matched {
		return Query{}, fmt.Errorf("no recognized fields in completion content")
	}
	return q, nil
}
