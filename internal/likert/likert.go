package likert

import (
	"strconv"
	"strings"
)

// Scale maps the fixed Korean Likert response texts to their ordinal values.
var Scale = map[string]int{
	"매우 그렇다":     5,
	"그렇다":        4,
	"보통이다":       3,
	"그렇지 않다":     2,
	"매우 그렇지 않다": 1,
}

// Value converts a single Likert response text to its ordinal value.
// Returns ok=false for anything not in the scale.
func Value(text string) (int, bool) {
	v, ok := Scale[strings.TrimSpace(text)]
	return v, ok
}

// IsScaleColumn reports whether a column holds Likert responses: every
// non-empty cell must be a scale text. A column with no responses at all
// is not a scale column.
func IsScaleColumn(cells []string) bool {
	seen := false
	for _, cell := range cells {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		if _, ok := Scale[cell]; !ok {
			return false
		}
		seen = true
	}
	return seen
}

// ConvertTable rewrites Likert columns of a response table in place,
// replacing scale texts with their integer values. The first row is the
// header and is never touched. Non-Likert columns pass through unchanged.
// Returns the indexes of the converted columns.
func ConvertTable(rows [][]string) []int {
	if len(rows) < 2 {
		return nil
	}

	header := rows[0]
	var converted []int

	for col := range header {
		cells := make([]string, 0, len(rows)-1)
		for _, row := range rows[1:] {
			if col < len(row) {
				cells = append(cells, row[col])
			}
		}

		if !IsScaleColumn(cells) {
			continue
		}

		for _, row := range rows[1:] {
			if col >= len(row) {
				continue
			}
			if v, ok := Value(row[col]); ok {
				row[col] = strconv.Itoa(v)
			}
		}
		converted = append(converted, col)
	}

	return converted
}
