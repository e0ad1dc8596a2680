package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/hrd-survey/internal/likert"
	"github.com/hrd-survey/internal/qualitative"
)

// OpinionColumn holds the grouped free-text answers for one open question.
type OpinionColumn struct {
	Column int                 `json:"column"`
	Label  string              `json:"label"`
	Groups []qualitative.Group `json:"groups"`
}

// Qualitative groups the free-text answers of a response file. When col
// is negative every free-text column is processed; free-text means a
// column that is neither a Likert scale nor mostly numeric.
func Qualitative(inPath string, col int) ([]OpinionColumn, error) {
	rows, _, err := ReadResponses(inPath)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%s has no response rows", inPath)
	}

	header := rows[0]
	var cols []int
	if col >= 0 {
		if col >= len(header) {
			return nil, fmt.Errorf("column %d out of range, header has %d columns", col, len(header))
		}
		cols = []int{col}
	} else {
		for c := range header {
			if isFreeText(rows, c) {
				cols = append(cols, c)
			}
		}
	}

	out := make([]OpinionColumn, 0, len(cols))
	for _, c := range cols {
		answers := columnValues(rows, c)
		groups := qualitative.Summarize(answers)
		if len(groups) == 0 {
			continue
		}
		out = append(out, OpinionColumn{Column: c, Label: header[c], Groups: groups})
	}
	return out, nil
}

// WriteOpinions writes grouped free-text answers as JSON.
func WriteOpinions(path string, opinions []OpinionColumn) error {
	data, err := json.MarshalIndent(opinions, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode opinions: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func columnValues(rows [][]string, col int) []string {
	values := make([]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if col < len(row) {
			values = append(values, row[col])
		}
	}
	return values
}

// A column is free text when it is neither a Likert scale nor mostly
// numeric. Empty columns do not count.
func isFreeText(rows [][]string, col int) bool {
	values := columnValues(rows, col)
	if likert.IsScaleColumn(values) {
		return false
	}
	nonEmpty, numeric := 0, 0
	for _, v := range values {
		if v == "" {
			continue
		}
		nonEmpty++
		if _, err := strconv.ParseFloat(v, 64); err == nil {
			numeric++
		}
	}
	if nonEmpty == 0 {
		return false
	}
	return float64(numeric)/float64(nonEmpty) < 0.5
}
