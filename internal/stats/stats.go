package stats

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/hrd-survey/internal/normalize"
)

// QuestionStat holds the aggregated result for one survey question.
// Label is the original question text as it appeared in the survey header;
// it travels with the stat so the mapping engine can score it against
// template labels.
type QuestionStat struct {
	QuestionID string  `json:"question_id"`
	Label      string  `json:"question"`
	Mean       float64 `json:"mean"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Count      int     `json:"count"`
}

// Store is the aggregate store: question_id -> QuestionStat with a stable
// iteration order (original survey column order). The mapping engine reads
// it; nothing mutates it after aggregation.
type Store struct {
	order []string
	stats map[string]QuestionStat
}

// NewStore creates an empty aggregate store.
func NewStore() *Store {
	return &Store{stats: make(map[string]QuestionStat)}
}

// Add appends a stat. Question IDs must be non-empty and unique.
func (s *Store) Add(stat QuestionStat) error {
	if strings.TrimSpace(stat.QuestionID) == "" {
		return fmt.Errorf("empty question_id for question %q", stat.Label)
	}
	if _, exists := s.stats[stat.QuestionID]; exists {
		return fmt.Errorf("duplicate question_id %q", stat.QuestionID)
	}
	s.order = append(s.order, stat.QuestionID)
	s.stats[stat.QuestionID] = stat
	return nil
}

// Get returns the stat for a question id.
func (s *Store) Get(id string) (QuestionStat, bool) {
	stat, ok := s.stats[id]
	return stat, ok
}

// Len returns the number of questions in the store.
func (s *Store) Len() int {
	return len(s.order)
}

// All returns the stats in insertion order.
func (s *Store) All() []QuestionStat {
	out := make([]QuestionStat, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.stats[id])
	}
	return out
}

// Result is the serialized form of one survey file's aggregation,
// compatible with the *_stats.json files consumed downstream.
type Result struct {
	FileName       string         `json:"file_name"`
	TotalResponses int            `json:"total_responses"`
	Questions      []QuestionStat `json:"questions"`
}

// Store rebuilds the ordered aggregate store from a result.
func (r *Result) Store() (*Store, error) {
	store := NewStore()
	for _, q := range r.Questions {
		if err := store.Add(q); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// Columns with at least this share of parseable cells count as numeric.
const numericShare = 0.8

// Aggregate computes per-question statistics over a converted response
// table. The first row is the header (question labels); a column counts as
// a rating column when at least 80% of its non-empty cells parse as numbers
// and every parsed value lies in the 1..5 scale range. Question IDs are
// assigned q1..qN in column order, which fixes the store's iteration order.
func Aggregate(fileName string, rows [][]string) (*Result, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty response table in %s", fileName)
	}

	header := rows[0]
	body := rows[1:]

	result := &Result{
		FileName:       fileName,
		TotalResponses: len(body),
	}

	for col, label := range header {
		values := numericValues(body, col)
		if values == nil {
			continue
		}

		stat := QuestionStat{
			QuestionID: fmt.Sprintf("q%d", len(result.Questions)+1),
			Label:      normalize.Label(label),
			Mean:       round2(mean(values)),
			Min:        values[0],
			Max:        values[0],
			Count:      len(values),
		}
		for _, v := range values {
			if v < stat.Min {
				stat.Min = v
			}
			if v > stat.Max {
				stat.Max = v
			}
		}
		result.Questions = append(result.Questions, stat)
	}

	return result, nil
}

// numericValues extracts the parsed ratings of a column, or nil when the
// column does not qualify as a rating column.
func numericValues(body [][]string, col int) []float64 {
	var values []float64
	nonEmpty := 0

	for _, row := range body {
		if col >= len(row) {
			continue
		}
		cell := strings.TrimSpace(row[col])
		if cell == "" {
			continue
		}
		nonEmpty++

		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			continue
		}
		if v < 1 || v > 5 {
			return nil
		}
		values = append(values, v)
	}

	if nonEmpty == 0 || float64(len(values))/float64(nonEmpty) < numericShare {
		return nil
	}
	return values
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// WriteFile saves an aggregation result as indented JSON.
func (r *Result) WriteFile(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// LoadResult reads a *_stats.json file.
func LoadResult(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &result, nil
}
