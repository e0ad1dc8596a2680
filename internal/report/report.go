package report

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/hrd-survey/internal/mapping"
)

// Status tags for the review report, derived from the decision only.
const (
	StatusMatched   = "matched"
	StatusUnmatched = "unmatched"
)

// Entry is one reviewable line of the audit report. It carries every
// decision field so a reviewer can hand-correct low-similarity rows
// without rerunning the pipeline.
type Entry struct {
	RowIndex      int     `json:"row_index"`
	TemplateLabel string  `json:"template_label"`
	QuestionID    string  `json:"matched_question_id,omitempty"`
	Score         float64 `json:"similarity_score"`
	Accepted      bool    `json:"accepted"`
	Status        string  `json:"status"`
}

// Report is the full audit record of a mapping run.
type Report struct {
	Matched   int     `json:"matched"`
	Unmatched int     `json:"unmatched"`
	Entries   []Entry `json:"entries"`
}

// Build serializes every mapping decision into an audit record, ordered
// by row index ascending. Unmatched rows are always included.
func Build(decisions []mapping.Decision) *Report {
	r := &Report{Entries: make([]Entry, 0, len(decisions))}

	for _, d := range decisions {
		entry := Entry{
			RowIndex:      d.RowIndex,
			TemplateLabel: d.TemplateLabel,
			QuestionID:    d.QuestionID,
			Score:         d.Score,
			Accepted:      d.Accepted,
			Status:        StatusUnmatched,
		}
		if d.Accepted {
			entry.Status = StatusMatched
			r.Matched++
		} else {
			r.Unmatched++
		}
		r.Entries = append(r.Entries, entry)
	}

	sort.SliceStable(r.Entries, func(i, j int) bool {
		return r.Entries[i].RowIndex < r.Entries[j].RowIndex
	})

	return r
}

// JSON renders the report as indented JSON.
func (r *Report) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return data, nil
}

// WriteFile saves the report for later review.
func (r *Report) WriteFile(path string) error {
	data, err := r.JSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}

// Load reads a previously written report file.
func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report %s: %w", path, err)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse report %s: %w", path, err)
	}
	return &r, nil
}

// Print writes a human-readable summary in the pipeline's console format.
func (r *Report) Print() {
	fmt.Println("======================================================================")
	fmt.Printf("매핑 검토 리포트: %d개 매핑 성공, %d개 매핑 실패\n", r.Matched, r.Unmatched)
	fmt.Println("----------------------------------------------------------------------")
	for _, e := range r.Entries {
		tag := "실패"
		if e.Accepted {
			tag = "성공"
		}
		fmt.Printf("  행 %3d | %s | 유사도 %.2f | %s\n", e.RowIndex, tag, e.Score, e.TemplateLabel)
	}
	fmt.Println("======================================================================")
}
