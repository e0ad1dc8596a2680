package template

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/hrd-survey/internal/mapping"
	"github.com/hrd-survey/internal/normalize"
	"github.com/hrd-survey/internal/stats"
)

// The report template pairs a label column with a value column at a fixed
// offset: question text in one column, the computed mean two columns to
// the right (the original workbook uses H for labels and J for values).
const valueColumnOffset = 2

// Template is the in-memory grid of a report template. Rows are 0-based.
type Template struct {
	grid     [][]string
	labelCol int
}

// New builds a template around an existing grid.
func New(grid [][]string, labelCol int) (*Template, error) {
	if labelCol < 0 {
		return nil, fmt.Errorf("invalid label column %d", labelCol)
	}
	return &Template{grid: grid, labelCol: labelCol}, nil
}

// Load reads a template CSV. Rows may be ragged; cells beyond a row's
// width read as empty.
func Load(path string, labelCol int) (*Template, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open template %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	grid, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", path, err)
	}

	return New(grid, labelCol)
}

// Rows returns the number of rows in the template.
func (t *Template) Rows() int {
	return len(t.grid)
}

// ValueColumn returns the column index values are written to.
func (t *Template) ValueColumn() int {
	return t.labelCol + valueColumnOffset
}

// Cell returns the cell at (row, col), empty for cells beyond a row's width.
func (t *Template) Cell(row, col int) string {
	if row < 0 || row >= len(t.grid) {
		return ""
	}
	if col < 0 || col >= len(t.grid[row]) {
		return ""
	}
	return t.grid[row][col]
}

// Slots extracts the ordered slot list from the label column, one slot
// per template row.
func (t *Template) Slots() []mapping.Slot {
	slots := make([]mapping.Slot, 0, len(t.grid))
	for row := range t.grid {
		slots = append(slots, mapping.Slot{
			RowIndex: row,
			Label:    normalize.Label(t.Cell(row, t.labelCol)),
		})
	}
	return slots
}

// SlotsAt extracts slots for an explicit row list, for templates where
// only designated rows take values (section headers and free-text rows
// are skipped by the template's own structure).
func (t *Template) SlotsAt(rows []int) []mapping.Slot {
	slots := make([]mapping.Slot, 0, len(rows))
	for _, row := range rows {
		slots = append(slots, mapping.Slot{
			RowIndex: row,
			Label:    normalize.Label(t.Cell(row, t.labelCol)),
		})
	}
	return slots
}

// Apply writes the matched means into the value column for accepted
// decisions. Rejected and blank-label rows are left exactly as loaded.
// Re-applying the same decisions is a no-op by value: the same cells get
// the same contents.
func (t *Template) Apply(decisions []mapping.Decision, store *stats.Store) error {
	for _, d := range decisions {
		if !d.Accepted {
			continue
		}
		if d.RowIndex < 0 || d.RowIndex >= len(t.grid) {
			return &mapping.OutOfRangeError{RowIndex: d.RowIndex, Rows: len(t.grid)}
		}

		stat, ok := store.Get(d.QuestionID)
		if !ok {
			return &mapping.InputError{
				Msg: fmt.Sprintf("accepted decision for row %d references unknown question %q", d.RowIndex, d.QuestionID),
			}
		}

		t.setCell(d.RowIndex, t.ValueColumn(), formatMean(stat.Mean))
	}
	return nil
}

// setCell widens the row if needed before writing.
func (t *Template) setCell(row, col int, value string) {
	for len(t.grid[row]) <= col {
		t.grid[row] = append(t.grid[row], "")
	}
	t.grid[row][col] = value
}

func formatMean(mean float64) string {
	return strconv.FormatFloat(mean, 'f', 2, 64)
}

// Clone returns a deep copy, so one loaded template can serve repeated
// mapping runs.
func (t *Template) Clone() *Template {
	grid := make([][]string, len(t.grid))
	for i, row := range t.grid {
		grid[i] = append([]string(nil), row...)
	}
	return &Template{grid: grid, labelCol: t.labelCol}
}

// Write saves the template grid as CSV.
func (t *Template) Write(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(t.grid); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	writer.Flush()
	return writer.Error()
}
