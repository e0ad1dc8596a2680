package mapping

// Slot is one row of the report template's label column, extracted once
// per run. RowIndex is 0-based and unique within a template.
type Slot struct {
	RowIndex int    `json:"row_index"`
	Label    string `json:"label"`
}

// Decision is the engine's verdict for one template slot. QuestionID is
// empty when no candidate reached the threshold; Score is still the best
// score seen so a reviewer can judge near misses.
type Decision struct {
	RowIndex      int     `json:"row_index"`
	TemplateLabel string  `json:"template_label"`
	QuestionID    string  `json:"matched_question_id,omitempty"`
	Score         float64 `json:"similarity_score"`
	Accepted      bool    `json:"accepted"`
}

// Options configures a mapping run.
type Options struct {
	// Threshold is the inclusive minimum similarity for acceptance.
	// Valid range [0, 1].
	Threshold float64
}

// DefaultThreshold is the tuned acceptance threshold: at 0.5 the usual
// label rewordings between survey tools and the report template still
// match, while unrelated questions stay below it.
const DefaultThreshold = 0.5

// DefaultOptions returns the recommended mapping configuration.
func DefaultOptions() Options {
	return Options{Threshold: DefaultThreshold}
}
