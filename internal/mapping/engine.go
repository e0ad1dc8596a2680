package mapping

import (
	"fmt"
	"strings"

	"github.com/hrd-survey/internal/normalize"
	"github.com/hrd-survey/internal/stats"
)

// Map matches every template slot against the aggregate store and returns
// one decision per slot, in slot order.
//
// For each slot with a non-blank label the engine scores the label against
// every question label in the store, walking the store in its insertion
// order (survey column order). The best score wins; on a tie the
// first-seen question keeps the win, so results are deterministic for a
// given store. A best score at or above the threshold accepts the match;
// below it the decision carries the score but no question ID.
//
// Blank-label slots are rejected without any candidate search.
func Map(slots []Slot, store *stats.Store, opts Options) ([]Decision, error) {
	if opts.Threshold < 0 || opts.Threshold > 1 {
		return nil, &ConfigurationError{
			Msg: fmt.Sprintf("threshold %v outside [0, 1]", opts.Threshold),
		}
	}

	if err := validateSlots(slots); err != nil {
		return nil, err
	}
	if err := validateStore(store); err != nil {
		return nil, err
	}

	decisions := make([]Decision, 0, len(slots))
	candidates := store.All()

	for _, slot := range slots {
		decision := Decision{
			RowIndex:      slot.RowIndex,
			TemplateLabel: slot.Label,
		}

		if !normalize.IsBlank(slot.Label) {
			bestID, bestScore := bestCandidate(slot.Label, candidates)
			decision.Score = bestScore
			if bestID != "" && bestScore >= opts.Threshold {
				decision.QuestionID = bestID
				decision.Accepted = true
			}
		}

		decisions = append(decisions, decision)
	}

	return decisions, nil
}

// bestCandidate returns the highest-scoring question for a label.
// Candidates arrive in store insertion order and only a strictly greater
// score replaces the running best, which makes ties resolve to the
// first-seen question.
func bestCandidate(label string, candidates []stats.QuestionStat) (string, float64) {
	bestID := ""
	bestScore := 0.0

	for _, candidate := range candidates {
		score := Score(label, candidate.Label)
		if score > bestScore {
			bestScore = score
			bestID = candidate.QuestionID
		}
	}

	return bestID, bestScore
}

func validateSlots(slots []Slot) error {
	seen := make(map[int]bool, len(slots))
	for _, slot := range slots {
		if seen[slot.RowIndex] {
			return &InputError{Msg: fmt.Sprintf("duplicate slot row_index %d", slot.RowIndex)}
		}
		seen[slot.RowIndex] = true
	}
	return nil
}

func validateStore(store *stats.Store) error {
	if store == nil {
		return &InputError{Msg: "nil aggregate store"}
	}
	for _, stat := range store.All() {
		if strings.TrimSpace(stat.QuestionID) == "" {
			return &InputError{Msg: fmt.Sprintf("empty question_id for question %q", stat.Label)}
		}
	}
	return nil
}
