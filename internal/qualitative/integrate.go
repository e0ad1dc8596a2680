package qualitative

import (
	"sort"
	"strings"

	"github.com/hrd-survey/internal/mapping"
	"github.com/hrd-survey/internal/normalize"
)

// Cleaned answers are grouped by meaning so the report can show one
// representative line per opinion with a count, instead of near-identical
// answers repeated dozens of times.

// Particles and filler words ignored when extracting keywords.
var stopwords = map[string]bool{
	"이": true, "가": true, "은": true, "는": true, "을": true, "를": true,
	"에": true, "의": true, "와": true, "과": true, "도": true, "로": true,
	"으로": true, "에서": true, "에게": true, "부터": true, "까지": true,
	"것": true, "수": true, "등": true, "더": true, "좀": true, "많이": true,
	"정말": true, "너무": true, "매우": true, "아주": true, "조금": true,
}

// Group is one cluster of answers sharing the same opinion.
type Group struct {
	Representative string   `json:"representative"`
	Count          int      `json:"count"`
	Answers        []string `json:"answers"`
}

// Keywords extracts content words from an answer, stripping trailing
// particles and dropping stopwords.
func Keywords(text string) []string {
	words := normalize.Tokens(text)
	keywords := make([]string, 0, len(words))
	seen := make(map[string]bool)
	for _, word := range words {
		word = trimParticle(word)
		if len([]rune(word)) < 2 || stopwords[word] || seen[word] {
			continue
		}
		seen[word] = true
		keywords = append(keywords, word)
	}
	return keywords
}

var particles = []string{"으로", "에서", "에게", "부터", "까지",
	"이", "가", "은", "는", "을", "를", "에", "의", "와", "과", "도", "로"}

func trimParticle(word string) string {
	for _, p := range particles {
		if strings.HasSuffix(word, p) && len([]rune(word)) > len([]rune(p))+1 {
			return strings.TrimSuffix(word, p)
		}
	}
	return word
}

// Similarity blends keyword overlap with character-level similarity.
// Keyword overlap dominates so answers phrased differently but about the
// same topic still group together.
func Similarity(a, b string) float64 {
	return 0.6*normalize.Jaccard(Keywords(a), Keywords(b)) + 0.4*mapping.Score(a, b)
}

// Integrate groups cleaned answers by similarity. Each answer joins the
// first existing group whose representative it resembles at or above the
// threshold, otherwise it starts a new group. Groups are returned largest
// first, ties by first appearance.
func Integrate(answers []string, threshold float64) []Group {
	groups := make([]Group, 0)
	for _, answer := range answers {
		placed := false
		for i := range groups {
			if Similarity(answer, groups[i].Representative) >= threshold {
				groups[i].Answers = append(groups[i].Answers, answer)
				groups[i].Count++
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, Group{
				Representative: answer,
				Count:          1,
				Answers:        []string{answer},
			})
		}
	}
	for i := range groups {
		groups[i].Representative = selectRepresentative(groups[i].Answers)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Count > groups[j].Count
	})
	return groups
}

// The representative is the most informative answer in the group: most
// keywords, then longest, then first seen.
func selectRepresentative(answers []string) string {
	best := answers[0]
	bestScore := representativeScore(best)
	for _, a := range answers[1:] {
		if s := representativeScore(a); s > bestScore {
			best, bestScore = a, s
		}
	}
	return best
}

func representativeScore(answer string) int {
	return len(Keywords(answer))*100 + len([]rune(answer))
}

// DefaultGroupThreshold is the similarity at or above which two answers
// fall into the same group.
const DefaultGroupThreshold = 0.55

// Summarize runs the full qualitative stage on raw answers.
func Summarize(answers []string) []Group {
	return Integrate(Preprocess(answers), DefaultGroupThreshold)
}
