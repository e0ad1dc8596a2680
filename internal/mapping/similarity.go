package mapping

import (
	"github.com/hrd-survey/internal/normalize"
)

// Score computes the similarity between two question labels in [0, 1].
// Labels are reduced to comparison keys first (case, whitespace and
// punctuation noise removed), then scored as a longest-common-subsequence
// ratio over runes: 2*LCS / (len(a)+len(b)). The measure is symmetric,
// scores 1.0 for identical non-empty labels, and 0.0 when either label is
// blank.
func Score(a, b string) float64 {
	ka := []rune(normalize.CompareKey(a))
	kb := []rune(normalize.CompareKey(b))

	if len(ka) == 0 || len(kb) == 0 {
		return 0.0
	}

	common := lcsLength(ka, kb)
	return 2.0 * float64(common) / float64(len(ka)+len(kb))
}

// lcsLength computes the longest common subsequence length with a
// two-row DP table. Labels are short (tens of runes) so the quadratic
// scan is fine.
func lcsLength(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
