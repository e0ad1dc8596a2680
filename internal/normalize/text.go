package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Separator punctuation that shows up as noise in survey question labels:
// trailing question marks, numbering dots, bracketed prefixes and so on.
func isSeparator(r rune) bool {
	switch r {
	case '.', ',', '(', ')', '[', ']', '-', '_', ':', '/', '?', '!', '~', '·':
		return true
	}
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

// Label normalizes a question label for display and slot extraction:
// NFKC fold (half/full-width variants collapse), trim, and internal
// whitespace runs collapsed to single spaces.
func Label(raw string) string {
	s := norm.NFKC.String(raw)
	s = strings.TrimSpace(s)
	return strings.Join(strings.Fields(s), " ")
}

// IsBlank reports whether a label is empty or whitespace-only.
func IsBlank(label string) bool {
	return strings.TrimSpace(label) == ""
}

// CompareKey reduces a label to the form used for similarity scoring:
// NFKC fold, lowercase, all whitespace and separator punctuation removed.
// Two labels that differ only in spacing or punctuation noise produce
// identical keys.
func CompareKey(raw string) string {
	s := norm.NFKC.String(raw)
	s = strings.ToLower(s)

	b := strings.Builder{}
	for _, r := range s {
		if unicode.IsSpace(r) || isSeparator(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Tokens splits a normalized label into whitespace-delimited tokens.
func Tokens(raw string) []string {
	return strings.Fields(Label(raw))
}

// Jaccard calculates intersection-over-union between two token sets.
func Jaccard(tokens1, tokens2 []string) float64 {
	if len(tokens1) == 0 || len(tokens2) == 0 {
		return 0.0
	}

	set1 := make(map[string]bool, len(tokens1))
	for _, token := range tokens1 {
		set1[token] = true
	}

	set2 := make(map[string]bool, len(tokens2))
	for _, token := range tokens2 {
		set2[token] = true
	}

	overlap := 0
	union := len(set1)
	for token := range set2 {
		if set1[token] {
			overlap++
		} else {
			union++
		}
	}

	return float64(overlap) / float64(union)
}
