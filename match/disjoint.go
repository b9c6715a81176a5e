package match

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// Span is the half-open character range [Start, End) of text claimed by
// query word Word.
type Span struct {
	Word  int
	Start int
	End   int
}

// DisjointSpans places each word, in order, at its first occurrence in text
// that does not overlap a span claimed by an earlier word. Words with no such
// occurrence get no span.
func DisjointSpans(words []string, text string) []Span {
	t := []rune(strings.ToLower(text))
	used := make([]bool, len(t))
	spans := make([]Span, 0, len(words))

	for i, word := range words {
		w := []rune(strings.ToLower(word))
		if len(w) == 0 {
			continue
		}
		for start := 0; start+len(w) <= len(t); start++ {
			end := start + len(w)
			if !slices.Equal(t[start:end], w) || slices.Contains(used[start:end], true) {
				continue
			}
			for j := start; j < end; j++ {
				used[j] = true
			}
			spans = append(spans, Span{Word: i, Start: start, End: end})
			break
		}
	}

	return spans
}

// DisjointRatio returns 100 * characters covered by DisjointSpans / total
// characters of all words.
func DisjointRatio(words []string, text string) float64 {
	total := 0
	for _, word := range words {
		total += utf8.RuneCountInString(strings.ToLower(word))
	}
	if total == 0 {
		return 0
	}

	matched := 0
	for _, span := range DisjointSpans(words, text) {
		matched += span.End - span.Start
	}
	return 100 * float64(matched) / float64(total)
}
