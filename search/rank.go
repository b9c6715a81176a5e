package search

import (
	"sort"

	"github.com/poiesic/subseek/core"
	"github.com/poiesic/subseek/corpus"
)

// less orders matches by ratio descending, then literal matches first, then
// by file and position so output is stable across runs.
func less(a, b core.Match) bool {
	if a.Ratio != b.Ratio {
		return a.Ratio > b.Ratio
	}
	if a.ExactMatch != b.ExactMatch {
		return a.ExactMatch
	}
	if a.File != b.File {
		return a.File < b.File
	}
	return a.Position < b.Position
}

// Rank sorts matches in place and truncates them to limit when limit > 0.
func Rank(matches []core.Match, limit int) []core.Match {
	sort.Slice(matches, func(i, j int) bool {
		return less(matches[i], matches[j])
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// Merge concatenates the matches of every file outcome, skipping empty ones.
func Merge(outcomes []corpus.FileOutcome) []core.Match {
	total := 0
	for _, o := range outcomes {
		total += len(o.Matches)
	}

	merged := make([]core.Match, 0, total)
	for _, o := range outcomes {
		if len(o.Matches) == 0 {
			continue
		}
		merged = append(merged, o.Matches...)
	}
	return merged
}
