package match

import (
	"strings"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

// LCSRatio returns 100 * |LCS(query, text)| / |query|, ignoring case.
// The subsequence is computed over the full character grid of both strings.
func LCSRatio(query, text string) float64 {
	q := strings.ToLower(query)
	t := strings.ToLower(text)

	n := utf8.RuneCountInString(q)
	if n == 0 || t == "" {
		return 0
	}

	return 100 * float64(edlib.LCS(q, t)) / float64(n)
}
