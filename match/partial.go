package match

import "strings"

// PartialRatio slides the shorter string over every offset of the longer one
// and returns 100 * best aligned character matches / shorter length, ignoring case.
// Equal strings and strings contained in one another score 100.
func PartialRatio(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	if a == "" || b == "" {
		return 0
	}
	if a == b || strings.Contains(a, b) || strings.Contains(b, a) {
		return 100
	}

	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}

	best := 0
	for offset := 0; offset+len(short) <= len(long); offset++ {
		matches := 0
		for j, r := range short {
			if r == long[offset+j] {
				matches++
			}
		}
		if matches > best {
			best = matches
			if best == len(short) {
				break
			}
		}
	}

	return 100 * float64(best) / float64(len(short))
}

// MinPartialRatio scores text as its weakest word: the minimum PartialRatio of
// each word against the whole text. No words scores 0.
func MinPartialRatio(words []string, text string) float64 {
	if len(words) == 0 {
		return 0
	}

	lowest := 100.0
	for _, word := range words {
		if r := PartialRatio(word, text); r < lowest {
			lowest = r
		}
	}
	return lowest
}
