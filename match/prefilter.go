package match

import (
	"github.com/cloudflare/ahocorasick"
)

// Prefilter reports which query words occur literally in a text using a single
// Aho-Corasick automaton built from the words.
type Prefilter struct {
	matcher  *ahocorasick.Matcher
	patterns int
	// slot maps each word to its pattern in the automaton; repeated words
	// share one pattern. -1 marks an empty word, which is always present.
	slot []int
}

// NewPrefilter builds the automaton for words. Words must already be lowercased.
func NewPrefilter(words []string) *Prefilter {
	index := make(map[string]int, len(words))
	dictionary := make([]string, 0, len(words))
	slot := make([]int, len(words))

	for i, word := range words {
		if word == "" {
			slot[i] = -1
			continue
		}
		p, ok := index[word]
		if !ok {
			p = len(dictionary)
			index[word] = p
			dictionary = append(dictionary, word)
		}
		slot[i] = p
	}

	pf := &Prefilter{patterns: len(dictionary), slot: slot}
	if len(dictionary) > 0 {
		pf.matcher = ahocorasick.NewStringMatcher(dictionary)
	}
	return pf
}

// Presence reports, per word, whether it occurs at least once in text.
// text must already be lowercased.
func (p *Prefilter) Presence(text string) []bool {
	found := make([]bool, p.patterns)
	if p.matcher != nil {
		for _, hit := range p.matcher.MatchThreadSafe([]byte(text)) {
			found[hit] = true
		}
	}

	present := make([]bool, len(p.slot))
	for i, s := range p.slot {
		present[i] = s < 0 || found[s]
	}
	return present
}

// All reports whether every word occurs in text. text must already be lowercased.
func (p *Prefilter) All(text string) bool {
	for _, ok := range p.Presence(text) {
		if !ok {
			return false
		}
	}
	return true
}
