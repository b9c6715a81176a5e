package match

import (
	"fmt"
	"strings"

	"github.com/poiesic/subseek/query"
)

// SingleWordMethod names the metric used for single-word queries whose word
// does not occur literally in the text.
type SingleWordMethod string

const (
	SingleWordLCS     SingleWordMethod = "lcs"
	SingleWordPartial SingleWordMethod = "partial"
)

// MultiWordMethod names the metric used for multi-word queries once every
// word is known to occur in the text.
type MultiWordMethod string

const (
	MultiWordDisjoint   MultiWordMethod = "disjoint"
	MultiWordMinPartial MultiWordMethod = "min_partial"
)

// ParseSingleWordMethod validates a single-word method name.
func ParseSingleWordMethod(name string) (SingleWordMethod, error) {
	switch m := SingleWordMethod(name); m {
	case SingleWordLCS, SingleWordPartial:
		return m, nil
	}
	return "", fmt.Errorf("%w: single-word %q", ErrUnknownMethod, name)
}

// ParseMultiWordMethod validates a multi-word method name.
func ParseMultiWordMethod(name string) (MultiWordMethod, error) {
	switch m := MultiWordMethod(name); m {
	case MultiWordDisjoint, MultiWordMinPartial:
		return m, nil
	}
	return "", fmt.Errorf("%w: multi-word %q", ErrUnknownMethod, name)
}

// Score is the outcome of scoring one text.
type Score struct {
	Ratio    float64 // In [0,100]
	Exact    bool    // Every query word occurs literally in the text
	Rejected bool    // Gated out by the prefilter; Ratio is 0
}

// Scorer applies the prefilter and the per-mode metric for one query.
type Scorer struct {
	query     *query.Config
	prefilter *Prefilter
	single    SingleWordMethod
	multi     MultiWordMethod
}

// Option configures a Scorer.
type Option func(*Scorer) error

// WithSingleWordMethod sets the single-word metric.
// Default is SingleWordLCS.
func WithSingleWordMethod(method SingleWordMethod) Option {
	return func(s *Scorer) error {
		m, err := ParseSingleWordMethod(string(method))
		if err != nil {
			return err
		}
		s.single = m
		return nil
	}
}

// WithMultiWordMethod sets the multi-word metric.
// Default is MultiWordDisjoint.
func WithMultiWordMethod(method MultiWordMethod) Option {
	return func(s *Scorer) error {
		m, err := ParseMultiWordMethod(string(method))
		if err != nil {
			return err
		}
		s.multi = m
		return nil
	}
}

// NewScorer builds the prefilter for cfg and returns a Scorer.
func NewScorer(cfg *query.Config, opts ...Option) (*Scorer, error) {
	if cfg == nil {
		return nil, ErrQueryRequired
	}

	s := &Scorer{
		query:     cfg,
		prefilter: NewPrefilter(cfg.Words),
		single:    SingleWordLCS,
		multi:     MultiWordDisjoint,
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Score evaluates text against the query.
//
// Single-word mode: a literal occurrence scores 100, otherwise the configured
// single-word metric decides. Multi-word mode: text missing any word is
// rejected, otherwise the configured multi-word metric decides.
func (s *Scorer) Score(text string) Score {
	lower := strings.ToLower(text)
	exact := s.prefilter.All(lower)

	if !s.query.MultiWord {
		if exact {
			return Score{Ratio: 100, Exact: true}
		}
		word := s.query.Words[0]
		if s.single == SingleWordPartial {
			return Score{Ratio: PartialRatio(word, lower)}
		}
		return Score{Ratio: LCSRatio(word, lower)}
	}

	if !exact {
		return Score{Rejected: true}
	}
	if s.multi == MultiWordMinPartial {
		return Score{Ratio: MinPartialRatio(s.query.Words, lower), Exact: true}
	}
	return Score{Ratio: DisjointRatio(s.query.Words, lower), Exact: true}
}
