package query

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Default thresholds applied when a parameter is not supplied.
const (
	DefaultMinRatio      = 50.0
	DefaultMinSimilarity = 0.0
)

// Config is a validated query. It is built once per search and shared
// read-only by every worker.
type Config struct {
	Raw           string   // Query exactly as supplied
	Words         []string // Lowercased words, at least one
	MultiWord     bool
	MinRatio      float64 // In [0,100]
	MinSimilarity float64 // In [0,1]
	MaxResults    int     // 0 means unlimited

	capSet bool
}

// Option configures a Config.
type Option func(*Config)

// WithMinRatio sets the minimum match ratio.
// Default is DefaultMinRatio.
func WithMinRatio(ratio float64) Option {
	return func(c *Config) {
		c.MinRatio = ratio
	}
}

// WithMinSimilarity sets the minimum prior similarity.
// Default is DefaultMinSimilarity.
func WithMinSimilarity(similarity float64) Option {
	return func(c *Config) {
		c.MinSimilarity = similarity
	}
}

// WithMaxResults caps the number of ranked results.
// A cap supplied here must be positive; leaving it unset means unlimited.
func WithMaxResults(limit int) Option {
	return func(c *Config) {
		c.MaxResults = limit
		c.capSet = true
	}
}

// New normalizes raw and validates the thresholds.
func New(raw string, opts ...Option) (*Config, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: %w", ErrInvalidQuery, errEmptyQuery)
	}

	cfg := &Config{
		Raw:           raw,
		MinRatio:      DefaultMinRatio,
		MinSimilarity: DefaultMinSimilarity,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	words, multi := Normalize(raw)
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: query %q has no words", ErrInvalidQuery, raw)
	}
	cfg.Words = words
	cfg.MultiWord = multi

	if !(cfg.MinRatio >= 0 && cfg.MinRatio <= 100) {
		return nil, fmt.Errorf("%w: min_ratio must be between 0 and 100, got %v", ErrInvalidThreshold, cfg.MinRatio)
	}
	if !(cfg.MinSimilarity >= 0 && cfg.MinSimilarity <= 1) {
		return nil, fmt.Errorf("%w: min_similarity must be between 0 and 1, got %v", ErrInvalidThreshold, cfg.MinSimilarity)
	}
	if cfg.capSet && cfg.MaxResults <= 0 {
		return nil, fmt.Errorf("%w: max_results must be greater than 0", ErrInvalidResultCap)
	}

	return cfg, nil
}

// Normalize lowercases raw, decodes "%20" and splits it into words.
// multi reports whether the decoded query contains whitespace; when it does
// not, the single word is the whole decoded query.
func Normalize(raw string) (words []string, multi bool) {
	decoded := strings.ReplaceAll(strings.ToLower(raw), "%20", " ")
	if strings.IndexFunc(decoded, unicode.IsSpace) < 0 {
		if decoded == "" {
			return nil, false
		}
		return []string{decoded}, false
	}
	return strings.Fields(decoded), true
}

// Limited reports whether a result cap is set.
func (c *Config) Limited() bool {
	return c.MaxResults > 0
}

// MaxResultsDisplay renders the cap for human readers.
func (c *Config) MaxResultsDisplay() string {
	if !c.Limited() {
		return "unlimited"
	}
	return strconv.Itoa(c.MaxResults)
}
