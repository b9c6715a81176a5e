package query

import (
	"strconv"
	"strings"
)

// Params is the raw parameter set of one search request. Only query,
// min_ratio, min_similarity and max_results are recognized.
type Params struct {
	Query         string
	MinRatio      float64
	MinSimilarity float64
	MaxResults    *int // nil means unlimited
}

// DefaultParams returns Params holding the built-in defaults.
func DefaultParams() Params {
	return Params{
		MinRatio:      DefaultMinRatio,
		MinSimilarity: DefaultMinSimilarity,
	}
}

// ParseLine parses a "key=value&key=value" line on top of defaults.
//
// Values are taken verbatim; "%20" in the query is decoded later by Normalize.
// An unparseable threshold keeps its default and an unparseable max_results
// leaves the cap unset. Unknown keys and pairs without "=" are ignored.
func ParseLine(line string, defaults Params) Params {
	params := defaults
	line = strings.TrimRight(line, "\r\n")

	for _, pair := range strings.Split(line, "&") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		switch key {
		case "query":
			params.Query = value
		case "min_ratio":
			params.MinRatio = parseFloat(value, defaults.MinRatio)
		case "min_similarity":
			params.MinSimilarity = parseFloat(value, defaults.MinSimilarity)
		case "max_results":
			if n, err := strconv.Atoi(value); err == nil {
				params.MaxResults = &n
			} else {
				params.MaxResults = nil
			}
		}
	}

	return params
}

func parseFloat(value string, fallback float64) float64 {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return f
}

// Config validates the parameters and builds the query Config.
func (p Params) Config() (*Config, error) {
	opts := []Option{
		WithMinRatio(p.MinRatio),
		WithMinSimilarity(p.MinSimilarity),
	}
	if p.MaxResults != nil {
		opts = append(opts, WithMaxResults(*p.MaxResults))
	}
	return New(p.Query, opts...)
}
