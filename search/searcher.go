package search

import (
	"log/slog"
	"time"

	"github.com/poiesic/subseek/core"
	"github.com/poiesic/subseek/corpus"
	"github.com/poiesic/subseek/match"
	"github.com/poiesic/subseek/query"
)

// Searcher ranks corpus segments against a query.
type Searcher struct {
	scanner *corpus.Scanner
	single  match.SingleWordMethod
	multi   match.MultiWordMethod
	logger  *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithSingleWordMethod selects the metric for single-word queries.
// Default is match.SingleWordLCS.
func WithSingleWordMethod(method match.SingleWordMethod) Option {
	return func(s *Searcher) error {
		m, err := match.ParseSingleWordMethod(string(method))
		if err != nil {
			return err
		}
		s.single = m
		return nil
	}
}

// WithMultiWordMethod selects the metric for multi-word queries.
// Default is match.MultiWordDisjoint.
func WithMultiWordMethod(method match.MultiWordMethod) Option {
	return func(s *Searcher) error {
		m, err := match.ParseMultiWordMethod(string(method))
		if err != nil {
			return err
		}
		s.multi = m
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(scanner *corpus.Scanner, opts ...Option) (*Searcher, error) {
	if scanner == nil {
		return nil, ErrScannerRequired
	}

	s := &Searcher{
		scanner: scanner,
		single:  match.SingleWordLCS,
		multi:   match.MultiWordDisjoint,
		logger:  slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Report is the outcome of one search.
type Report struct {
	Matches []core.Match         // Ranked and truncated
	Files   []corpus.FileOutcome // One per corpus file, in name order
}

// Scanned returns how many corpus files were read successfully.
func (r *Report) Scanned() int {
	n := 0
	for _, f := range r.Files {
		if !f.Skipped {
			n++
		}
	}
	return n
}

// Skipped returns how many corpus files could not be used.
func (r *Report) Skipped() int {
	return len(r.Files) - r.Scanned()
}

// Search scans the corpus under root for cfg and returns the ranked matches.
func (s *Searcher) Search(root string, cfg *query.Config) (*Report, error) {
	return s.SearchWithMonitor(root, cfg, nil)
}

// SearchWithMonitor is Search with a monitor receiving callbacks at each stage.
func (s *Searcher) SearchWithMonitor(root string, cfg *query.Config, monitor Monitor) (*Report, error) {
	if cfg == nil {
		return nil, ErrQueryRequired
	}
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	start := time.Now()
	monitor.Start(cfg.Raw)

	scorer, err := match.NewScorer(cfg,
		match.WithSingleWordMethod(s.single),
		match.WithMultiWordMethod(s.multi))
	if err != nil {
		return nil, err
	}

	outcomes, err := s.scanner.Scan(corpus.Job{
		Root:          root,
		Scorer:        scorer,
		MinSimilarity: cfg.MinSimilarity,
		MinRatio:      cfg.MinRatio,
		OnEnumerated:  monitor.FilesEnumerated,
		OnFile:        monitor.FileDone,
	})
	if err != nil {
		s.logger.Error("error scanning corpus", "root", root, "err", err)
		return nil, err
	}

	candidates := Merge(outcomes)
	monitor.Ranked(len(candidates))
	results := Rank(candidates, cfg.MaxResults)
	monitor.Finish(results)

	report := &Report{Matches: results, Files: outcomes}
	s.logger.Info("search finished",
		"query", cfg.Raw,
		"multiWord", cfg.MultiWord,
		"files", len(outcomes),
		"skipped", report.Skipped(),
		"candidates", len(candidates),
		"results", len(results),
		"elapsed", time.Since(start))

	return report, nil
}
