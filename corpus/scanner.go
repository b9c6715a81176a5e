package corpus

import (
	"log/slog"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/subseek/core"
	"github.com/poiesic/subseek/match"
	"github.com/spf13/afero"
)

// Scorer scores segment text. Implementations must be safe for concurrent use.
type Scorer interface {
	Score(text string) match.Score
}

// Job describes one scan of a corpus directory.
type Job struct {
	Root          string
	Scorer        Scorer
	MinSimilarity float64 // Segments below this prior similarity are not scored
	MinRatio      float64 // Scored segments below this ratio are dropped

	// OnEnumerated, if set, receives the number of corpus files before scanning starts.
	OnEnumerated func(files int)
	// OnFile, if set, is called once per file as soon as it finishes.
	// It is called from worker goroutines and must be safe for concurrent use.
	OnFile func(FileOutcome)
}

// FileOutcome is the result of scanning a single corpus file.
type FileOutcome struct {
	Name     string
	Segments int          // Segments decoded from the file
	Matches  []core.Match // In file order
	Skipped  bool
	Reason   string // Why the file was skipped
	Elapsed  time.Duration
}

// Scanner evaluates corpus files in parallel. Files run on one pool and
// chunks of segments within a file run on a second pool, so a file worker
// waiting on its chunks never starves them.
type Scanner struct {
	fs          afero.Fs
	filePool    *ants.Pool
	segmentPool *ants.Pool
	chunkSize   int
	logger      *slog.Logger
}

// Option configures a Scanner.
type Option func(*Scanner) error

func defaultPoolSize() int {
	size := runtime.NumCPU() / 2
	if size < 1 {
		size = 1
	}
	return size
}

func replacePool(old *ants.Pool, size int) (*ants.Pool, error) {
	if size < 1 {
		size = 1
	}
	pool, err := ants.NewPool(size)
	if err != nil {
		return nil, err
	}
	if old != nil {
		old.Release()
	}
	return pool, nil
}

// WithFileWorkers sets how many files are scanned at once.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithFileWorkers(size int) Option {
	return func(s *Scanner) error {
		pool, err := replacePool(s.filePool, size)
		if err != nil {
			return err
		}
		s.filePool = pool
		return nil
	}
}

// WithSegmentWorkers sets how many segment chunks are scored at once.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithSegmentWorkers(size int) Option {
	return func(s *Scanner) error {
		pool, err := replacePool(s.segmentPool, size)
		if err != nil {
			return err
		}
		s.segmentPool = pool
		return nil
	}
}

// WithChunkSize sets how many segments one segment task scores.
// Default is 256.
func WithChunkSize(size int) Option {
	return func(s *Scanner) error {
		if size < 1 {
			size = 1
		}
		s.chunkSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewScanner creates a Scanner reading corpus files from fs.
func NewScanner(fs afero.Fs, opts ...Option) (*Scanner, error) {
	if fs == nil {
		return nil, ErrFilesystemRequired
	}

	poolSize := defaultPoolSize()

	filePool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	segmentPool, err := ants.NewPool(poolSize)
	if err != nil {
		filePool.Release()
		return nil, err
	}

	s := &Scanner{
		fs:          fs,
		filePool:    filePool,
		segmentPool: segmentPool,
		chunkSize:   256,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(s); optErr != nil {
			s.Release()
			return nil, optErr
		}
	}

	return s, nil
}

// Scan evaluates every corpus file under job.Root and returns one outcome per
// file in name order. The only errors are a missing root or an unlistable
// directory; per-file failures are reported in the outcomes.
func (s *Scanner) Scan(job Job) ([]FileOutcome, error) {
	if job.Scorer == nil {
		return nil, ErrScorerRequired
	}

	names, err := ListFiles(s.fs, job.Root)
	if err != nil {
		return nil, err
	}
	if job.OnEnumerated != nil {
		job.OnEnumerated(len(names))
	}

	outcomes := make([]FileOutcome, len(names))
	var wg sync.WaitGroup

	for i, name := range names {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			outcomes[i] = s.scanFile(job, name)
			if job.OnFile != nil {
				job.OnFile(outcomes[i])
			}
		}
		if submitErr := s.filePool.Submit(task); submitErr != nil {
			s.logger.Warn("file pool rejected task, scanning inline", "file", name, "err", submitErr)
			task()
		}
	}

	wg.Wait()
	return outcomes, nil
}

func (s *Scanner) scanFile(job Job, name string) FileOutcome {
	start := time.Now()
	outcome := FileOutcome{Name: name}

	segments, err := ReadFile(s.fs, filepath.Join(job.Root, name))
	if err != nil {
		s.logger.Warn("skipping corpus file", "file", name, "err", err)
		outcome.Skipped = true
		outcome.Reason = err.Error()
		outcome.Elapsed = time.Since(start)
		return outcome
	}
	outcome.Segments = len(segments)

	chunks := (len(segments) + s.chunkSize - 1) / s.chunkSize
	partial := make([][]core.Match, chunks)
	var wg sync.WaitGroup

	for c := 0; c < chunks; c++ {
		lo := c * s.chunkSize
		hi := min(lo+s.chunkSize, len(segments))

		wg.Add(1)
		task := func() {
			defer wg.Done()
			partial[c] = evaluate(job, name, lo, segments[lo:hi])
		}
		if submitErr := s.segmentPool.Submit(task); submitErr != nil {
			s.logger.Warn("segment pool rejected task, scoring inline", "file", name, "err", submitErr)
			task()
		}
	}
	wg.Wait()

	for _, matches := range partial {
		outcome.Matches = append(outcome.Matches, matches...)
	}
	outcome.Elapsed = time.Since(start)

	s.logger.Debug("scanned corpus file",
		"file", name, "segments", outcome.Segments, "matches", len(outcome.Matches), "elapsed", outcome.Elapsed)
	return outcome
}

// evaluate scores segments, whose first element sits at position offset in the file.
func evaluate(job Job, file string, offset int, segments []core.Segment) []core.Match {
	var matches []core.Match
	for i, seg := range segments {
		if seg.Similarity < job.MinSimilarity {
			continue
		}
		score := job.Scorer.Score(seg.Text)
		if score.Rejected || score.Ratio < job.MinRatio {
			continue
		}
		matches = append(matches, core.NewMatch(file, offset+i, seg, score.Ratio, score.Exact))
	}
	return matches
}

// Release stops both worker pools. The scanner must not be used afterwards.
func (s *Scanner) Release() {
	for _, pool := range []*ants.Pool{s.filePool, s.segmentPool} {
		if pool == nil {
			continue
		}
		if err := pool.ReleaseTimeout(time.Second); err != nil {
			s.logger.Debug("worker pool release", "err", err)
		}
	}
}
