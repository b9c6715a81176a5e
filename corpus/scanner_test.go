package corpus

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/poiesic/subseek/match"
	"github.com/poiesic/subseek/query"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func newScorer(t *testing.T, raw string) *match.Scorer {
	t.Helper()
	cfg, err := query.New(raw)
	require.NoError(t, err)
	s, err := match.NewScorer(cfg)
	require.NoError(t, err)
	return s
}

func newCorpus(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("subtitle", 0o750))
	writeFile(t, fs, "subtitle/a.json", `[
		{"timestamp": "00:01", "similarity": 0.9, "text": "hello world"},
		{"timestamp": "00:02", "similarity": 0.1, "text": "hello again"},
		{"timestamp": "00:03", "similarity": 0.8, "text": "goodbye"}
	]`)
	writeFile(t, fs, "subtitle/b.json", `[
		{"timestamp": "01:00", "similarity": 0.7, "text": "Hello there"}
	]`)
	writeFile(t, fs, "subtitle/broken.json", `[{"timestamp": `)
	return fs
}

func TestNewScanner(t *testing.T) {
	t.Run("nil filesystem", func(t *testing.T) {
		_, err := NewScanner(nil)
		assert.Equal(t, ErrFilesystemRequired, err)
	})

	t.Run("with options", func(t *testing.T) {
		s, err := NewScanner(afero.NewMemMapFs(),
			WithFileWorkers(2), WithSegmentWorkers(0), WithChunkSize(-1), WithLogger(nil))
		require.NoError(t, err)
		defer s.Release()
		assert.Equal(t, 2, s.filePool.Cap())
		assert.Equal(t, 1, s.segmentPool.Cap())
		assert.Equal(t, 1, s.chunkSize)
		assert.NotNil(t, s.logger)
	})
}

func TestScan(t *testing.T) {
	s, err := NewScanner(newCorpus(t))
	require.NoError(t, err)
	defer s.Release()

	outcomes, err := s.Scan(Job{Root: "subtitle", Scorer: newScorer(t, "hello"), MinRatio: 50})
	require.NoError(t, err)
	require.Len(t, outcomes, 3)

	a := outcomes[0]
	assert.Equal(t, "a.json", a.Name)
	assert.Equal(t, 3, a.Segments)
	require.Len(t, a.Matches, 2)
	assert.Equal(t, "hello world", a.Matches[0].Text)
	assert.Equal(t, 0, a.Matches[0].Position)
	assert.Equal(t, 100.0, a.Matches[0].Ratio)
	assert.True(t, a.Matches[0].ExactMatch)
	assert.Equal(t, 1, a.Matches[1].Position)

	b := outcomes[1]
	assert.Equal(t, "b.json", b.Name)
	require.Len(t, b.Matches, 1)
	assert.Equal(t, "Hello there", b.Matches[0].Text)

	broken := outcomes[2]
	assert.Equal(t, "broken.json", broken.Name)
	assert.True(t, broken.Skipped)
	assert.Contains(t, broken.Reason, "malformed")
	assert.Empty(t, broken.Matches)
}

func TestScan_Thresholds(t *testing.T) {
	s, err := NewScanner(newCorpus(t))
	require.NoError(t, err)
	defer s.Release()

	t.Run("min similarity filters before scoring", func(t *testing.T) {
		outcomes, err := s.Scan(Job{Root: "subtitle", Scorer: newScorer(t, "hello"), MinSimilarity: 0.5, MinRatio: 50})
		require.NoError(t, err)
		require.Len(t, outcomes[0].Matches, 1)
		assert.Equal(t, "00:01", outcomes[0].Matches[0].Timestamp)
	})

	t.Run("min ratio drops weak matches", func(t *testing.T) {
		outcomes, err := s.Scan(Job{Root: "subtitle", Scorer: newScorer(t, "zzz"), MinRatio: 50})
		require.NoError(t, err)
		for _, o := range outcomes {
			assert.Empty(t, o.Matches)
		}
	})

	t.Run("zero ratio keeps everything scored", func(t *testing.T) {
		outcomes, err := s.Scan(Job{Root: "subtitle", Scorer: newScorer(t, "zzz"), MinRatio: 0})
		require.NoError(t, err)
		assert.Len(t, outcomes[0].Matches, 3)
		assert.Len(t, outcomes[1].Matches, 1)
	})
}

func TestScan_Errors(t *testing.T) {
	s, err := NewScanner(afero.NewMemMapFs())
	require.NoError(t, err)
	defer s.Release()

	_, err = s.Scan(Job{Root: "subtitle"})
	assert.Equal(t, ErrScorerRequired, err)

	_, err = s.Scan(Job{Root: "subtitle", Scorer: newScorer(t, "x")})
	assert.ErrorIs(t, err, ErrCorpusRootMissing)
}

func TestScan_Callbacks(t *testing.T) {
	s, err := NewScanner(newCorpus(t), WithFileWorkers(3))
	require.NoError(t, err)
	defer s.Release()

	var enumerated int
	var mu sync.Mutex
	var seen []string

	_, err = s.Scan(Job{
		Root:         "subtitle",
		Scorer:       newScorer(t, "hello"),
		OnEnumerated: func(n int) { enumerated = n },
		OnFile: func(o FileOutcome) {
			mu.Lock()
			defer mu.Unlock()
			seen = append(seen, o.Name)
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, enumerated)
	assert.ElementsMatch(t, []string{"a.json", "b.json", "broken.json"}, seen)
}

// countingScorer records how many texts it scored.
type countingScorer struct {
	calls atomic.Int64
}

func (c *countingScorer) Score(text string) match.Score {
	c.calls.Add(1)
	return match.Score{Ratio: 100, Exact: strings.Contains(text, "x")}
}

func TestScan_ChunkedFilesKeepOrder(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("corpus", 0o750))
	for f := 0; f < 5; f++ {
		var b strings.Builder
		b.WriteString("[")
		for i := 0; i < 100; i++ {
			if i > 0 {
				b.WriteString(",")
			}
			fmt.Fprintf(&b, `{"timestamp": "%d", "similarity": 1, "text": "line %d"}`, i, i)
		}
		b.WriteString("]")
		writeFile(t, fs, fmt.Sprintf("corpus/%d.json", f), b.String())
	}

	s, err := NewScanner(fs, WithFileWorkers(2), WithSegmentWorkers(3), WithChunkSize(7))
	require.NoError(t, err)
	defer s.Release()

	scorer := &countingScorer{}
	outcomes, err := s.Scan(Job{Root: "corpus", Scorer: scorer})
	require.NoError(t, err)
	assert.Equal(t, int64(500), scorer.calls.Load())

	for _, o := range outcomes {
		require.Len(t, o.Matches, 100)
		for i, m := range o.Matches {
			assert.Equal(t, i, m.Position)
			assert.Equal(t, fmt.Sprintf("line %d", i), m.Text)
		}
	}
}

func TestScanner_ReleaseStopsWorkers(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	s, err := NewScanner(newCorpus(t), WithFileWorkers(4), WithSegmentWorkers(4))
	require.NoError(t, err)

	_, err = s.Scan(Job{Root: "subtitle", Scorer: newScorer(t, "hello")})
	require.NoError(t, err)

	s.Release()
}
