package search

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/poiesic/subseek/core"
	"github.com/poiesic/subseek/corpus"
)

// ProgressMonitor reports how many corpus files have been scanned.
// It is safe for concurrent use.
type ProgressMonitor struct {
	noopMonitor

	writer         io.Writer
	total          int
	current        int
	skipped        int
	reportInterval int
	lastReported   int
	startTime      time.Time
	started        bool
	mu             sync.Mutex
}

var _ Monitor = (*ProgressMonitor)(nil)

// NewProgressMonitor creates a progress monitor.
// writer: where to write progress output (typically os.Stderr)
// reportInterval: report progress every N files
func NewProgressMonitor(writer io.Writer, reportInterval int) *ProgressMonitor {
	if reportInterval < 1 {
		reportInterval = 1
	}
	return &ProgressMonitor{
		writer:         writer,
		reportInterval: reportInterval,
	}
}

// Start begins tracking progress.
func (p *ProgressMonitor) Start(_ string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.startTime = time.Now()
	p.started = true
	p.total = 0
	p.current = 0
	p.skipped = 0
	p.lastReported = 0
}

// FilesEnumerated sets the number of files to scan.
func (p *ProgressMonitor) FilesEnumerated(count int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.total = count
}

// FileDone counts one finished file.
func (p *ProgressMonitor) FileDone(outcome corpus.FileOutcome) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	p.current++
	if outcome.Skipped {
		p.skipped++
	}
	if p.current > p.total {
		p.current = p.total
	}

	// Report if we've crossed a report interval
	if p.current-p.lastReported >= p.reportInterval {
		p.report()
		p.lastReported = p.current
	}
}

// Finish prints final progress.
func (p *ProgressMonitor) Finish(_ []core.Match) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	p.current = p.total
	p.report()
	fmt.Fprintln(p.writer) // Print newline after final progress
}

// Elapsed returns the time elapsed since Start was called.
func (p *ProgressMonitor) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return 0
	}

	return time.Since(p.startTime)
}

// report prints the current progress. Must be called with lock held.
func (p *ProgressMonitor) report() {
	elapsed := time.Since(p.startTime)
	rate := float64(p.current) / elapsed.Seconds()

	percentage := 100.0
	if p.total > 0 {
		percentage = float64(p.current) / float64(p.total) * 100.0
	}

	fmt.Fprintf(p.writer, "\rScanned: %d/%d files (%.1f%%), %d skipped - %.1f files/s",
		p.current, p.total, percentage, p.skipped, rate)
}
