package search

import (
	"github.com/poiesic/subseek/core"
	"github.com/poiesic/subseek/corpus"
)

// Monitor provides hooks to observe a search.
// FileDone is called from worker goroutines; the other hooks run on the
// caller's goroutine.
type Monitor interface {
	Start(query string)
	FilesEnumerated(count int)
	FileDone(outcome corpus.FileOutcome)
	Ranked(candidates int)
	Finish(results []core.Match)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                {}
func (n *noopMonitor) FilesEnumerated(_ int)         {}
func (n *noopMonitor) FileDone(_ corpus.FileOutcome) {}
func (n *noopMonitor) Ranked(_ int)                  {}
func (n *noopMonitor) Finish(_ []core.Match)         {}
