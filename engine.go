// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package subseek

import (
	"log/slog"

	"github.com/poiesic/subseek/config"
	"github.com/poiesic/subseek/corpus"
	"github.com/poiesic/subseek/match"
	"github.com/poiesic/subseek/query"
	"github.com/poiesic/subseek/response"
	"github.com/poiesic/subseek/search"
	"github.com/spf13/afero"
)

// Engine runs subtitle searches against one corpus directory.
type Engine struct {
	cfg      *config.Config
	fs       afero.Fs
	scanner  *corpus.Scanner
	searcher *search.Searcher
	logger   *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	fs     afero.Fs
	logger *slog.Logger
}

// WithFs sets the filesystem the corpus is read from.
// Default is the operating system filesystem.
func WithFs(fs afero.Fs) EngineOption {
	return func(o *engineOptions) {
		o.fs = fs
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		o.logger = logger
	}
}

// NewEngine builds an engine from cfg. A nil cfg means config.Default().
func NewEngine(cfg *config.Config, opts ...EngineOption) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Apply options
	options := &engineOptions{}
	for _, opt := range opts {
		opt(options)
	}
	if options.fs == nil {
		options.fs = afero.NewOsFs()
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	scanner, err := corpus.NewScanner(options.fs,
		corpus.WithFileWorkers(cfg.Workers.Files),
		corpus.WithSegmentWorkers(cfg.Workers.Segments),
		corpus.WithChunkSize(cfg.Workers.ChunkSize),
		corpus.WithLogger(options.logger))
	if err != nil {
		return nil, err
	}

	searcher, err := search.NewSearcher(scanner,
		search.WithSingleWordMethod(match.SingleWordMethod(cfg.Scoring.SingleWord)),
		search.WithMultiWordMethod(match.MultiWordMethod(cfg.Scoring.MultiWord)),
		search.WithLogger(options.logger))
	if err != nil {
		scanner.Release()
		return nil, err
	}

	return &Engine{
		cfg:      cfg,
		fs:       options.fs,
		scanner:  scanner,
		searcher: searcher,
		logger:   options.logger,
	}, nil
}

// Close stops the engine's worker pools.
func (e *Engine) Close() error {
	e.scanner.Release()
	return nil
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() *config.Config {
	return e.cfg
}

// Defaults returns the request parameters implied by the configuration.
func (e *Engine) Defaults() query.Params {
	return e.cfg.Params()
}

// Run validates params, searches the corpus and assembles the success record.
// Precondition failures are returned as errors wrapping core.ErrPrecondition
// before any file is read. monitor may be nil.
func (e *Engine) Run(params query.Params, monitor search.Monitor) (*response.Response, error) {
	if err := corpus.CheckRoot(e.fs, e.cfg.CorpusDir); err != nil {
		e.logger.Warn("corpus directory missing", "dir", e.cfg.CorpusDir)
		return nil, err
	}

	qcfg, err := params.Config()
	if err != nil {
		e.logger.Warn("rejected search request", "query", params.Query, "err", err)
		return nil, err
	}

	report, err := e.searcher.SearchWithMonitor(e.cfg.CorpusDir, qcfg, monitor)
	if err != nil {
		return nil, err
	}

	return response.Assemble(report, qcfg, e.cfg.CorpusDir), nil
}
