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


package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/poiesic/subseek"
	"github.com/poiesic/subseek/config"
	"github.com/poiesic/subseek/core"
	"github.com/poiesic/subseek/query"
	"github.com/poiesic/subseek/response"
	"github.com/poiesic/subseek/search"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"
)

// exitPrecondition is the exit code of a rejected request. Internal failures
// exit with 1 and every success record, including an empty one, with 0.
const exitPrecondition = 2

const (
	metaConfig = "config"
	metaFs     = "fs"
)

func main() {
	if err := newApp(afero.NewOsFs()).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(fs afero.Fs) *cli.App {
	return &cli.App{
		Name:      "subseek",
		Usage:     "Fuzzy search over a directory of subtitle files",
		UsageText: "echo 'query=hello%20world&min_ratio=80&max_results=5' | subseek [options]",
		Metadata:  map[string]interface{}{metaFs: fs},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error); overrides the config file",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the TOML configuration file",
				Value:   config.DefaultPath,
			},
			&cli.StringFlag{
				Name:  "corpus",
				Usage: "Directory holding the subtitle JSON files",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format (json, table, csv)",
			},
			&cli.StringFlag{
				Name:    "query",
				Aliases: []string{"q"},
				Usage:   "Search query; when set, parameters are not read from stdin",
			},
			&cli.Float64Flag{
				Name:  "min-ratio",
				Usage: "Minimum match ratio (0-100)",
			},
			&cli.Float64Flag{
				Name:  "min-similarity",
				Usage: "Minimum prior similarity of a segment (0-1)",
			},
			&cli.IntFlag{
				Name:  "max-results",
				Usage: "Maximum number of results",
			},
			&cli.StringFlag{
				Name:  "single-word-scorer",
				Usage: "Metric for single-word queries (lcs, partial)",
			},
			&cli.StringFlag{
				Name:  "multi-word-scorer",
				Usage: "Metric for multi-word queries (disjoint, min_partial)",
			},
			&cli.BoolFlag{
				Name:  "progress",
				Usage: "Report scan progress on stderr",
			},
		},
		Before: setup,
		Action: searchCommand,
		Commands: []*cli.Command{
			{
				Name:   "show-config",
				Usage:  "Print the effective configuration as TOML",
				Action: showConfigCommand,
			},
		},
	}
}

func searchCommand(c *cli.Context) error {
	cfg := c.App.Metadata[metaConfig].(*config.Config)
	fs := c.App.Metadata[metaFs].(afero.Fs)

	format, err := response.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	engine, err := subseek.NewEngine(cfg, subseek.WithFs(fs), subseek.WithLogger(slog.Default()))
	if err != nil {
		return fmt.Errorf("failed to create search engine: %w", err)
	}
	defer engine.Close()

	params, err := readParams(c, engine.Defaults())
	if err != nil {
		return err
	}

	var monitor search.Monitor
	if c.Bool("progress") {
		monitor = search.NewProgressMonitor(c.App.ErrWriter, 1)
	}

	resp, err := engine.Run(params, monitor)
	if err != nil {
		if !errors.Is(err, core.ErrPrecondition) {
			return fmt.Errorf("search failed: %w", err)
		}
		// Error records are always JSON.
		if renderErr := response.RenderJSON(c.App.Writer, response.Error(err)); renderErr != nil {
			return renderErr
		}
		return cli.Exit("", exitPrecondition)
	}

	return response.Render(c.App.Writer, resp, format)
}

func showConfigCommand(c *cli.Context) error {
	cfg := c.App.Metadata[metaConfig].(*config.Config)
	data, err := cfg.Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	_, err = c.App.Writer.Write(data)
	return err
}

// readParams builds the request from stdin and flags. Flags win over the
// stdin line, which wins over defaults. Stdin is not read when --query is set.
func readParams(c *cli.Context, defaults query.Params) (query.Params, error) {
	params := defaults

	if !c.IsSet("query") {
		if isTerminal(c.App.Reader) {
			fmt.Fprint(c.App.ErrWriter, "query=...&min_ratio=...&min_similarity=...&max_results=...: ")
		}
		line, err := bufio.NewReader(c.App.Reader).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return params, fmt.Errorf("failed to read parameters: %w", err)
		}
		params = query.ParseLine(line, defaults)
	} else {
		params.Query = c.String("query")
	}

	if c.IsSet("min-ratio") {
		params.MinRatio = c.Float64("min-ratio")
	}
	if c.IsSet("min-similarity") {
		params.MinSimilarity = c.Float64("min-similarity")
	}
	if c.IsSet("max-results") {
		limit := c.Int("max-results")
		params.MaxResults = &limit
	}
	return params, nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// setup loads the configuration, applies flag overrides and configures logging.
func setup(c *cli.Context) error {
	fs := c.App.Metadata[metaFs].(afero.Fs)

	cfg, found, err := config.Load(fs, c.String("config"))
	if err != nil {
		return err
	}
	if !found && c.IsSet("config") {
		return fmt.Errorf("config file %s not found", c.String("config"))
	}

	overrides := map[string]*string{
		"log-level":          &cfg.LogLevel,
		"corpus":             &cfg.CorpusDir,
		"format":             &cfg.Format,
		"single-word-scorer": &cfg.Scoring.SingleWord,
		"multi-word-scorer":  &cfg.Scoring.MultiWord,
	}
	for flag, field := range overrides {
		if c.IsSet(flag) {
			*field = c.String(flag)
		}
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := setupLogger(c.App.ErrWriter, cfg.LogLevel); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	slog.Debug("configuration loaded", "path", c.String("config"), "found", found, "corpus", cfg.CorpusDir)
	c.App.Metadata[metaConfig] = cfg
	return nil
}

func setupLogger(w io.Writer, levelStr string) error {
	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level, tagging every record with the run id
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})).With("run", uuid.NewString())
	slog.SetDefault(logger)

	return nil
}
