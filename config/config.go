package config

import (
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"runtime"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"github.com/poiesic/subseek/match"
	"github.com/poiesic/subseek/query"
	"github.com/spf13/afero"
)

// DefaultPath is the configuration file looked up in the working directory.
const DefaultPath = "subseek.toml"

// Config is the complete subseek configuration.
type Config struct {
	CorpusDir string  `toml:"corpus_dir" validate:"required"`
	LogLevel  string  `toml:"log_level" validate:"oneof=debug info warn error"`
	Format    string  `toml:"format" validate:"oneof=json table csv"`
	Search    Search  `toml:"search"`
	Scoring   Scoring `toml:"scoring"`
	Workers   Workers `toml:"workers"`
}

// Search holds the default query thresholds.
type Search struct {
	MinRatio      float64 `toml:"min_ratio" validate:"gte=0,lte=100"`
	MinSimilarity float64 `toml:"min_similarity" validate:"gte=0,lte=1"`
	MaxResults    int     `toml:"max_results" validate:"gte=0"`
}

// Scoring selects the similarity metric per query mode.
type Scoring struct {
	SingleWord string `toml:"single_word" validate:"oneof=lcs partial"`
	MultiWord  string `toml:"multi_word" validate:"oneof=disjoint min_partial"`
}

// Workers sizes the scanner's worker pools.
type Workers struct {
	Files     int `toml:"files" validate:"gte=1"`
	Segments  int `toml:"segments" validate:"gte=1"`
	ChunkSize int `toml:"chunk_size" validate:"gte=1"`
}

// Default returns the built-in configuration.
func Default() *Config {
	workers := max(runtime.NumCPU()/2, 1)
	return &Config{
		CorpusDir: "subtitle",
		LogLevel:  "info",
		Format:    "json",
		Search: Search{
			MinRatio:      query.DefaultMinRatio,
			MinSimilarity: query.DefaultMinSimilarity,
		},
		Scoring: Scoring{
			SingleWord: string(match.SingleWordLCS),
			MultiWord:  string(match.MultiWordDisjoint),
		},
		Workers: Workers{
			Files:     workers,
			Segments:  workers,
			ChunkSize: 256,
		},
	}
}

// Load reads the configuration file at path on fsys over the defaults and
// validates the result. An empty path means DefaultPath. A missing file is
// not an error; found reports whether one was read.
func Load(fsys afero.Fs, path string) (cfg *Config, found bool, err error) {
	if fsys == nil {
		return nil, false, ErrFilesystemRequired
	}
	if path == "" {
		path = DefaultPath
	}

	cfg = Default()

	file, err := fsys.Open(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return cfg, false, cfg.Validate()
	case err != nil:
		return nil, false, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	decoder := toml.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		return nil, true, fmt.Errorf("%w %s: %w", ErrParse, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their TOML keys.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("toml"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// Validate checks every field against its allowed range.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		msgs = append(msgs, formatFieldError(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

func formatFieldError(fe validator.FieldError) string {
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// Marshal encodes the configuration as TOML.
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

// Params returns the configured thresholds as the defaults for a request.
func (c *Config) Params() query.Params {
	params := query.DefaultParams()
	params.MinRatio = c.Search.MinRatio
	params.MinSimilarity = c.Search.MinSimilarity
	if c.Search.MaxResults > 0 {
		limit := c.Search.MaxResults
		params.MaxResults = &limit
	}
	return params
}
