package config

import (
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o640))
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "subtitle", cfg.CorpusDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, 50.0, cfg.Search.MinRatio)
	assert.Equal(t, 0.0, cfg.Search.MinSimilarity)
	assert.Equal(t, 0, cfg.Search.MaxResults)
	assert.Equal(t, "lcs", cfg.Scoring.SingleWord)
	assert.Equal(t, "disjoint", cfg.Scoring.MultiWord)
	assert.GreaterOrEqual(t, cfg.Workers.Files, 1)
	assert.GreaterOrEqual(t, cfg.Workers.Segments, 1)
	assert.Equal(t, 256, cfg.Workers.ChunkSize)
}

func TestLoad(t *testing.T) {
	t.Run("missing default file yields defaults", func(t *testing.T) {
		cfg, found, err := Load(afero.NewMemMapFs(), "")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		writeConfig(t, fs, DefaultPath, `
corpus_dir = "/data/subs"
format = "table"

[search]
min_ratio = 75.5
max_results = 10

[scoring]
multi_word = "min_partial"

[workers]
files = 3
`)
		cfg, found, err := Load(fs, "")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "/data/subs", cfg.CorpusDir)
		assert.Equal(t, "table", cfg.Format)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, 75.5, cfg.Search.MinRatio)
		assert.Equal(t, 10, cfg.Search.MaxResults)
		assert.Equal(t, "lcs", cfg.Scoring.SingleWord)
		assert.Equal(t, "min_partial", cfg.Scoring.MultiWord)
		assert.Equal(t, 3, cfg.Workers.Files)
		assert.Equal(t, 256, cfg.Workers.ChunkSize)
	})

	t.Run("explicit path", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		writeConfig(t, fs, "/etc/subseek/custom.toml", `log_level = "debug"`)
		cfg, found, err := Load(fs, "/etc/subseek/custom.toml")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("malformed file", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		writeConfig(t, fs, DefaultPath, `corpus_dir = `)
		_, found, err := Load(fs, "")
		assert.True(t, found)
		assert.ErrorIs(t, err, ErrParse)
	})

	t.Run("unknown key", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		writeConfig(t, fs, DefaultPath, `colour = "blue"`)
		_, _, err := Load(fs, "")
		assert.ErrorIs(t, err, ErrParse)
	})

	t.Run("invalid value", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		writeConfig(t, fs, DefaultPath, "[search]\nmin_ratio = 150.0\n")
		_, _, err := Load(fs, "")
		assert.ErrorIs(t, err, ErrInvalidConfig)
		assert.Contains(t, err.Error(), "search.min_ratio must be at most 100")
	})

	t.Run("nil filesystem", func(t *testing.T) {
		_, _, err := Load(nil, "")
		assert.Equal(t, ErrFilesystemRequired, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		message string
	}{
		{"empty corpus dir", func(c *Config) { c.CorpusDir = "" }, "corpus_dir is required"},
		{"log level", func(c *Config) { c.LogLevel = "trace" }, "log_level must be one of: debug info warn error"},
		{"format", func(c *Config) { c.Format = "xml" }, "format must be one of: json table csv"},
		{"negative ratio", func(c *Config) { c.Search.MinRatio = -1 }, "search.min_ratio must be at least 0"},
		{"similarity above one", func(c *Config) { c.Search.MinSimilarity = 1.5 }, "search.min_similarity must be at most 1"},
		{"negative cap", func(c *Config) { c.Search.MaxResults = -3 }, "search.max_results must be at least 0"},
		{"single word scorer", func(c *Config) { c.Scoring.SingleWord = "soundex" }, "scoring.single_word must be one of: lcs partial"},
		{"multi word scorer", func(c *Config) { c.Scoring.MultiWord = "any" }, "scoring.multi_word must be one of: disjoint min_partial"},
		{"file workers", func(c *Config) { c.Workers.Files = 0 }, "workers.files must be at least 1"},
		{"chunk size", func(c *Config) { c.Workers.ChunkSize = 0 }, "workers.chunk_size must be at least 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestMarshal(t *testing.T) {
	cfg := Default()
	cfg.Search.MaxResults = 7

	data, err := cfg.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), "corpus_dir")
	assert.Contains(t, string(data), "[workers]")

	var decoded Config
	require.NoError(t, toml.Unmarshal(data, &decoded))
	assert.Equal(t, *cfg, decoded)
}

func TestParams(t *testing.T) {
	cfg := Default()
	params := cfg.Params()
	assert.Equal(t, 50.0, params.MinRatio)
	assert.Nil(t, params.MaxResults)

	cfg.Search.MinRatio = 70
	cfg.Search.MaxResults = 4
	params = cfg.Params()
	assert.Equal(t, 70.0, params.MinRatio)
	require.NotNil(t, params.MaxResults)
	assert.Equal(t, 4, *params.MaxResults)
}
