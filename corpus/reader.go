package corpus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/poiesic/subseek/core"
	"github.com/spf13/afero"
)

// Extension is the suffix of corpus files. Matching is case-sensitive.
const Extension = ".json"

// segmentRecord is the on-disk form of a segment. Every field is required.
type segmentRecord struct {
	Timestamp  *string  `json:"timestamp"`
	Similarity *float64 `json:"similarity"`
	Text       *string  `json:"text"`
}

// CheckRoot verifies that root is an existing directory.
func CheckRoot(fs afero.Fs, root string) error {
	ok, err := afero.DirExists(fs, root)
	if err != nil || !ok {
		return fmt.Errorf("%w: %s", ErrCorpusRootMissing, root)
	}
	return nil
}

// ListFiles returns the names of the corpus files directly inside root,
// sorted by name. Subdirectories are not descended into.
func ListFiles(fs afero.Fs, root string) ([]string, error) {
	if err := CheckRoot(fs, root); err != nil {
		return nil, err
	}

	entries, err := afero.ReadDir(fs, root)
	if err != nil {
		return nil, fmt.Errorf("failed to list corpus directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != Extension {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	return names, nil
}

// ReadFile reads and decodes one corpus file.
// Errors wrap ErrUnreadable or ErrMalformed.
func ReadFile(fs afero.Fs, name string) ([]core.Segment, error) {
	data, err := afero.ReadFile(fs, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	return DecodeSegments(data)
}

// DecodeSegments decodes a JSON array of segment records.
// A null document or a record missing a field is malformed.
func DecodeSegments(data []byte) ([]core.Segment, error) {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, fmt.Errorf("%w: document is null", ErrMalformed)
	}

	var records []segmentRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	segments := make([]core.Segment, len(records))
	for i, rec := range records {
		if rec.Timestamp == nil || rec.Similarity == nil || rec.Text == nil {
			return nil, fmt.Errorf("%w: record %d is missing timestamp, similarity or text", ErrMalformed, i)
		}
		segments[i] = core.Segment{
			Timestamp:  *rec.Timestamp,
			Similarity: *rec.Similarity,
			Text:       *rec.Text,
		}
	}

	return segments, nil
}
