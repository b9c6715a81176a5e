package core

import (
	"encoding/binary"
	"fmt"

	"github.com/go-crypt/x/blake2b"
)

// ID is a stable identifier for a segment, derived from its content.
type ID uint64

// IDFromContent generates a deterministic ID from text parts using BLAKE2b hashing.
// Parts are separated by a zero byte so that ("ab", "c") and ("a", "bc") differ.
func IDFromContent(parts ...string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	for i, part := range parts {
		if i > 0 {
			h.Write([]byte{0})
		}
		h.Write([]byte(part))
	}
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// String renders the ID as 16 lowercase hex digits.
func (id ID) String() string {
	return fmt.Sprintf("%016x", uint64(id))
}

// MarshalText renders the ID the same way as String.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// Segment is one searchable subtitle line read from a corpus file.
type Segment struct {
	Timestamp  string  // Display string, never parsed
	Similarity float64 // Prior relevance annotation in [0,1], independent of the query
	Text       string
}

// Match is a segment that passed both thresholds for a query.
// Matches are never modified once created; ranking only reorders them.
type Match struct {
	Id         ID
	File       string // Base name of the corpus file
	Position   int    // Index of the segment within its file
	Timestamp  string
	Similarity float64
	Text       string
	Ratio      float64 // Match ratio in [0,100]
	ExactMatch bool    // Every query word occurs literally (case-insensitive) in Text
}

// NewMatch builds a Match for the segment at position pos of file.
func NewMatch(file string, pos int, seg Segment, ratio float64, exact bool) Match {
	return Match{
		Id:         IDFromContent(file, seg.Timestamp, seg.Text),
		File:       file,
		Position:   pos,
		Timestamp:  seg.Timestamp,
		Similarity: seg.Similarity,
		Text:       seg.Text,
		Ratio:      ratio,
		ExactMatch: exact,
	}
}
