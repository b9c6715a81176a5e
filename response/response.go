package response

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/poiesic/subseek/core"
	"github.com/poiesic/subseek/query"
	"github.com/poiesic/subseek/search"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Record is one matched subtitle line.
type Record struct {
	Id         core.ID `json:"id" csv:"id"`
	Filename   string  `json:"filename" csv:"filename"`
	Timestamp  string  `json:"timestamp" csv:"timestamp"`
	Similarity float64 `json:"similarity" csv:"similarity"`
	Text       string  `json:"text" csv:"text"`
	MatchRatio float64 `json:"match_ratio" csv:"match_ratio"`
	ExactMatch bool    `json:"exact_match" csv:"exact_match"`
}

// MaxResults is the result cap as shown to callers. Zero means no cap.
type MaxResults int

// String returns the cap, or "unlimited" when there is none.
func (m MaxResults) String() string {
	if m <= 0 {
		return "unlimited"
	}
	return strconv.Itoa(int(m))
}

// MarshalJSON encodes the cap as a number, or the string "unlimited".
func (m MaxResults) MarshalJSON() ([]byte, error) {
	if m <= 0 {
		return json.Marshal(m.String())
	}
	return json.Marshal(int(m))
}

// Response is the success record of a search.
type Response struct {
	Status       string     `json:"status"`
	Data         []Record   `json:"data"`
	Count        int        `json:"count"`
	Folder       string     `json:"folder"`
	MaxResults   MaxResults `json:"max_results"`
	FilesScanned int        `json:"files_scanned"`
	FilesSkipped int        `json:"files_skipped"`
	Message      string     `json:"message,omitempty"`
	Suggestions  []string   `json:"suggestions,omitempty"`
}

// Empty reports whether the search matched nothing.
func (r *Response) Empty() bool {
	return r.Count == 0
}

// ErrorResponse is the record emitted when a run is rejected before scanning.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Error builds the error record for err.
func Error(err error) *ErrorResponse {
	return &ErrorResponse{Status: StatusError, Message: err.Error()}
}

// Assemble builds the success record for a finished search over folder.
// An empty report yields a record with a message and suggestions.
func Assemble(report *search.Report, cfg *query.Config, folder string) *Response {
	resp := &Response{
		Status:     StatusSuccess,
		Data:       []Record{},
		Folder:     folder,
		MaxResults: MaxResults(cfg.MaxResults),
	}

	if report != nil {
		resp.FilesScanned = report.Scanned()
		resp.FilesSkipped = report.Skipped()
		resp.Data = make([]Record, 0, len(report.Matches))
		for _, m := range report.Matches {
			resp.Data = append(resp.Data, newRecord(m))
		}
	}
	resp.Count = len(resp.Data)

	if resp.Empty() {
		resp.Message = fmt.Sprintf("no matches found for '%s'", cfg.Raw)
		resp.Suggestions = Suggestions(cfg)
	}
	return resp
}

// Suggestions returns the guidance shown when a query matched nothing.
func Suggestions(cfg *query.Config) []string {
	return []string{
		"Check the query for typos",
		fmt.Sprintf("Try lowering the minimum match ratio (current: %s%%)", formatFloat(cfg.MinRatio)),
		fmt.Sprintf("Try lowering the minimum similarity (current: %s)", formatFloat(cfg.MinSimilarity)),
		"Try a shorter query",
	}
}

func newRecord(m core.Match) Record {
	return Record{
		Id:         m.Id,
		Filename:   m.File,
		Timestamp:  m.Timestamp,
		Similarity: m.Similarity,
		Text:       m.Text,
		MatchRatio: m.Ratio,
		ExactMatch: m.ExactMatch,
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
