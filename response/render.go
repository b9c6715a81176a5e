package response

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/gocarina/gocsv"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Format selects how a Response is written.
type Format string

const (
	FormatJSON  Format = "json"
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
)

// ParseFormat converts a format name into a Format.
func ParseFormat(name string) (Format, error) {
	switch f := Format(name); f {
	case FormatJSON, FormatTable, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Render writes resp to w in the given format.
func Render(w io.Writer, resp *Response, format Format) error {
	if resp == nil {
		return ErrNilResponse
	}
	switch format {
	case FormatJSON:
		return RenderJSON(w, resp)
	case FormatTable:
		return RenderTable(w, resp)
	case FormatCSV:
		return RenderCSV(w, resp)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// RenderJSON writes v as a single line of JSON.
func RenderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// RenderTable writes the matches as a table, or the message and suggestions
// when there are none.
func RenderTable(w io.Writer, resp *Response) error {
	if resp.Empty() {
		if _, err := fmt.Fprintln(w, resp.Message); err != nil {
			return err
		}
		for _, s := range resp.Suggestions {
			if _, err := fmt.Fprintf(w, "  - %s\n", s); err != nil {
				return err
			}
		}
		return nil
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "File", "Timestamp", "Similarity", "Ratio", "Exact", "Text"})
	for i, r := range resp.Data {
		tw.AppendRow(table.Row{
			i + 1,
			r.Filename,
			r.Timestamp,
			strconv.FormatFloat(r.Similarity, 'f', 3, 64),
			strconv.FormatFloat(r.MatchRatio, 'f', 1, 64),
			r.ExactMatch,
			r.Text,
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 5, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	_, err := fmt.Fprintf(w, "%s\n%d matches in %s (max results: %s, files scanned: %d, skipped: %d)\n",
		tw.Render(), resp.Count, resp.Folder, resp.MaxResults, resp.FilesScanned, resp.FilesSkipped)
	return err
}

// RenderCSV writes one row per match, preceded by a header row.
func RenderCSV(w io.Writer, resp *Response) error {
	return gocsv.Marshal(resp.Data, w)
}
