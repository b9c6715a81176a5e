package response

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"json", "table", "csv"} {
		f, err := ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, Format(name), f)
	}

	_, err := ParseFormat("xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestRender(t *testing.T) {
	resp := Assemble(sampleReport(), newQuery(t, "hello"), "subtitle")

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, resp, FormatJSON))
		out := buf.String()
		assert.True(t, strings.HasPrefix(out, `{"status":"success"`))
		assert.Equal(t, 1, strings.Count(out, "\n"), "one record per line")
	})

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, resp, FormatTable))
		out := buf.String()
		assert.Contains(t, out, "hello world")
		assert.Contains(t, out, "a.json")
		assert.Contains(t, out, "100.0")
		assert.Contains(t, out, "1 matches in subtitle (max results: unlimited, files scanned: 1, skipped: 1)")
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, resp, FormatCSV))
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "id,filename,timestamp,similarity,text,match_ratio,exact_match", lines[0])
		assert.Equal(t, resp.Data[0].Id.String()+",a.json,00:01,0.9,hello world,100,true", lines[1])
	})

	t.Run("unknown format", func(t *testing.T) {
		var buf bytes.Buffer
		assert.ErrorIs(t, Render(&buf, resp, Format("xml")), ErrUnknownFormat)
	})

	t.Run("nil response", func(t *testing.T) {
		var buf bytes.Buffer
		assert.Equal(t, ErrNilResponse, Render(&buf, nil, FormatJSON))
	})
}

func TestRenderTable_Empty(t *testing.T) {
	resp := Assemble(nil, newQuery(t, "zzz"), "subtitle")

	var buf bytes.Buffer
	require.NoError(t, RenderTable(&buf, resp))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "no matches found for 'zzz'\n"))
	assert.Contains(t, out, "  - Try a shorter query\n")
}

func TestRenderCSV_Empty(t *testing.T) {
	resp := Assemble(nil, newQuery(t, "zzz"), "subtitle")

	var buf bytes.Buffer
	require.NoError(t, RenderCSV(&buf, resp))
	assert.Equal(t, "id,filename,timestamp,similarity,text,match_ratio,exact_match\n", buf.String())
}
