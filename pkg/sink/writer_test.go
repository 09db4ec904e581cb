package sink_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covetools/cove/pkg/sink"
)

func writeTo(t *testing.T, name, format string, value any) string {
	t.Helper()
	dest := filepath.Join(t.TempDir(), name)
	require.NoError(t, sink.NewWriter().Write(value, dest, format))
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	return string(data)
}

func TestWriter_FormatFromExtension(t *testing.T) {
	value := map[string]any{"mean": 4.5}

	assert.JSONEq(t, `{"mean":4.5}`, writeTo(t, "out.json", "", value))
	assert.Equal(t, "mean: 4.5\n", writeTo(t, "out.yaml", "", value))
	assert.Equal(t, "mean,4.5\n", writeTo(t, "out.csv", "", value))
	assert.Equal(t, "10\n", writeTo(t, "out.txt", "", 10))
	// Unknown extension defaults to JSON.
	assert.JSONEq(t, `{"mean":4.5}`, writeTo(t, "out.dat", "", value))
}

func TestWriter_FormatHintWins(t *testing.T) {
	// A YAML hint overrides the .json extension.
	out := writeTo(t, "out.json", "yaml", map[string]any{"a": 1})
	assert.Equal(t, "a: 1\n", out)
}

func TestWriter_CSVList(t *testing.T) {
	out := writeTo(t, "out.csv", "", []any{1.0, 2.0})
	assert.Equal(t, "1\n2\n", out)
}

func TestWriter_Errors(t *testing.T) {
	w := sink.NewWriter()
	assert.Error(t, w.Write(1, "", ""), "a destination is required")
	assert.Error(t, w.Write(1, filepath.Join(t.TempDir(), "x"), "xml"), "unknown formats are rejected")
}

func TestPlotter_SeriesAndTable(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "plot.txt")
	p := sink.NewTerminalPlotter(nil)

	require.NoError(t, p.Plot([]any{1.0, 3.0, 2.0}, "", dest))
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "│")
	assert.Contains(t, string(data), "3")

	require.NoError(t, p.Plot(map[string]any{"mean": 2.0}, "", dest))
	data, err = os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "mean")
}

func TestPlotter_VarSelection(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "plot.txt")
	p := sink.NewTerminalPlotter(nil)

	value := map[string]any{"series": []any{1.0, 2.0}, "note": "x"}
	require.NoError(t, p.Plot(value, "series", dest))

	assert.Error(t, p.Plot(value, "missing", dest))
	assert.Error(t, p.Plot(3.0, "missing", dest), "scalar values have no variables")
}
