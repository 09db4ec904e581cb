package monitor_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covetools/cove/pkg/monitor"
)

func TestChild_ProportionalReporting(t *testing.T) {
	var buf bytes.Buffer
	parent := monitor.NewConsole(&buf)
	parent.Start("task", 10)

	child := parent.Child(5)
	child.Start("sub-task", 10)
	child.Progress(5, "halfway")

	// Half of a 5-unit slice is a quarter of the parent budget.
	assert.Contains(t, buf.String(), "25%")
	assert.Contains(t, buf.String(), "halfway")

	// Done credits the unreported remainder of the slice.
	child.Done()
	assert.Contains(t, buf.String(), "50%")
}

func TestChild_NestedSlices(t *testing.T) {
	var buf bytes.Buffer
	parent := monitor.NewConsole(&buf)
	parent.Start("task", 10)

	outer := parent.Child(10)
	outer.Start("outer", 2)

	inner := outer.Child(1) // one of outer's 2 units = 5 parent units
	inner.Start("inner", 100)
	inner.Progress(50, "")
	assert.Contains(t, buf.String(), "25%")

	inner.Done()
	assert.Contains(t, buf.String(), "50%")
}

func TestNull_IsInert(t *testing.T) {
	m := monitor.Null()
	require.NotPanics(t, func() {
		m.Start("x", 1)
		m.Progress(1, "y")
		m.Child(1).Progress(1, "")
		m.Done()
	})
}

func TestConsole_RendersBarAndPercent(t *testing.T) {
	var buf bytes.Buffer
	m := monitor.NewConsole(&buf)

	m.Start("writing resource", 10)
	m.Progress(5, "halfway")
	m.Done()

	out := buf.String()
	assert.Contains(t, out, "writing resource")
	assert.Contains(t, out, "50%")
	assert.Contains(t, out, "100%")
	assert.True(t, strings.HasSuffix(out, "\n"), "Done finishes the line")
}

func TestLogMonitor_ReportsThroughLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	m := monitor.NewLog(logger)
	m.Start("read_json data.json", 1)
	m.Progress(1, "loaded")
	m.Done()

	out := buf.String()
	assert.Contains(t, out, "task started")
	assert.Contains(t, out, "read_json data.json")
	assert.Contains(t, out, "task progress")
	assert.Contains(t, out, "task done")
}
