// Package monitor provides hierarchical progress reporting for long-running
// operations such as workflow execution and resource I/O.
//
// A Monitor tracks a unit-less total-work budget for one logical operation.
// Sub-operations receive a child monitor with its own sub-budget; progress
// reported on the child is proportionally reflected in the parent.
package monitor

import (
	"log/slog"
	"sync"
)

// Monitor is the progress-reporting handle threaded through nested work.
type Monitor interface {
	// Start begins the task with a label and a total-work budget.
	Start(label string, totalWork float64)
	// Progress reports completed work units, optionally with a message.
	Progress(work float64, msg string)
	// Done marks the task complete.
	Done()
	// Child returns a monitor for a sub-task worth partialWork units of
	// this monitor's budget.
	Child(partialWork float64) Monitor
}

type nullMonitor struct{}

func (nullMonitor) Start(string, float64)    {}
func (nullMonitor) Progress(float64, string) {}
func (nullMonitor) Done()                    {}
func (nullMonitor) Child(float64) Monitor    { return nullMonitor{} }

// Null returns the shared no-op monitor for callers that do not need
// progress reporting.
func Null() Monitor { return nullMonitor{} }

// LogMonitor reports progress through a structured logger.
type LogMonitor struct {
	mu     sync.Mutex
	logger *slog.Logger
	label  string
	total  float64
	worked float64
}

// NewLog creates a monitor that logs task start, progress and completion.
func NewLog(logger *slog.Logger) *LogMonitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMonitor{logger: logger}
}

func (m *LogMonitor) Start(label string, totalWork float64) {
	m.mu.Lock()
	m.label = label
	m.total = totalWork
	m.worked = 0
	m.mu.Unlock()
	m.logger.Info("task started", "task", label, "total_work", totalWork)
}

func (m *LogMonitor) Progress(work float64, msg string) {
	m.mu.Lock()
	m.worked += work
	label, total, worked := m.label, m.total, m.worked
	m.mu.Unlock()

	args := []any{"task", label, "worked", worked}
	if total > 0 {
		args = append(args, "percent", 100*worked/total)
	}
	if msg != "" {
		args = append(args, "msg", msg)
	}
	m.logger.Info("task progress", args...)
}

func (m *LogMonitor) Done() {
	m.mu.Lock()
	label := m.label
	m.mu.Unlock()
	m.logger.Info("task done", "task", label)
}

func (m *LogMonitor) Child(partialWork float64) Monitor {
	return &childMonitor{parent: m, partial: partialWork}
}

// childMonitor maps a sub-task's budget onto a slice of the parent's.
type childMonitor struct {
	mu      sync.Mutex
	parent  Monitor
	partial float64
	total   float64
	worked  float64
}

func (c *childMonitor) Start(label string, totalWork float64) {
	c.mu.Lock()
	c.total = totalWork
	c.worked = 0
	c.mu.Unlock()
}

func (c *childMonitor) Progress(work float64, msg string) {
	c.mu.Lock()
	c.worked += work
	var parentWork float64
	if c.total > 0 {
		parentWork = c.partial * work / c.total
	}
	c.mu.Unlock()
	c.parent.Progress(parentWork, msg)
}

func (c *childMonitor) Done() {
	c.mu.Lock()
	remaining := c.total - c.worked
	c.worked = c.total
	c.mu.Unlock()
	// Credit the parent with any work the sub-task never reported.
	if remaining > 0 && c.total > 0 {
		c.parent.Progress(c.partial*remaining/c.total, "")
	}
}

func (c *childMonitor) Child(partialWork float64) Monitor {
	return &childMonitor{parent: c, partial: partialWork}
}
