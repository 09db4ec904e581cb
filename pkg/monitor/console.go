package monitor

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/muesli/termenv"
)

const consoleBarWidth = 24

// ConsoleMonitor renders progress as an in-place bar on a terminal.
type ConsoleMonitor struct {
	mu     sync.Mutex
	out    io.Writer
	prof   termenv.Profile
	label  string
	total  float64
	worked float64
}

// NewConsole creates a monitor rendering to out. Colors degrade with the
// terminal's capabilities.
func NewConsole(out io.Writer) *ConsoleMonitor {
	return &ConsoleMonitor{
		out:  out,
		prof: termenv.ColorProfile(),
	}
}

func (m *ConsoleMonitor) Start(label string, totalWork float64) {
	m.mu.Lock()
	m.label = label
	m.total = totalWork
	m.worked = 0
	m.mu.Unlock()
	m.render("")
}

func (m *ConsoleMonitor) Progress(work float64, msg string) {
	m.mu.Lock()
	m.worked += work
	m.mu.Unlock()
	m.render(msg)
}

func (m *ConsoleMonitor) Done() {
	m.mu.Lock()
	m.worked = m.total
	m.mu.Unlock()
	m.render("")
	fmt.Fprintln(m.out)
}

func (m *ConsoleMonitor) Child(partialWork float64) Monitor {
	return &childMonitor{parent: m, partial: partialWork}
}

func (m *ConsoleMonitor) render(msg string) {
	m.mu.Lock()
	label, total, worked := m.label, m.total, m.worked
	m.mu.Unlock()

	var frac float64
	if total > 0 {
		frac = worked / total
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(frac * consoleBarWidth)

	bar := termenv.String(strings.Repeat("█", filled)).
		Foreground(m.prof.Color("#38bdf8")).String() +
		strings.Repeat("░", consoleBarWidth-filled)

	line := fmt.Sprintf("\r%s [%s] %3.0f%%", label, bar, 100*frac)
	if msg != "" {
		line += " " + msg
	}
	// Pad to clear leftovers from a longer previous message.
	fmt.Fprintf(m.out, "%-100s", line)
}
