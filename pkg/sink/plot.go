package sink

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/muesli/termenv"
)

// TerminalPlotter renders resource values in the terminal: a colored bar
// chart for numeric series, a key/value table otherwise. With a destination
// path the rendering is written there as plain text instead.
type TerminalPlotter struct {
	out     io.Writer
	profile termenv.Profile
}

// NewTerminalPlotter creates a plotter writing to out.
func NewTerminalPlotter(out io.Writer) *TerminalPlotter {
	if out == nil {
		out = os.Stdout
	}
	return &TerminalPlotter{
		out:     out,
		profile: termenv.ColorProfile(),
	}
}

const plotWidth = 40

// Plot renders value. varName narrows a map value to one entry first.
func (p *TerminalPlotter) Plot(value any, varName, destPath string) error {
	if varName != "" {
		m, ok := value.(map[string]any)
		if !ok {
			return fmt.Errorf("plot: variable %q requested but value is %T", varName, value)
		}
		v, ok := m[varName]
		if !ok {
			return fmt.Errorf("plot: value has no variable %q", varName)
		}
		value = v
	}

	rendering, err := p.render(value)
	if err != nil {
		return err
	}

	if destPath != "" {
		if err := os.WriteFile(destPath, []byte(rendering), 0o644); err != nil {
			return fmt.Errorf("plot %s: %w", destPath, err)
		}
		return nil
	}
	_, err = io.WriteString(p.out, rendering)
	return err
}

func (p *TerminalPlotter) render(value any) (string, error) {
	if series, ok := asSeries(value); ok {
		return p.renderBars(series), nil
	}
	if m, ok := value.(map[string]any); ok {
		return p.renderTable(m), nil
	}
	switch value.(type) {
	case float64, int, int64, bool, string, nil:
		return fmt.Sprintf("%v\n", value), nil
	}
	return "", fmt.Errorf("don't know how to plot a %T", value)
}

func (p *TerminalPlotter) renderBars(series []float64) string {
	min, max := series[0], series[0]
	for _, v := range series {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	span := max - min
	var sb strings.Builder
	for i, v := range series {
		width := plotWidth
		if span > 0 {
			width = int((v - min) / span * plotWidth)
		}
		bar := termenv.String(strings.Repeat("█", width)).
			Foreground(p.profile.Color("#36a3d9")).
			String()
		fmt.Fprintf(&sb, "%4d │%-*s %g\n", i, plotWidth, bar, v)
	}
	return sb.String()
}

func (p *TerminalPlotter) renderTable(m map[string]any) string {
	var sb strings.Builder
	for _, key := range sortedKeys(m) {
		label := termenv.String(key).Bold().String()
		fmt.Fprintf(&sb, "%s: %v\n", label, m[key])
	}
	return sb.String()
}

func asSeries(value any) ([]float64, bool) {
	switch v := value.(type) {
	case []float64:
		if len(v) == 0 {
			return nil, false
		}
		return v, true
	case []any:
		if len(v) == 0 {
			return nil, false
		}
		series := make([]float64, 0, len(v))
		for _, item := range v {
			f, ok := item.(float64)
			if !ok {
				return nil, false
			}
			series = append(series, f)
		}
		return series, true
	}
	return nil, false
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
