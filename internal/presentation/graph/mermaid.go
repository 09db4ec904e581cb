// Package graph renders a workflow as Mermaid flowchart syntax, so a
// workspace can be inspected visually from the CLI or a markdown viewer.
package graph

import (
	"fmt"
	"strings"

	"github.com/covetools/cove/pkg/workflow"
)

// Overlay contains dynamic state data to visualize on the graph.
type Overlay struct {
	// Computed resources are highlighted as already evaluated.
	Computed []string
	// Failed marks the resource whose step aborted the last run.
	Failed string
}

// GenerateMermaid produces a Mermaid flowchart from a workflow graph.
// Semantic styling:
// - Step: [[Subroutine]], labeled "resource = op"
// - Literal input: (Rounded), dotted edge into its step
// - Graph output alias: [/Parallelogram/]
// Data flows top-down in insertion order, edges labeled with the port
// they feed.
func GenerateMermaid(g *workflow.Graph, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, step := range g.Steps() {
		safeID := sanitizeMermaidID(step.Name())
		sb.WriteString(fmt.Sprintf("    %s[[\"%s = %s\"]]\n", safeID, step.Name(), step.OpName()))

		for _, port := range step.Inputs() {
			if ref := port.Source(); ref != nil {
				safeFrom := sanitizeMermaidID(ref.Step)
				arrow := fmt.Sprintf("-- \"%s\" -->", port.Name())
				if src, ok := g.Step(ref.Step); ok && len(src.Outputs()) > 1 {
					// Multi-output producers carry the port on the label.
					arrow = fmt.Sprintf("-- \"%s → %s\" -->", ref.Port, port.Name())
				}
				sb.WriteString(fmt.Sprintf("    %s %s %s\n", safeFrom, arrow, safeID))
				continue
			}
			if value, ok := port.Value(); ok {
				litID := fmt.Sprintf("%s_%s_lit", safeID, sanitizeMermaidID(port.Name()))
				label := strings.ReplaceAll(fmt.Sprintf("%v", value), "\"", "'")
				if len(label) > 24 {
					label = label[:21] + "..."
				}
				sb.WriteString(fmt.Sprintf("    %s(\"%s\")\n", litID, label))
				sb.WriteString(fmt.Sprintf("    %s -. \"%s\" .-> %s\n", litID, port.Name(), safeID))
			}
		}
	}

	for _, out := range g.Outputs() {
		ref := out.Source()
		if ref == nil {
			continue
		}
		outID := "out_" + sanitizeMermaidID(out.Name())
		sb.WriteString(fmt.Sprintf("    %s[/\"%s\"/]\n", outID, out.Name()))
		sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", sanitizeMermaidID(ref.Step), ref.Port, outID))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text for high contrast regardless of theme.
		sb.WriteString("    classDef computed fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef failed fill:#ffcdd2,stroke:#b71c1c,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, name := range overlay.Computed {
			safeID := sanitizeMermaidID(name)
			if safeID != "" && !seen[safeID] {
				seen[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s computed;\n", safeID))
			}
		}
		if overlay.Failed != "" {
			sb.WriteString(fmt.Sprintf("    class %s failed;\n", sanitizeMermaidID(overlay.Failed)))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
