package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/covetools/cove/internal/presentation/tui"
	"github.com/covetools/cove/pkg/workspace"
)

var statusCmd = &cobra.Command{
	Use:   "status [base_dir]",
	Short: "Show a workspace summary",
	Long:  `Prints the workspace's workflow: its steps in order, how their inputs are wired, and the registered output aliases.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		baseDir := "."
		if len(args) > 0 {
			baseDir = args[0]
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			fail(err)
		}
		mgr, err := newManager(cfg, newLogger(cfg))
		if err != nil {
			fail(err)
		}

		ws, err := mgr.GetWorkspace(cmd.Context(), baseDir)
		if err != nil {
			fail(err)
		}

		md := statusMarkdown(ws)
		if term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Print(tui.Render(md))
			return
		}
		fmt.Print(md)
	},
}

// statusMarkdown builds the workspace summary as markdown.
func statusMarkdown(ws *workspace.Workspace) string {
	var sb strings.Builder
	wf := ws.Workflow()

	fmt.Fprintf(&sb, "# Workspace %s\n\n", ws.BaseDir())
	if desc, ok := wf.Header()["description"].(string); ok && desc != "" {
		fmt.Fprintf(&sb, "%s\n\n", desc)
	}

	steps := wf.Steps()
	if len(steps) == 0 {
		sb.WriteString("No steps recorded.\n")
		return sb.String()
	}

	sb.WriteString("## Steps\n\n")
	sb.WriteString("| # | Resource | Operation | Inputs |\n")
	sb.WriteString("|---|----------|-----------|--------|\n")
	for i, step := range steps {
		var inputs []string
		for _, port := range step.Inputs() {
			switch {
			case port.Source() != nil:
				inputs = append(inputs, fmt.Sprintf("%s ← %s", port.Name(), port.Source()))
			default:
				if v, ok := port.Value(); ok {
					inputs = append(inputs, fmt.Sprintf("%s = %v", port.Name(), v))
				}
			}
		}
		fmt.Fprintf(&sb, "| %d | %s | %s | %s |\n", i+1, step.Name(), step.OpName(), strings.Join(inputs, ", "))
	}

	if outs := wf.Outputs(); len(outs) > 0 {
		sb.WriteString("\n## Outputs\n\n")
		for _, out := range outs {
			if ref := out.Source(); ref != nil {
				fmt.Fprintf(&sb, "- **%s** ← %s\n", out.Name(), ref)
			}
		}
	}
	return sb.String()
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
