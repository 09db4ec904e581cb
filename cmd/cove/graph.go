package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/covetools/cove/internal/presentation/graph"
	"github.com/covetools/cove/internal/presentation/tui"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [base_dir]",
	Short: "Export the workflow visualization",
	Long:  `Inspects the workspace and outputs a Mermaid diagram (graph TD) of its dataflow: steps, port wiring and output aliases.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		baseDir := "."
		if len(args) > 0 {
			baseDir = args[0]
		}
		render, _ := cmd.Flags().GetBool("render")

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

		output := graph.GenerateMermaid(ws.Workflow(), nil)
		if render && term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Print(tui.Render("```mermaid\n" + output + "```\n"))
			return
		}
		fmt.Print(output)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Bool("render", false, "Render the diagram source as markdown in the terminal")
}
