package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resCmd = &cobra.Command{
	Use:   "res",
	Short: "Manage workspace resources",
	Long:  `Sets, writes and plots the named resources of a workspace's workflow.`,
}

var resSetCmd = &cobra.Command{
	Use:   "set <resource> <operation> [name=value ...]",
	Short: "Set a resource to an operation invocation",
	Long: `Records a workflow step computing the resource with the given operation.
Each argument is name=value: a bare resource name references another step's
output, "step.port" selects a named output, anything else is parsed as a
JSON literal. Setting an existing resource replaces its step in place.`,
	Args: cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		baseDir, _ := cmd.Flags().GetString("base-dir")
		resource, opName, opArgs := args[0], args[1], args[2:]

		cfg, err := loadConfig(cmd)
		if err != nil {
			fail(err)
		}
		mgr, err := newManager(cfg, newLogger(cfg))
		if err != nil {
			fail(err)
		}

		if err := mgr.SetWorkspaceResource(cmd.Context(), baseDir, resource, opName, opArgs); err != nil {
			fail(err)
		}
		fmt.Printf("Resource %s set to %s\n", resource, opName)
	},
}

var resWriteCmd = &cobra.Command{
	Use:   "write <resource> <file>",
	Short: "Compute a resource and write it to a file",
	Long: `Executes the minimal part of the workflow the resource depends on and
writes the value. The format is taken from --format, or inferred from the
file extension (json, yaml, csv, txt).`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		baseDir, _ := cmd.Flags().GetString("base-dir")
		formatName, _ := cmd.Flags().GetString("format")
		resource, filePath := args[0], args[1]

		cfg, err := loadConfig(cmd)
		if err != nil {
			fail(err)
		}
		logger := newLogger(cfg)
		mgr, err := newManager(cfg, logger)
		if err != nil {
			fail(err)
		}

		err = mgr.WriteWorkspaceResource(cmd.Context(), baseDir, resource, filePath, formatName, newMonitor(logger))
		if err != nil {
			fail(err)
		}
		fmt.Printf("Resource %s written to %s\n", resource, filePath)
	},
}

var resPlotCmd = &cobra.Command{
	Use:   "plot <resource>",
	Short: "Compute a resource and plot it",
	Long: `Executes the minimal part of the workflow the resource depends on and
renders the value as a terminal chart. With --var, only the named variable
of a mapping value is plotted.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		baseDir, _ := cmd.Flags().GetString("base-dir")
		varName, _ := cmd.Flags().GetString("var")
		filePath, _ := cmd.Flags().GetString("out")
		resource := args[0]

		cfg, err := loadConfig(cmd)
		if err != nil {
			fail(err)
		}
		logger := newLogger(cfg)
		mgr, err := newManager(cfg, logger)
		if err != nil {
			fail(err)
		}

		err = mgr.PlotWorkspaceResource(cmd.Context(), baseDir, resource, varName, filePath, newMonitor(logger))
		if err != nil {
			fail(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(resCmd)
	resCmd.PersistentFlags().StringP("base-dir", "b", ".", "Workspace base directory")
	resCmd.AddCommand(resSetCmd)
	resCmd.AddCommand(resWriteCmd)
	resWriteCmd.Flags().StringP("format", "f", "", "Output format (json, yaml, csv, txt)")
	resCmd.AddCommand(resPlotCmd)
	resPlotCmd.Flags().String("var", "", "Variable of the resource value to plot")
	resPlotCmd.Flags().String("out", "", "Write the rendered plot to a file instead of the terminal")
}
