package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [base_dir]",
	Short: "Create a new workspace",
	Long:  `Creates the workspace data directory and an empty workflow in the given base directory (default: current directory).`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		baseDir := "."
		if len(args) > 0 {
			baseDir = args[0]
		}
		description, _ := cmd.Flags().GetString("description")

		cfg, err := loadConfig(cmd)
		if err != nil {
			fail(err)
		}
		mgr, err := newManager(cfg, newLogger(cfg))
		if err != nil {
			fail(err)
		}

		ws, err := mgr.InitWorkspace(cmd.Context(), baseDir, description)
		if err != nil {
			fail(err)
		}
		fmt.Printf("Workspace created at %s\n", ws.BaseDir())
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringP("description", "d", "", "Workspace description stored in the workflow header")
}
