package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [base_dir]",
	Short: "Reset a workspace's workflow",
	Long:  `Removes all steps and outputs from the workspace's workflow while keeping its header metadata.`,
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

		if err := mgr.CleanWorkspace(cmd.Context(), baseDir); err != nil {
			fail(err)
		}
		fmt.Println("Workspace cleaned")
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
