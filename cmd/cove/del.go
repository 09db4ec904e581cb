package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var delCmd = &cobra.Command{
	Use:   "del [base_dir]",
	Short: "Delete a workspace",
	Long:  `Removes the workspace data directory. The base directory itself and any other files in it are left alone.`,
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

		if err := mgr.DeleteWorkspace(cmd.Context(), baseDir); err != nil {
			fail(err)
		}
		fmt.Println("Workspace deleted")
	},
}

func init() {
	rootCmd.AddCommand(delCmd)
}
