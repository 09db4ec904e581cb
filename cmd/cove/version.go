package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/covetools/cove"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of cove",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cove version %s\n", cove.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
