package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cove",
	Short: "Cove is a workspace manager for recorded dataflow workflows",
	Long: `Cove manages workspaces: directories that record how their data is
computed instead of the data itself. Resources are set as operation steps,
wired to each other by name, and recomputed on demand.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", "", "Root directory workspace paths resolve against")
	rootCmd.PersistentFlags().String("remote", "", "Address of a cove workspace service to use instead of local mode")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}
