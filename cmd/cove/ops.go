package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/covetools/cove/pkg/registry"
	"github.com/covetools/cove/pkg/schema"
)

var opsCmd = &cobra.Command{
	Use:   "ops",
	Short: "List the registered operations",
	Long:  `Prints every operation resources can be set to, with its parameters and outputs.`,
	Run: func(cmd *cobra.Command, args []string) {
		reg := registry.Default()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			printJSONCatalog(reg)
			return
		}
		for _, name := range reg.Names() {
			op, _ := reg.Lookup(name)
			fmt.Printf("%s(%s)", op.Name, signature(op))
			if outs := op.OutputNames(); len(outs) > 1 {
				fmt.Printf(" -> %s", strings.Join(outs, ", "))
			}
			fmt.Println()
			if op.Description != "" {
				fmt.Printf("    %s\n", op.Description)
			}
		}
	},
}

type opJSON struct {
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Params      schema.Schema `json:"params"`
	Outputs     []string      `json:"outputs"`
}

func printJSONCatalog(reg *registry.Registry) {
	catalog := make([]opJSON, 0)
	for _, name := range reg.Names() {
		op, _ := reg.Lookup(name)
		catalog = append(catalog, opJSON{
			Name:        op.Name,
			Description: op.Description,
			Params:      op.ParamSchema(),
			Outputs:     op.OutputNames(),
		})
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(catalog); err != nil {
		fail(err)
	}
}

func signature(op *registry.Operation) string {
	parts := make([]string, 0, len(op.Params))
	for _, p := range op.Params {
		part := fmt.Sprintf("%s: %s", p.Name, p.Type.Name())
		if !p.Required {
			part = fmt.Sprintf("[%s]", part)
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, ", ")
}

func init() {
	rootCmd.AddCommand(opsCmd)
	opsCmd.Flags().Bool("json", false, "Emit the catalog as JSON")
}
