/*
Package cove manages workspaces: directories that record a workflow of
operation steps instead of computed data. Each step names a resource and
binds an operation's parameters to literal values or to other resources'
outputs, so the workspace captures provenance and can recompute any value on
demand.

# Concept

A workspace is any directory holding a .cove/workflow.json file. The
workflow is a dataflow graph: steps in insertion order, ports wired by
name, and graph-level outputs aliasing step outputs. Setting a resource
mutates the graph atomically; asking for a resource executes the minimal
closure of steps it depends on.

The same manager contract is served two ways: locally against the
filesystem, or remotely over HTTP against a cove workspace service. The CLI
picks whichever the configuration selects, and library consumers choose via
the constructors here.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/covetools/cove"
		"github.com/covetools/cove/pkg/monitor"
	)

	func main() {
		mgr, err := cove.NewLocalManager(".")
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()
		if _, err := mgr.InitWorkspace(ctx, "demo", "scratch analysis"); err != nil {
			log.Fatal(err)
		}

		// x = constant(value=5); y = scale(input=x, factor=2)
		if err := mgr.SetWorkspaceResource(ctx, "demo", "x", "constant", []string{`value=5`}); err != nil {
			log.Fatal(err)
		}
		if err := mgr.SetWorkspaceResource(ctx, "demo", "y", "scale", []string{"input=x", "factor=2"}); err != nil {
			log.Fatal(err)
		}

		// Computes x then y, writes y as JSON.
		if err := mgr.WriteWorkspaceResource(ctx, "demo", "y", "y.json", "", monitor.Null()); err != nil {
			log.Fatal(err)
		}
	}

Run "cove serve" to expose a local manager as a workspace service, and point
other machines at it with NewRemoteManager.
*/
package cove
