package ports

import (
	"context"

	"github.com/covetools/cove/pkg/monitor"
	"github.com/covetools/cove/pkg/workspace"
)

// Manager is the capability set through which callers create, mutate and
// execute workspaces. It is implemented once against local storage and once
// as a thin client against a remote service with an identical contract;
// calling code is agnostic to where the workspace actually lives.
type Manager interface {
	// GetWorkspace returns the workspace at the base directory.
	GetWorkspace(ctx context.Context, baseDir string) (*workspace.Workspace, error)

	// InitWorkspace creates a new workspace carrying the description in its
	// workflow header.
	InitWorkspace(ctx context.Context, baseDir, description string) (*workspace.Workspace, error)

	// DeleteWorkspace removes the workspace's storage.
	DeleteWorkspace(ctx context.Context, baseDir string) error

	// CleanWorkspace resets the workflow to empty, preserving the header.
	CleanWorkspace(ctx context.Context, baseDir string) error

	// SetWorkspaceResource adds or replaces the step producing resName,
	// wiring its arguments against the existing workflow.
	SetWorkspaceResource(ctx context.Context, baseDir, resName, opName string, opArgs []string) error

	// WriteWorkspaceResource executes the workflow restricted to resName and
	// hands the value to the value sink.
	WriteWorkspaceResource(ctx context.Context, baseDir, resName, filePath, formatName string, mon monitor.Monitor) error

	// PlotWorkspaceResource executes the workflow restricted to resName and
	// hands the value to the plot sink.
	PlotWorkspaceResource(ctx context.Context, baseDir, resName, varName, filePath string, mon monitor.Monitor) error
}
