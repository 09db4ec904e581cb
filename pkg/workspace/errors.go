package workspace

import "fmt"

// NotAWorkspaceError is returned when no persisted workflow is found at a
// base directory.
type NotAWorkspaceError struct {
	Dir string
}

func (e *NotAWorkspaceError) Error() string {
	return fmt.Sprintf("not a workspace: %s", e.Dir)
}

// ExistsError is returned when a workspace is created at a location that
// already holds one.
type ExistsError struct {
	Dir string
}

func (e *ExistsError) Error() string {
	return fmt.Sprintf("workspace exists: %s", e.Dir)
}

// Error re-classifies a storage failure at the workspace boundary; the
// original cause is preserved, never leaked as a raw I/O error.
type Error struct {
	Op  string // lifecycle operation, e.g. "create", "store"
	Dir string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("workspace %s %s: %v", e.Op, e.Dir, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
