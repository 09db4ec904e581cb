package workflow

import "fmt"

// UnknownOperationError is returned when an operation identifier cannot be
// resolved in the registry.
type UnknownOperationError struct {
	Op string
}

func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("unknown operation %q", e.Op)
}

// UnknownParameterError is returned when an argument name does not match any
// declared parameter of the bound operation.
type UnknownParameterError struct {
	Op    string
	Param string
}

func (e *UnknownParameterError) Error() string {
	return fmt.Sprintf("%q is not an input of operation %q", e.Param, e.Op)
}

// DuplicateResourceError is returned when a resource name is already taken
// and replacement was not allowed.
type DuplicateResourceError struct {
	Resource string
}

func (e *DuplicateResourceError) Error() string {
	return fmt.Sprintf("resource %q already exists", e.Resource)
}

// UnresolvedReferenceError is returned when a port's source reference does
// not point to an existing step output.
type UnresolvedReferenceError struct {
	Resource string // step owning the port, or "" for a graph output
	Port     string
	Ref      SourceRef
}

func (e *UnresolvedReferenceError) Error() string {
	owner := "workflow output"
	if e.Resource != "" {
		owner = fmt.Sprintf("step %q", e.Resource)
	}
	return fmt.Sprintf("%s port %q: unresolved reference to %q", owner, e.Port, e.Ref)
}

// UnsupportedOperationShapeError is returned when a resource is bound to an
// operation with multiple named outputs, which the resource-setting path does
// not support yet.
type UnsupportedOperationShapeError struct {
	Op      string
	Outputs []string
}

func (e *UnsupportedOperationShapeError) Error() string {
	return fmt.Sprintf("operation %q has named outputs %v which are not supported", e.Op, e.Outputs)
}

// ExecutionError wraps the first operation failure encountered while
// executing a workflow. The failing resource name is preserved along with the
// original cause.
type ExecutionError struct {
	Resource string
	Err      error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("executing resource %q: %v", e.Resource, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// ArgumentError is returned when an op_args entry cannot be parsed or bound.
type ArgumentError struct {
	Arg    string
	Reason string
}

func (e *ArgumentError) Error() string {
	if e.Arg == "" {
		return e.Reason
	}
	return fmt.Sprintf("argument %q: %s", e.Arg, e.Reason)
}
