package http

import "fmt"

// RemoteError is a structured error envelope returned by the workspace
// service. The server was reachable and produced a meaningful response; this
// is the manager's standard error kind, not a transport failure.
type RemoteError struct {
	Message string
	Type    string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Type
}

// TransportError is a network-level failure: the server could not be reached
// or did not produce a readable response. The remote mutation must be
// assumed not applied.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("workspace service unreachable (%s): %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
