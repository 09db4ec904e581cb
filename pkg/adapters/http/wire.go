// Package http implements the remote workspace manager: a thin client that
// translates every manager call into an HTTP request against a cove server,
// with the same contract as the local implementation.
package http

import "encoding/json"

// Envelope is the JSON response wrapper of the wire protocol.
type Envelope struct {
	Status  string          `json:"status"`
	Content json.RawMessage `json:"content,omitempty"`
	Error   *ErrorDetails   `json:"error,omitempty"`
}

// ErrorDetails carries a structured remote failure.
type ErrorDetails struct {
	Message string `json:"message,omitempty"`
	Type    string `json:"type,omitempty"`
}

const (
	// StatusOK marks a successful envelope.
	StatusOK = "ok"
	// StatusError marks a structured error envelope.
	StatusError = "error"
)

// Wire paths of the workspace service.
const (
	PathRoot     = "/"
	PathGet      = "/ws/get/{base_dir}"
	PathInit     = "/ws/init"
	PathDelete   = "/ws/del/{base_dir}"
	PathClean    = "/ws/clean/{base_dir}"
	PathResSet   = "/ws/res/set/{base_dir}/{res_name}"
	PathResWrite = "/ws/res/write/{base_dir}/{res_name}"
	PathResPlot  = "/ws/res/plot/{base_dir}/{res_name}"
)
