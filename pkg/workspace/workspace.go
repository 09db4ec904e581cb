// Package workspace pairs a workflow graph with a base storage location and
// owns its lifecycle: create, load, store, clean, delete. A workspace
// records user operations as workflow steps; by design its workflow has no
// inputs and every step is an output.
package workspace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/covetools/cove/pkg/workflow"
)

const (
	// DataDirName is the subdirectory holding workspace state.
	DataDirName = ".cove"
	// WorkflowFileName is the single serialized graph file inside it.
	WorkflowFileName = "workflow.json"
)

// Workspace is a persistent unit pairing a workflow graph with a base
// directory. The base directory is the workspace's identity.
type Workspace struct {
	baseDir  string
	workflow *workflow.Graph
}

// New wraps an existing graph in a workspace. Used by the remote manager to
// materialize workspaces received over the wire.
func New(baseDir string, g *workflow.Graph) *Workspace {
	return &Workspace{baseDir: baseDir, workflow: g}
}

// BaseDir returns the workspace's base directory.
func (w *Workspace) BaseDir() string { return w.baseDir }

// Workflow returns the workspace's graph.
func (w *Workspace) Workflow() *workflow.Graph { return w.workflow }

// DataDir returns the state directory for a base directory.
func DataDir(baseDir string) string {
	return filepath.Join(baseDir, DataDirName)
}

// WorkflowFile returns the canonical graph file path for a base directory.
func WorkflowFile(baseDir string) string {
	return filepath.Join(DataDir(baseDir), WorkflowFileName)
}

// NewGraph creates the empty workflow a fresh workspace starts with.
func NewGraph(header map[string]any) *workflow.Graph {
	if header == nil {
		header = map[string]any{}
	}
	return workflow.New(header)
}

// Create allocates storage at baseDir and writes a fresh graph carrying the
// description in its header metadata. It fails with ExistsError when a graph
// already exists at that location.
func Create(baseDir, description string) (*Workspace, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, &Error{Op: "create", Dir: baseDir, Err: err}
	}
	dataDir := DataDir(baseDir)
	if _, err := os.Stat(WorkflowFile(baseDir)); err == nil {
		return nil, &ExistsError{Dir: baseDir}
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, &Error{Op: "create", Dir: baseDir, Err: err}
	}

	w := &Workspace{
		baseDir:  baseDir,
		workflow: NewGraph(map[string]any{"description": description}),
	}
	if err := w.Store(); err != nil {
		return nil, err
	}
	return w, nil
}

// Load reads the persisted graph at baseDir back into memory. It fails with
// NotAWorkspaceError when no persisted graph is found. References in the
// loaded graph stay dangling until the caller binds a registry and resolves.
func Load(baseDir string) (*Workspace, error) {
	data, err := os.ReadFile(WorkflowFile(baseDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotAWorkspaceError{Dir: baseDir}
		}
		return nil, &Error{Op: "load", Dir: baseDir, Err: err}
	}

	g := workflow.New(nil)
	if err := json.Unmarshal(data, g); err != nil {
		return nil, &Error{Op: "load", Dir: baseDir, Err: err}
	}
	return &Workspace{baseDir: baseDir, workflow: g}, nil
}

// IsWorkspace reports whether baseDir holds a persisted workspace.
func IsWorkspace(baseDir string) bool {
	_, err := os.Stat(WorkflowFile(baseDir))
	return err == nil
}

// Store serializes the in-memory graph to the workspace's canonical file.
// The write is crash-atomic: data goes to a temp file in the same directory,
// is fsynced, and is renamed over the destination, so either the old or the
// new file is fully readable.
func (w *Workspace) Store() error {
	data, err := json.Marshal(w.workflow)
	if err != nil {
		return &Error{Op: "store", Dir: w.baseDir, Err: err}
	}

	dataDir := DataDir(w.baseDir)
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return &Error{Op: "store", Dir: w.baseDir, Err: err}
	}

	tmp, err := os.CreateTemp(dataDir, "tmp-workflow-*.json")
	if err != nil {
		return &Error{Op: "store", Dir: w.baseDir, Err: err}
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		return &Error{Op: "store", Dir: w.baseDir, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		return &Error{Op: "store", Dir: w.baseDir, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &Error{Op: "store", Dir: w.baseDir, Err: err}
	}
	if err := os.Rename(tmpPath, WorkflowFile(w.baseDir)); err != nil {
		return &Error{Op: "store", Dir: w.baseDir, Err: err}
	}
	return nil
}

// Delete removes the workspace's storage subtree entirely.
func (w *Workspace) Delete() error {
	if err := os.RemoveAll(DataDir(w.baseDir)); err != nil {
		return &Error{Op: "delete", Dir: w.baseDir, Err: err}
	}
	return nil
}

// Clean discards all steps and outputs, preserves the header metadata and
// persists the reset graph.
func (w *Workspace) Clean() error {
	w.workflow.Reset()
	return w.Store()
}

// MarshalJSON serializes the workspace for the wire protocol.
func (w *Workspace) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(w.workflow)
	if err != nil {
		return nil, err
	}
	return json.Marshal(map[string]json.RawMessage{
		"base_dir": mustJSON(w.baseDir),
		"workflow": raw,
	})
}

// UnmarshalJSON reconstructs a workspace from its wire form.
func (w *Workspace) UnmarshalJSON(data []byte) error {
	var doc struct {
		BaseDir  string          `json:"base_dir"`
		Workflow json.RawMessage `json:"workflow"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	g := workflow.New(nil)
	if doc.Workflow != nil {
		if err := json.Unmarshal(doc.Workflow, g); err != nil {
			return fmt.Errorf("workspace %s: %w", doc.BaseDir, err)
		}
	}
	w.baseDir = doc.BaseDir
	w.workflow = g
	return nil
}

func mustJSON(v any) json.RawMessage {
	raw, _ := json.Marshal(v)
	return raw
}
