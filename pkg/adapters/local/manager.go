// Package local implements the workspace manager against the local
// filesystem. It resolves relative base directories against a fixed root and
// keeps an in-memory cache of open workspaces scoped to the manager
// instance.
package local

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/covetools/cove/internal/logging"
	"github.com/covetools/cove/pkg/monitor"
	"github.com/covetools/cove/pkg/ports"
	"github.com/covetools/cove/pkg/registry"
	"github.com/covetools/cove/pkg/sink"
	"github.com/covetools/cove/pkg/workflow"
	"github.com/covetools/cove/pkg/workspace"
)

// Manager implements ports.Manager against local storage.
type Manager struct {
	resolveDir string
	registry   *registry.Registry
	writer     ports.ValueWriter
	plotter    ports.Plotter
	cache      ports.ResultCache
	logger     *slog.Logger

	mu   sync.Mutex
	open map[string]*workspace.Workspace
}

// Option configures the manager.
type Option func(*Manager)

// WithRegistry sets the operation registry consulted when resources are set.
func WithRegistry(reg *registry.Registry) Option {
	return func(m *Manager) { m.registry = reg }
}

// WithValueWriter sets the sink that write_resource hands values to.
func WithValueWriter(w ports.ValueWriter) Option {
	return func(m *Manager) { m.writer = w }
}

// WithPlotter sets the sink that plot_resource hands values to.
func WithPlotter(p ports.Plotter) Option {
	return func(m *Manager) { m.plotter = p }
}

// WithResultCache enables memoization of computed resource values.
func WithResultCache(c ports.ResultCache) Option {
	return func(m *Manager) { m.cache = c }
}

// WithLogger sets a structured logger for the manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// New creates a local manager resolving relative paths against resolveDir
// (the current directory when empty).
func New(resolveDir string, opts ...Option) (*Manager, error) {
	if resolveDir == "" {
		resolveDir = "."
	}
	abs, err := filepath.Abs(resolveDir)
	if err != nil {
		return nil, fmt.Errorf("invalid resolve dir: %w", err)
	}

	m := &Manager{
		resolveDir: abs,
		registry:   registry.Default(),
		writer:     sink.NewWriter(),
		plotter:    sink.NewTerminalPlotter(os.Stdout),
		logger:     logging.NewNop(),
		open:       map[string]*workspace.Workspace{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

var _ ports.Manager = (*Manager)(nil)

// ResolvePath resolves a possibly-relative base directory against the
// manager's root.
func (m *Manager) ResolvePath(dir string) string {
	if dir != "" && filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(m.resolveDir, dir)
}

// GetWorkspace returns the cached workspace for baseDir, loading it from
// disk on first access.
func (m *Manager) GetWorkspace(ctx context.Context, baseDir string) (*workspace.Workspace, error) {
	baseDir = m.ResolvePath(baseDir)

	m.mu.Lock()
	defer m.mu.Unlock()
	if ws, ok := m.open[baseDir]; ok {
		return ws, nil
	}

	ws, err := workspace.Load(baseDir)
	if err != nil {
		return nil, err
	}
	if err := ws.Workflow().Bind(m.registry); err != nil {
		return nil, err
	}
	if err := ws.Workflow().ResolveReferences(); err != nil {
		return nil, err
	}
	m.open[baseDir] = ws
	m.logger.Debug("workspace loaded", "base_dir", baseDir, "steps", len(ws.Workflow().Steps()))
	return ws, nil
}

// InitWorkspace creates a new workspace at baseDir.
func (m *Manager) InitWorkspace(ctx context.Context, baseDir, description string) (*workspace.Workspace, error) {
	baseDir = m.ResolvePath(baseDir)
	if workspace.IsWorkspace(baseDir) {
		return nil, &workspace.ExistsError{Dir: baseDir}
	}
	ws, err := workspace.Create(baseDir, description)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.open[baseDir] = ws
	m.mu.Unlock()

	m.logger.Info("workspace created", "base_dir", baseDir)
	return ws, nil
}

// DeleteWorkspace removes the workspace storage and invalidates the cache
// entry.
func (m *Manager) DeleteWorkspace(ctx context.Context, baseDir string) error {
	baseDir = m.ResolvePath(baseDir)
	if !workspace.IsWorkspace(baseDir) {
		return &workspace.NotAWorkspaceError{Dir: baseDir}
	}

	ws := workspace.New(baseDir, nil)
	if err := ws.Delete(); err != nil {
		return err
	}

	m.mu.Lock()
	delete(m.open, baseDir)
	m.mu.Unlock()

	m.logger.Info("workspace deleted", "base_dir", baseDir)
	return nil
}

// CleanWorkspace resets the workflow to empty while preserving its header
// metadata, and persists the reset graph.
func (m *Manager) CleanWorkspace(ctx context.Context, baseDir string) error {
	baseDir = m.ResolvePath(baseDir)

	header := map[string]any{}
	if old, err := workspace.Load(baseDir); err == nil {
		header = old.Workflow().Header()
	}

	ws := workspace.New(baseDir, workspace.NewGraph(header))
	if err := ws.Store(); err != nil {
		return err
	}

	m.mu.Lock()
	m.open[baseDir] = ws
	m.mu.Unlock()

	m.logger.Info("workspace cleaned", "base_dir", baseDir)
	return nil
}

// SetWorkspaceResource applies the resource-setting mutation and persists
// the workspace.
func (m *Manager) SetWorkspaceResource(ctx context.Context, baseDir, resName, opName string, opArgs []string) error {
	ws, err := m.GetWorkspace(ctx, baseDir)
	if err != nil {
		return err
	}
	err = ws.Workflow().SetResource(m.registry, resName, opName, opArgs, workflow.SetResourceOptions{
		AllowReplace: true,
		Validate:     true,
	})
	if err != nil {
		return err
	}
	if err := ws.Store(); err != nil {
		return err
	}
	m.logger.Info("resource set", "base_dir", ws.BaseDir(), "resource", resName, "op", opName)
	return nil
}

// WriteWorkspaceResource executes the workflow restricted to resName and
// hands the value to the value writer.
func (m *Manager) WriteWorkspaceResource(ctx context.Context, baseDir, resName, filePath, formatName string, mon monitor.Monitor) error {
	if mon == nil {
		mon = monitor.Null()
	}
	mon.Start(fmt.Sprintf("writing resource %q", resName), 10)
	defer mon.Done()

	value, err := m.resourceValue(ctx, baseDir, resName, mon.Child(9))
	if err != nil {
		return err
	}
	if err := m.writer.Write(value, filePath, formatName); err != nil {
		return err
	}
	mon.Progress(1, "written "+filePath)
	m.logger.Info("resource written", "resource", resName, "path", filePath, "format", formatName)
	return nil
}

// PlotWorkspaceResource executes the workflow restricted to resName and
// hands the value to the plotter.
func (m *Manager) PlotWorkspaceResource(ctx context.Context, baseDir, resName, varName, filePath string, mon monitor.Monitor) error {
	if mon == nil {
		mon = monitor.Null()
	}
	value, err := m.resourceValue(ctx, baseDir, resName, mon)
	if err != nil {
		return err
	}
	return m.plotter.Plot(value, varName, filePath)
}

// resourceValue computes the value of a single resource, consulting the
// result cache when one is configured.
func (m *Manager) resourceValue(ctx context.Context, baseDir, resName string, mon monitor.Monitor) (any, error) {
	ws, err := m.GetWorkspace(ctx, baseDir)
	if err != nil {
		return nil, err
	}

	var key string
	if m.cache != nil {
		key = m.resultKey(ws, resName)
		if v, ok, err := m.cache.Get(ctx, key); err == nil && ok {
			m.logger.Debug("result cache hit", "resource", resName)
			return v, nil
		}
	}

	result, err := ws.Workflow().Execute(ctx, []string{resName}, mon)
	if err != nil {
		return nil, err
	}
	value := result[resName]

	if m.cache != nil {
		if err := m.cache.Set(ctx, key, value); err != nil {
			m.logger.Warn("result cache store failed", "resource", resName, "err", err)
		}
	}
	return value, nil
}

// resultKey fingerprints the workflow state, so entries cached for an older
// graph shape can never be served after a mutation.
func (m *Manager) resultKey(ws *workspace.Workspace, resName string) string {
	h := fnv.New64a()
	if data, err := ws.Workflow().MarshalJSON(); err == nil {
		_, _ = h.Write(data)
	}
	return fmt.Sprintf("%s/%s@%x", ws.BaseDir(), resName, h.Sum64())
}
