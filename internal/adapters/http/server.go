// Package http exposes a workspace manager over the wire protocol: JSON
// envelopes on the fixed /ws/... path convention, so a remote client can
// drive workspaces with the same contract as a local manager.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/covetools/cove/internal/logging"
	wire "github.com/covetools/cove/pkg/adapters/http"
	"github.com/covetools/cove/pkg/monitor"
	"github.com/covetools/cove/pkg/ports"
	"github.com/covetools/cove/pkg/workflow"
	"github.com/covetools/cove/pkg/workspace"
)

// Server translates wire requests into manager calls.
type Server struct {
	manager ports.Manager
	logger  *slog.Logger
	metrics *metrics
}

// Option configures the server.
type Option func(*Server)

// WithLogger sets a structured logger for the server.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// NewHandler creates the HTTP handler for a workspace manager.
func NewHandler(manager ports.Manager, opts ...Option) http.Handler {
	s := &Server{
		manager: manager,
		logger:  logging.NewNop(),
		metrics: newMetrics(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(s.instrument)

	r.Get("/", s.handleRoot)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/ws/get/{baseDir}", s.handleGet)
	r.Get("/ws/init", s.handleInit)
	r.Get("/ws/del/{baseDir}", s.handleDelete)
	r.Get("/ws/clean/{baseDir}", s.handleClean)
	r.Post("/ws/res/set/{baseDir}/{resName}", s.handleResSet)
	r.Post("/ws/res/write/{baseDir}/{resName}", s.handleResWrite)
	r.Post("/ws/res/plot/{baseDir}/{resName}", s.handleResPlot)

	return r
}

// metrics instruments the wire surface.
type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics() *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cove_requests_total",
				Help: "Workspace service requests by path pattern and status.",
			},
			[]string{"path", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "cove_request_duration_seconds",
				Help: "Workspace service request latency.",
			},
			[]string{"path"},
		),
	}
	// Re-registration happens when several handlers live in one process
	// (tests); reuse the existing collectors then.
	if err := prometheus.Register(m.requests); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			m.requests = are.ExistingCollector.(*prometheus.CounterVec)
		}
	}
	if err := prometheus.Register(m.duration); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			m.duration = are.ExistingCollector.(*prometheus.HistogramVec)
		}
	}
	return m
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		pattern := chi.RouteContext(r.Context()).RoutePattern()
		if pattern == "" {
			pattern = r.URL.Path
		}
		s.metrics.requests.WithLabelValues(pattern, fmt.Sprint(rec.status)).Inc()
		s.metrics.duration.WithLabelValues(pattern).Observe(time.Since(start).Seconds())
	})
}

// --- envelope helpers ---

func (s *Server) writeOK(w http.ResponseWriter, content any) {
	env := wire.Envelope{Status: wire.StatusOK}
	if content != nil {
		raw, err := json.Marshal(content)
		if err != nil {
			s.writeError(w, fmt.Errorf("encode content: %w", err))
			return
		}
		env.Content = raw
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(env); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

// writeError emits a structured error envelope. The HTTP status stays 200:
// clients distinguish failures by the envelope status, transport errors by
// the request itself failing.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	env := wire.Envelope{
		Status: wire.StatusError,
		Error: &wire.ErrorDetails{
			Message: err.Error(),
			Type:    errorTypeName(err),
		},
	}
	w.Header().Set("Content-Type", "application/json")
	if encodeErr := json.NewEncoder(w).Encode(env); encodeErr != nil {
		s.logger.Error("error response encode failed", "err", encodeErr)
	}
}

// errorTypeName classifies an error for the wire envelope.
func errorTypeName(err error) string {
	var (
		unknownOp   *workflow.UnknownOperationError
		unknownParm *workflow.UnknownParameterError
		dup         *workflow.DuplicateResourceError
		unresolved  *workflow.UnresolvedReferenceError
		shape       *workflow.UnsupportedOperationShapeError
		exec        *workflow.ExecutionError
		arg         *workflow.ArgumentError
		notWS       *workspace.NotAWorkspaceError
		exists      *workspace.ExistsError
		wsErr       *workspace.Error
	)
	switch {
	case errors.As(err, &unknownOp):
		return "UnknownOperationError"
	case errors.As(err, &unknownParm):
		return "UnknownParameterError"
	case errors.As(err, &dup):
		return "DuplicateResourceError"
	case errors.As(err, &unresolved):
		return "UnresolvedReferenceError"
	case errors.As(err, &shape):
		return "UnsupportedOperationShapeError"
	case errors.As(err, &exec):
		return "ExecutionError"
	case errors.As(err, &arg):
		return "ArgumentError"
	case errors.As(err, &notWS):
		return "NotAWorkspaceError"
	case errors.As(err, &exists):
		return "WorkspaceExistsError"
	case errors.As(err, &wsErr):
		return "WorkspaceError"
	default:
		return "Error"
	}
}

func pathParam(r *http.Request, name string) (string, error) {
	raw := chi.URLParam(r, name)
	value, err := url.PathUnescape(raw)
	if err != nil {
		return "", fmt.Errorf("malformed path segment %q", raw)
	}
	return value, nil
}

// --- handlers ---

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeOK(w, map[string]string{"name": "cove workspace service"})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	baseDir, err := pathParam(r, "baseDir")
	if err != nil {
		s.writeError(w, err)
		return
	}
	ws, err := s.manager.GetWorkspace(r.Context(), baseDir)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeOK(w, ws)
}

func (s *Server) handleInit(w http.ResponseWriter, r *http.Request) {
	baseDir := r.URL.Query().Get("base_dir")
	description := r.URL.Query().Get("description")
	if baseDir == "" {
		s.writeError(w, fmt.Errorf("missing base_dir query argument"))
		return
	}
	ws, err := s.manager.InitWorkspace(r.Context(), baseDir, description)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Info("workspace initialized", "base_dir", baseDir)
	s.writeOK(w, ws)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	baseDir, err := pathParam(r, "baseDir")
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.manager.DeleteWorkspace(r.Context(), baseDir); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeOK(w, nil)
}

func (s *Server) handleClean(w http.ResponseWriter, r *http.Request) {
	baseDir, err := pathParam(r, "baseDir")
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.manager.CleanWorkspace(r.Context(), baseDir); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeOK(w, nil)
}

func (s *Server) resParams(r *http.Request) (baseDir, resName string, err error) {
	baseDir, err = pathParam(r, "baseDir")
	if err != nil {
		return "", "", err
	}
	resName, err = pathParam(r, "resName")
	if err != nil {
		return "", "", err
	}
	return baseDir, resName, nil
}

func (s *Server) handleResSet(w http.ResponseWriter, r *http.Request) {
	baseDir, resName, err := s.resParams(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		s.writeError(w, fmt.Errorf("malformed form body: %w", err))
		return
	}
	opName := r.PostFormValue("op_name")
	if opName == "" {
		s.writeError(w, fmt.Errorf("missing op_name form field"))
		return
	}
	var opArgs []string
	if rawArgs := r.PostFormValue("op_args"); rawArgs != "" {
		if err := json.Unmarshal([]byte(rawArgs), &opArgs); err != nil {
			s.writeError(w, fmt.Errorf("malformed op_args list: %w", err))
			return
		}
	}

	if err := s.manager.SetWorkspaceResource(r.Context(), baseDir, resName, opName, opArgs); err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Info("resource set", "base_dir", baseDir, "resource", resName, "op", opName)
	s.writeOK(w, nil)
}

func (s *Server) handleResWrite(w http.ResponseWriter, r *http.Request) {
	baseDir, resName, err := s.resParams(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		s.writeError(w, fmt.Errorf("malformed form body: %w", err))
		return
	}
	filePath := r.PostFormValue("file_path")
	formatName := r.PostFormValue("format_name")
	if filePath == "" {
		s.writeError(w, fmt.Errorf("missing file_path form field"))
		return
	}

	err = s.manager.WriteWorkspaceResource(r.Context(), baseDir, resName, filePath, formatName,
		monitor.NewLog(s.logger))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeOK(w, nil)
}

func (s *Server) handleResPlot(w http.ResponseWriter, r *http.Request) {
	baseDir, resName, err := s.resParams(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		s.writeError(w, fmt.Errorf("malformed form body: %w", err))
		return
	}
	varName := r.PostFormValue("var_name")
	filePath := r.PostFormValue("file_path")

	err = s.manager.PlotWorkspaceResource(r.Context(), baseDir, resName, varName, filePath,
		monitor.NewLog(s.logger))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeOK(w, nil)
}
