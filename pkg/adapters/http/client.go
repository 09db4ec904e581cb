package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/covetools/cove/internal/logging"
	"github.com/covetools/cove/pkg/monitor"
	"github.com/covetools/cove/pkg/ports"
	"github.com/covetools/cove/pkg/workspace"
)

// DefaultTimeout bounds every remote call unless overridden.
const DefaultTimeout = 120 * time.Second

// Client implements ports.Manager against a remote workspace service.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// ClientOption configures the client.
type ClientOption func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets a structured logger for the client.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a remote manager for the service at address ("host:port"
// or a full http URL).
func NewClient(address string, opts ...ClientOption) *Client {
	if !strings.Contains(address, "://") {
		address = "http://" + address
	}
	c := &Client{
		baseURL: strings.TrimRight(address, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ ports.Manager = (*Client)(nil)

// url expands a path pattern, escaping each path argument into a single
// segment, and appends query arguments.
func (c *Client) url(pattern string, pathArgs map[string]string, queryArgs url.Values) string {
	path := pattern
	for key, value := range pathArgs {
		path = strings.ReplaceAll(path, "{"+key+"}", url.PathEscape(value))
	}
	u := c.baseURL + path
	if len(queryArgs) > 0 {
		u += "?" + queryArgs.Encode()
	}
	return u
}

// fetch performs one request and decodes the response envelope. A structured
// error envelope becomes a RemoteError; anything transport-level becomes a
// TransportError.
func (c *Client) fetch(ctx context.Context, method, u string, form url.Values) (json.RawMessage, error) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, &TransportError{URL: u, Err: err}
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{URL: u, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: u, Err: err}
	}

	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &TransportError{URL: u, Err: fmt.Errorf("malformed response: %w", err)}
	}

	if env.Status == StatusError {
		re := &RemoteError{}
		if env.Error != nil {
			re.Message = env.Error.Message
			re.Type = env.Error.Type
		}
		c.logger.Debug("remote error", "url", u, "type", re.Type, "msg", re.Message)
		return nil, re
	}
	return env.Content, nil
}

// IsRunning probes the service. A structured error response still counts as
// running; only a transport failure does not.
func (c *Client) IsRunning(ctx context.Context) bool {
	if _, err := c.fetch(ctx, http.MethodGet, c.baseURL+PathRoot, nil); err != nil {
		var te *TransportError
		return !errors.As(err, &te)
	}
	return true
}

// GetWorkspace fetches and materializes the remote workspace.
func (c *Client) GetWorkspace(ctx context.Context, baseDir string) (*workspace.Workspace, error) {
	u := c.url(PathGet, map[string]string{"base_dir": baseDir}, nil)
	content, err := c.fetch(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	return decodeWorkspace(content)
}

// InitWorkspace creates a workspace on the remote service.
func (c *Client) InitWorkspace(ctx context.Context, baseDir, description string) (*workspace.Workspace, error) {
	u := c.url(PathInit, nil, url.Values{
		"base_dir":    {baseDir},
		"description": {description},
	})
	content, err := c.fetch(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	return decodeWorkspace(content)
}

// DeleteWorkspace deletes the remote workspace.
func (c *Client) DeleteWorkspace(ctx context.Context, baseDir string) error {
	u := c.url(PathDelete, map[string]string{"base_dir": baseDir}, nil)
	_, err := c.fetch(ctx, http.MethodGet, u, nil)
	return err
}

// CleanWorkspace resets the remote workspace.
func (c *Client) CleanWorkspace(ctx context.Context, baseDir string) error {
	u := c.url(PathClean, map[string]string{"base_dir": baseDir}, nil)
	_, err := c.fetch(ctx, http.MethodGet, u, nil)
	return err
}

// SetWorkspaceResource sets a resource on the remote workspace. Arguments
// travel as a form-encoded op_name plus a JSON-encoded op_args list.
func (c *Client) SetWorkspaceResource(ctx context.Context, baseDir, resName, opName string, opArgs []string) error {
	u := c.url(PathResSet, map[string]string{"base_dir": baseDir, "res_name": resName}, nil)
	encodedArgs, err := json.Marshal(opArgs)
	if err != nil {
		return fmt.Errorf("encode op_args: %w", err)
	}
	_, err = c.fetch(ctx, http.MethodPost, u, url.Values{
		"op_name": {opName},
		"op_args": {string(encodedArgs)},
	})
	return err
}

// WriteWorkspaceResource writes a resource on the remote service; the file
// path is interpreted server-side.
func (c *Client) WriteWorkspaceResource(ctx context.Context, baseDir, resName, filePath, formatName string, mon monitor.Monitor) error {
	u := c.url(PathResWrite, map[string]string{"base_dir": baseDir, "res_name": resName}, nil)
	_, err := c.fetch(ctx, http.MethodPost, u, url.Values{
		"file_path":   {filePath},
		"format_name": {formatName},
	})
	return err
}

// PlotWorkspaceResource plots a resource on the remote service.
func (c *Client) PlotWorkspaceResource(ctx context.Context, baseDir, resName, varName, filePath string, mon monitor.Monitor) error {
	u := c.url(PathResPlot, map[string]string{"base_dir": baseDir, "res_name": resName}, nil)
	_, err := c.fetch(ctx, http.MethodPost, u, url.Values{
		"var_name":  {varName},
		"file_path": {filePath},
	})
	return err
}

func decodeWorkspace(content json.RawMessage) (*workspace.Workspace, error) {
	if content == nil {
		return nil, &RemoteError{Message: "empty workspace payload"}
	}
	ws := &workspace.Workspace{}
	if err := json.Unmarshal(content, ws); err != nil {
		return nil, &RemoteError{Message: fmt.Sprintf("malformed workspace payload: %v", err)}
	}
	return ws, nil
}
