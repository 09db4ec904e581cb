package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpserver "github.com/covetools/cove/internal/adapters/http"
	wire "github.com/covetools/cove/pkg/adapters/http"
	"github.com/covetools/cove/pkg/adapters/local"
)

func newTestService(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	root := t.TempDir()
	mgr, err := local.New(root)
	require.NoError(t, err)
	srv := httptest.NewServer(httpserver.NewHandler(mgr))
	t.Cleanup(srv.Close)
	return srv, root
}

func getEnvelope(t *testing.T, url string) wire.Envelope {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode, "failures travel in the envelope, not the HTTP status")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env wire.Envelope
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}

func TestServer_RootIsAlive(t *testing.T) {
	srv, _ := newTestService(t)
	env := getEnvelope(t, srv.URL+"/")
	assert.Equal(t, wire.StatusOK, env.Status)
}

func TestServer_InitAndGet(t *testing.T) {
	srv, root := newTestService(t)

	env := getEnvelope(t, srv.URL+"/ws/init?base_dir=demo&description=remote+test")
	require.Equal(t, wire.StatusOK, env.Status)

	env = getEnvelope(t, srv.URL+"/ws/get/demo")
	require.Equal(t, wire.StatusOK, env.Status)

	var doc struct {
		BaseDir string `json:"base_dir"`
	}
	require.NoError(t, json.Unmarshal(env.Content, &doc))
	assert.Equal(t, filepath.Join(root, "demo"), doc.BaseDir)
}

func TestServer_InitMissingBaseDir(t *testing.T) {
	srv, _ := newTestService(t)
	env := getEnvelope(t, srv.URL+"/ws/init")
	require.Equal(t, wire.StatusError, env.Status)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Message, "base_dir")
}

func TestServer_GetUnknownWorkspaceErrorType(t *testing.T) {
	srv, _ := newTestService(t)
	env := getEnvelope(t, srv.URL+"/ws/get/ghost")
	require.Equal(t, wire.StatusError, env.Status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NotAWorkspaceError", env.Error.Type)
}

func TestServer_SetResourceErrorTypes(t *testing.T) {
	srv, _ := newTestService(t)
	getEnvelope(t, srv.URL+"/ws/init?base_dir=demo")

	post := func(path string, form url.Values) wire.Envelope {
		resp, err := http.PostForm(srv.URL+path, form)
		require.NoError(t, err)
		defer resp.Body.Close()
		var env wire.Envelope
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
		return env
	}

	env := post("/ws/res/set/demo/x", url.Values{"op_name": {"vanished"}})
	require.Equal(t, wire.StatusError, env.Status)
	assert.Equal(t, "UnknownOperationError", env.Error.Type)

	env = post("/ws/res/set/demo/x", url.Values{
		"op_name": {"constant"},
		"op_args": {`["bogus=1"]`},
	})
	require.Equal(t, wire.StatusError, env.Status)
	assert.Equal(t, "UnknownParameterError", env.Error.Type)

	env = post("/ws/res/set/demo/x", url.Values{
		"op_name": {"constant"},
		"op_args": {`["value=5"]`},
	})
	assert.Equal(t, wire.StatusOK, env.Status)
}

// TestServer_ClientRoundTrip drives the wire server through the real remote
// manager, covering the whole protocol end to end.
func TestServer_ClientRoundTrip(t *testing.T) {
	srv, root := newTestService(t)
	client := wire.NewClient(srv.URL)
	ctx := context.Background()

	require.True(t, client.IsRunning(ctx))

	ws, err := client.InitWorkspace(ctx, "demo", "round trip")
	require.NoError(t, err)
	assert.Equal(t, "round trip", ws.Workflow().Header()["description"])

	require.NoError(t, client.SetWorkspaceResource(ctx, "demo", "x", "constant", []string{"value=5"}))
	require.NoError(t, client.SetWorkspaceResource(ctx, "demo", "y", "scale", []string{"input=x", "factor=2"}))

	ws, err = client.GetWorkspace(ctx, "demo")
	require.NoError(t, err)
	require.Len(t, ws.Workflow().Steps(), 2)

	// The file path is interpreted on the service side.
	dest := filepath.Join(root, "y.json")
	require.NoError(t, client.WriteWorkspaceResource(ctx, "demo", "y", dest, "", nil))
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.JSONEq(t, "10", string(data))

	require.NoError(t, client.CleanWorkspace(ctx, "demo"))
	ws, err = client.GetWorkspace(ctx, "demo")
	require.NoError(t, err)
	assert.Empty(t, ws.Workflow().Steps())

	require.NoError(t, client.DeleteWorkspace(ctx, "demo"))
	_, err = client.GetWorkspace(ctx, "demo")
	var remote *wire.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, "NotAWorkspaceError", remote.Type)
}

func TestServer_MetricsEndpoint(t *testing.T) {
	srv, _ := newTestService(t)
	getEnvelope(t, srv.URL+"/")

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "cove_requests_total")
}
