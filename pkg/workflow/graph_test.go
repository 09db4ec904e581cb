package workflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covetools/cove/pkg/workflow"
)

func TestGraph_NamespaceShapes(t *testing.T) {
	g, reg := newGraph(t)
	require.NoError(t, g.SetResource(reg, "x", "constant", []string{"value=1"}, setOpts))

	ns := g.Namespace()
	ref, ok := ns["x"].(workflow.SourceRef)
	require.True(t, ok, "single-output steps map to a direct reference")
	assert.Equal(t, "x.return", ref.String())
}

func TestGraph_NamespaceMultiOutput(t *testing.T) {
	// Multi-output steps only enter a graph through deserialization.
	doc := `{
		"header": {},
		"steps": [{"resource": "split", "op": "split", "outputs": ["return", "rest"]}]
	}`
	g := workflow.New(nil)
	require.NoError(t, g.UnmarshalJSON([]byte(doc)))

	ns := g.Namespace()
	sub, ok := ns["split"].(map[string]workflow.SourceRef)
	require.True(t, ok, "multi-output steps map to a sub-namespace")
	assert.Equal(t, "split.rest", sub["rest"].String())
}

func TestGraph_Reset(t *testing.T) {
	g, reg := newGraph(t)
	require.NoError(t, g.SetResource(reg, "x", "constant", []string{"value=1"}, setOpts))
	require.NoError(t, g.SetResource(reg, "y", "identity", []string{"input=x"}, setOpts))

	g.Reset()

	assert.Empty(t, g.Steps())
	assert.Empty(t, g.OutputNames())
	assert.Equal(t, "test", g.Header()["description"], "reset keeps the header")
}

func TestGraph_SetOutputUpdatesInPlace(t *testing.T) {
	g, reg := newGraph(t)
	require.NoError(t, g.SetResource(reg, "x", "constant", []string{"value=1"}, setOpts))
	require.NoError(t, g.SetResource(reg, "y", "identity", []string{"input=x"}, setOpts))

	g.SetOutput("x", workflow.SourceRef{Step: "y", Port: "return"})
	require.NoError(t, g.ResolveReferences())

	assert.Equal(t, []string{"x", "y"}, g.OutputNames(), "updating an alias keeps registration order")
	out, _ := g.Output("x")
	assert.Equal(t, "y.return", out.Source().String())
}

func TestGraph_IsValidName(t *testing.T) {
	assert.True(t, workflow.IsValidName("sst_anomaly"))
	assert.True(t, workflow.IsValidName("_x1"))
	assert.False(t, workflow.IsValidName("1x"))
	assert.False(t, workflow.IsValidName("a-b"))
	assert.False(t, workflow.IsValidName(""))
}
