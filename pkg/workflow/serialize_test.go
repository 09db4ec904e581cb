package workflow_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covetools/cove/pkg/workflow"
)

func TestGraph_SerializationRoundTrip(t *testing.T) {
	g, reg := newGraph(t)
	require.NoError(t, g.SetResource(reg, "x", "constant", []string{"value=5"}, setOpts))
	require.NoError(t, g.SetResource(reg, "y", "scale", []string{"input=x", "factor=2"}, setOpts))

	data, err := json.Marshal(g)
	require.NoError(t, err)

	restored := workflow.New(nil)
	require.NoError(t, json.Unmarshal(data, restored))

	// Steps come back unbound but structurally identical.
	steps := restored.Steps()
	require.Len(t, steps, 2)
	assert.Equal(t, "x", steps[0].Name())
	assert.Equal(t, "constant", steps[0].OpName())
	assert.Equal(t, "y", steps[1].Name())

	port, ok := steps[1].Input("input")
	require.True(t, ok)
	require.NotNil(t, port.Source())
	assert.Equal(t, "x.return", port.Source().String())

	assert.Equal(t, g.OutputNames(), restored.OutputNames())
	assert.Equal(t, "test", restored.Header()["description"])

	// After re-binding, the restored graph executes identically.
	require.NoError(t, restored.Bind(reg))
	require.NoError(t, restored.ResolveReferences())

	want, err := g.Execute(context.Background(), nil, nil)
	require.NoError(t, err)
	got, err := restored.Execute(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGraph_UnmarshalRejectsMalformedRef(t *testing.T) {
	doc := `{
		"header": {},
		"steps": [
			{"resource": "x", "op": "constant", "inputs": [{"name": "value", "source": "nodot"}]}
		]
	}`
	g := workflow.New(nil)
	err := json.Unmarshal([]byte(doc), g)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nodot")
}

func TestGraph_BindRejectsUnknownOperation(t *testing.T) {
	doc := `{
		"header": {},
		"steps": [{"resource": "x", "op": "vanished"}]
	}`
	g := workflow.New(nil)
	require.NoError(t, json.Unmarshal([]byte(doc), g))

	_, reg := newGraph(t)
	err := g.Bind(reg)
	var unknown *workflow.UnknownOperationError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "vanished", unknown.Op)
}

func TestGraph_DanglingRefSurvivesLoadUntilResolve(t *testing.T) {
	doc := `{
		"header": {},
		"steps": [
			{"resource": "y", "op": "identity", "inputs": [{"name": "input", "source": "ghost.return"}], "outputs": ["return"]}
		]
	}`
	g := workflow.New(nil)
	require.NoError(t, json.Unmarshal([]byte(doc), g))

	err := g.ResolveReferences()
	var unresolved *workflow.UnresolvedReferenceError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "ghost", unresolved.Ref.Step)
}
