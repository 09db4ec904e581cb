package workflow_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covetools/cove/pkg/monitor"
	"github.com/covetools/cove/pkg/registry"
	"github.com/covetools/cove/pkg/schema"
	"github.com/covetools/cove/pkg/workflow"
)

func TestExecute_ChainsValues(t *testing.T) {
	g, reg := newGraph(t)
	require.NoError(t, g.SetResource(reg, "x", "constant", []string{"value=5"}, setOpts))
	require.NoError(t, g.SetResource(reg, "y", "scale", []string{"input=x", "factor=2"}, setOpts))

	result, err := g.Execute(context.Background(), []string{"y"}, monitor.Null())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"y": float64(10)}, result)
}

func TestExecute_AllOutputsWhenUnrestricted(t *testing.T) {
	g, reg := newGraph(t)
	require.NoError(t, g.SetResource(reg, "x", "constant", []string{"value=5"}, setOpts))
	require.NoError(t, g.SetResource(reg, "y", "scale", []string{"input=x", "factor=3"}, setOpts))

	result, err := g.Execute(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, float64(5), result["x"])
	assert.Equal(t, float64(15), result["y"])
}

func TestExecute_MinimalClosure(t *testing.T) {
	g, _ := newGraph(t)

	var evaluated []string
	reg := recordingRegistry(&evaluated)

	require.NoError(t, g.SetResource(reg, "a", "probe", []string{"value=1", `label="a"`}, setOpts))
	require.NoError(t, g.SetResource(reg, "b", "probe", []string{"value=a", `label="b"`}, setOpts))
	require.NoError(t, g.SetResource(reg, "c", "probe", []string{"value=2", `label="c"`}, setOpts))

	evaluated = nil
	_, err := g.Execute(context.Background(), []string{"b"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, evaluated, "only the requested resource and its dependencies run")
}

func TestExecute_InsertionOrderTieBreak(t *testing.T) {
	g, _ := newGraph(t)

	var evaluated []string
	reg := recordingRegistry(&evaluated)

	// Three independent steps: order must follow insertion, not map iteration.
	require.NoError(t, g.SetResource(reg, "c", "probe", []string{"value=1", `label="c"`}, setOpts))
	require.NoError(t, g.SetResource(reg, "a", "probe", []string{"value=2", `label="a"`}, setOpts))
	require.NoError(t, g.SetResource(reg, "b", "probe", []string{"value=3", `label="b"`}, setOpts))

	evaluated = nil
	_, err := g.Execute(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, evaluated)
}

func TestExecute_FailureIsAllOrNothing(t *testing.T) {
	g, _ := newGraph(t)

	reg := registry.New()
	reg.Register(&registry.Operation{
		Name:   "ok",
		Params: []registry.Param{},
		Fn: func(ctx context.Context, args map[string]any, mon monitor.Monitor) (any, error) {
			return 1, nil
		},
	})
	reg.Register(&registry.Operation{
		Name:   "boom",
		Params: []registry.Param{},
		Fn: func(ctx context.Context, args map[string]any, mon monitor.Monitor) (any, error) {
			return nil, fmt.Errorf("boom")
		},
	})

	require.NoError(t, g.SetResource(reg, "good", "ok", nil, setOpts))
	require.NoError(t, g.SetResource(reg, "bad", "boom", nil, setOpts))

	result, err := g.Execute(context.Background(), nil, nil)
	assert.Nil(t, result, "no partial results on failure")

	var exec *workflow.ExecutionError
	require.ErrorAs(t, err, &exec)
	assert.Equal(t, "bad", exec.Resource)
	assert.EqualError(t, exec.Unwrap(), "boom")
}

func TestExecute_UnknownResource(t *testing.T) {
	g, reg := newGraph(t)
	require.NoError(t, g.SetResource(reg, "x", "constant", []string{"value=5"}, setOpts))

	_, err := g.Execute(context.Background(), []string{"nope"}, nil)
	var unresolved *workflow.UnresolvedReferenceError
	assert.ErrorAs(t, err, &unresolved)
}

func TestExecute_CycleAfterReplacement(t *testing.T) {
	g, reg := newGraph(t)
	require.NoError(t, g.SetResource(reg, "x", "constant", []string{"value=5"}, setOpts))
	require.NoError(t, g.SetResource(reg, "y", "identity", []string{"input=x"}, setOpts))

	// Replacing x with a step that reads y closes a cycle. The mutation is
	// legal (references resolve); execution must detect it.
	require.NoError(t, g.SetResource(reg, "x", "identity", []string{"input=y"}, setOpts))

	_, err := g.Execute(context.Background(), []string{"y"}, nil)
	var exec *workflow.ExecutionError
	require.ErrorAs(t, err, &exec)
	assert.Contains(t, err.Error(), "cycle")
	assert.Contains(t, err.Error(), "x", "the stuck resources are named")
	assert.Contains(t, err.Error(), "y", "the stuck resources are named")
}

// splitRegistry is the default catalog plus a two-output "split" operation.
// Multi-output steps enter a graph only through deserialization.
func splitRegistry(result any) *registry.Registry {
	reg := registry.Default()
	reg.Register(&registry.Operation{
		Name:    "split",
		Outputs: []string{"head", "tail"},
		Fn: func(ctx context.Context, args map[string]any, mon monitor.Monitor) (any, error) {
			return result, nil
		},
	})
	return reg
}

const splitDoc = `{
	"header": {},
	"steps": [
		{"resource": "parts", "op": "split", "outputs": ["head", "tail"]},
		{"resource": "rest", "op": "identity", "inputs": [{"name": "input", "source": "parts.tail"}]}
	],
	"outputs": [{"name": "rest", "source": "rest.return"}]
}`

func TestExecute_MultiOutputStep(t *testing.T) {
	reg := splitRegistry(map[string]any{"head": 1.0, "tail": []any{2.0, 3.0}})

	g := workflow.New(nil)
	require.NoError(t, g.UnmarshalJSON([]byte(splitDoc)))
	require.NoError(t, g.Bind(reg))
	require.NoError(t, g.ResolveReferences())

	result, err := g.Execute(context.Background(), []string{"rest"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []any{2.0, 3.0}, result["rest"], "the non-default output is routed to its dependent")
}

func TestExecute_MultiOutputShapeMismatch(t *testing.T) {
	// A multi-output operation returning a plain value cannot be routed.
	reg := splitRegistry(5.0)

	g := workflow.New(nil)
	require.NoError(t, g.UnmarshalJSON([]byte(splitDoc)))
	require.NoError(t, g.Bind(reg))
	require.NoError(t, g.ResolveReferences())

	_, err := g.Execute(context.Background(), []string{"rest"}, nil)
	var exec *workflow.ExecutionError
	require.ErrorAs(t, err, &exec)
	assert.Equal(t, "parts", exec.Resource)
}

// recordingRegistry registers a "probe" operation that appends its label
// argument to the shared slice, recording the step evaluation order.
func recordingRegistry(evaluated *[]string) *registry.Registry {
	reg := registry.New()
	op := &registry.Operation{
		Name: "probe",
		Params: []registry.Param{
			{Name: "value", Type: schema.Any(), Required: true},
			{Name: "label", Type: schema.String(), Required: true},
		},
	}
	op.Fn = func(ctx context.Context, args map[string]any, mon monitor.Monitor) (any, error) {
		*evaluated = append(*evaluated, fmt.Sprintf("%v", args["label"]))
		return args["value"], nil
	}
	reg.Register(op)
	return reg
}
