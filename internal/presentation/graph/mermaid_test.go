package graph_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covetools/cove/internal/presentation/graph"
	"github.com/covetools/cove/pkg/registry"
	"github.com/covetools/cove/pkg/workflow"
)

func buildGraph(t *testing.T) *workflow.Graph {
	t.Helper()
	g := workflow.New(nil)
	reg := registry.Default()
	opts := workflow.SetResourceOptions{AllowReplace: true, Validate: true}
	require.NoError(t, g.SetResource(reg, "x", "constant", []string{"value=5"}, opts))
	require.NoError(t, g.SetResource(reg, "y", "scale", []string{"input=x", "factor=2"}, opts))
	return g
}

func TestGenerateMermaid_StructureAndEdges(t *testing.T) {
	out := graph.GenerateMermaid(buildGraph(t), nil)

	assert.Contains(t, out, "graph TD")
	assert.Contains(t, out, `x[["x = constant"]]`)
	assert.Contains(t, out, `y[["y = scale"]]`)
	// Reference edge with the fed port on the label.
	assert.Contains(t, out, `x -- "input" --> y`)
	// Literal inputs become rounded nodes on dotted edges.
	assert.Contains(t, out, `.-> y`)
	// Output aliases appear as parallelograms.
	assert.Contains(t, out, `out_y[/"y"/]`)
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	out := graph.GenerateMermaid(buildGraph(t), &graph.Overlay{
		Computed: []string{"x", "x"},
		Failed:   "y",
	})

	assert.Equal(t, 1, strings.Count(out, "class x computed;"), "computed set is deduplicated")
	assert.Contains(t, out, "class y failed;")
}

func TestGenerateMermaid_SanitizesIDs(t *testing.T) {
	g := workflow.New(nil)
	reg := registry.Default()
	opts := workflow.SetResourceOptions{AllowReplace: true, Validate: true}
	require.NoError(t, g.SetResource(reg, "sst_mean", "constant", []string{"value=1"}, opts))

	out := graph.GenerateMermaid(g, nil)
	assert.Contains(t, out, "sst_mean")
}
