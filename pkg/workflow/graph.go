// Package workflow implements the dataflow graph a workspace records: steps
// bound to named operations, ports wired to literal values or to other
// steps' outputs, and the algorithms that mutate, resolve and execute the
// graph deterministically.
package workflow

import (
	"github.com/covetools/cove/pkg/registry"
)

// Resolver is the slice of the operation registry the graph consumes.
type Resolver interface {
	Lookup(name string) (*registry.Operation, bool)
}

// Graph is an ordered collection of steps plus graph-level output ports that
// alias step outputs. Insertion order is significant for re-resolution and
// for deterministic tie-breaking during execution.
type Graph struct {
	header   map[string]any
	steps    []*Step
	index    map[string]int
	outputs  []*Port
	outIndex map[string]int
	resolved bool
}

// New creates an empty graph carrying the given header metadata.
func New(header map[string]any) *Graph {
	if header == nil {
		header = map[string]any{}
	}
	return &Graph{
		header:   header,
		index:    map[string]int{},
		outIndex: map[string]int{},
		resolved: true,
	}
}

// Header returns the graph's header metadata.
func (g *Graph) Header() map[string]any { return g.header }

// Steps returns the steps in insertion order.
func (g *Graph) Steps() []*Step { return g.steps }

// Step returns the step producing the named resource.
func (g *Graph) Step(resource string) (*Step, bool) {
	i, ok := g.index[resource]
	if !ok {
		return nil, false
	}
	return g.steps[i], true
}

// Outputs returns the graph-level output ports in registration order.
func (g *Graph) Outputs() []*Port { return g.outputs }

// Output returns the graph-level output port with the given name.
func (g *Graph) Output(name string) (*Port, bool) {
	i, ok := g.outIndex[name]
	if !ok {
		return nil, false
	}
	return g.outputs[i], true
}

// OutputNames returns the graph output names in registration order.
func (g *Graph) OutputNames() []string {
	names := make([]string, len(g.outputs))
	for i, p := range g.outputs {
		names[i] = p.Name()
	}
	return names
}

// AddStep inserts a new step, or replaces the step with the same resource
// name in place when allowReplace is true. The replaced step, if any, is
// returned. Replacement preserves the step's position.
func (g *Graph) AddStep(step *Step, allowReplace bool) (*Step, error) {
	if i, ok := g.index[step.Name()]; ok {
		if !allowReplace {
			return nil, &DuplicateResourceError{Resource: step.Name()}
		}
		old := g.steps[i]
		g.steps[i] = step
		g.resolved = false
		return old, nil
	}
	g.index[step.Name()] = len(g.steps)
	g.steps = append(g.steps, step)
	g.resolved = false
	return nil, nil
}

// SetOutput registers or updates the graph-level output alias with the given
// name, pointing it at the referenced step output.
func (g *Graph) SetOutput(name string, ref SourceRef) {
	g.resolved = false
	if i, ok := g.outIndex[name]; ok {
		g.outputs[i].SetSource(ref)
		return
	}
	port := NewPort(name)
	port.SetSource(ref)
	g.outIndex[name] = len(g.outputs)
	g.outputs = append(g.outputs, port)
}

// removeStep undoes an insertion or replacement; used to keep failed
// mutations atomic.
func (g *Graph) removeStep(name string, replaced *Step) {
	i, ok := g.index[name]
	if !ok {
		return
	}
	if replaced != nil {
		g.steps[i] = replaced
		return
	}
	g.steps = append(g.steps[:i], g.steps[i+1:]...)
	delete(g.index, name)
	for j := i; j < len(g.steps); j++ {
		g.index[g.steps[j].Name()] = j
	}
}

// ResolveReferences walks every port in the graph and validates that each
// source reference points to an output of an existing step. It must be
// re-run after a step replacement, which invalidates prior resolution.
// Dangling references are only legal between deserialization and this call.
func (g *Graph) ResolveReferences() error {
	for _, step := range g.steps {
		for _, port := range step.Inputs() {
			if ref := port.Source(); ref != nil {
				if err := g.checkRef(step.Name(), port.Name(), *ref); err != nil {
					return err
				}
			}
		}
	}
	for _, port := range g.outputs {
		ref := port.Source()
		if ref == nil {
			return &UnresolvedReferenceError{Port: port.Name(), Ref: SourceRef{}}
		}
		if err := g.checkRef("", port.Name(), *ref); err != nil {
			return err
		}
	}
	g.resolved = true
	return nil
}

func (g *Graph) checkRef(owner, portName string, ref SourceRef) error {
	target, ok := g.Step(ref.Step)
	if !ok || !target.HasOutput(ref.Port) {
		return &UnresolvedReferenceError{Resource: owner, Port: portName, Ref: ref}
	}
	return nil
}

// Bind re-attaches operation descriptors to all steps after deserialization.
func (g *Graph) Bind(reg Resolver) error {
	for _, step := range g.steps {
		op, ok := reg.Lookup(step.OpName())
		if !ok {
			return &UnknownOperationError{Op: step.OpName()}
		}
		if err := step.bind(op); err != nil {
			return err
		}
	}
	return nil
}

// Reset discards all steps and outputs while preserving header metadata.
func (g *Graph) Reset() {
	g.steps = nil
	g.index = map[string]int{}
	g.outputs = nil
	g.outIndex = map[string]int{}
	g.resolved = true
}

// Namespace maps every existing resource name to its output reference: a
// single SourceRef for steps with one implicit output, or a sub-namespace of
// named output references otherwise. It is consulted while parsing the
// arguments of a new step.
type Namespace map[string]any

// Namespace builds the resolution namespace from the current steps.
func (g *Graph) Namespace() Namespace {
	ns := make(Namespace, len(g.steps))
	for _, step := range g.steps {
		outs := step.Outputs()
		if len(outs) == 1 {
			ns[step.Name()] = SourceRef{Step: step.Name(), Port: outs[0]}
			continue
		}
		sub := make(map[string]SourceRef, len(outs))
		for _, o := range outs {
			sub[o] = SourceRef{Step: step.Name(), Port: o}
		}
		ns[step.Name()] = sub
	}
	return ns
}
