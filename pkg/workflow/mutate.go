package workflow

import (
	"github.com/covetools/cove/pkg/registry"
)

// SetResourceOptions controls the resource-setting mutation.
type SetResourceOptions struct {
	// AllowReplace permits replacing a step that already produces the
	// resource. The replacement is whole-step; steps are never partially
	// mutated.
	AllowReplace bool
	// Validate checks literal argument values against the operation's
	// declared parameter types. Referenced values are checked at execution
	// time instead, once they are concrete.
	Validate bool
}

// SetResource adds or replaces the step producing the named resource. It
// resolves op identifier and arguments, binds the candidate step's input
// ports, inserts or replaces the step, re-resolves references when a step
// was replaced, and registers the graph-level output alias.
//
// The mutation is atomic: any failure leaves the graph unchanged.
func (g *Graph) SetResource(reg Resolver, resource, opName string, opArgs []string, opts SetResourceOptions) error {
	if !IsValidName(resource) {
		return &ArgumentError{Arg: resource, Reason: "not a valid resource name"}
	}

	op, ok := reg.Lookup(opName)
	if !ok {
		return &UnknownOperationError{Op: opName}
	}

	// Multiple named outputs would need one workflow output per op output;
	// that mapping is not supported yet, so fail before mutating anything.
	if op.HasNamedOutputs() {
		return &UnsupportedOperationShapeError{Op: opName, Outputs: op.OutputNames()}
	}

	step := NewStep(op, resource)

	ns := g.Namespace()
	_, exists := ns[resource]
	if exists && !opts.AllowReplace {
		return &DuplicateResourceError{Resource: resource}
	}

	args, err := ParseArgs(opArgs, ns)
	if err != nil {
		return err
	}

	if opts.Validate {
		literals := make(map[string]any)
		for _, a := range args {
			if !a.IsRef() {
				literals[a.Name] = a.Value
			}
		}
		if err := op.ValidateLiterals(literals); err != nil {
			return err
		}
	}

	for _, a := range args {
		port, ok := step.Input(a.Name)
		if !ok {
			return &UnknownParameterError{Op: opName, Param: a.Name}
		}
		if a.IsRef() {
			port.SetSource(*a.Ref)
		} else {
			port.SetValue(a.Value)
		}
	}

	replaced, err := g.AddStep(step, true)
	if err != nil {
		return err
	}
	if exists {
		// Replacing a step invalidates resolution state held elsewhere in
		// the graph; re-resolve and roll back if the new shape broke a
		// dependent reference.
		if err := g.ResolveReferences(); err != nil {
			g.removeStep(resource, replaced)
			_ = g.ResolveReferences()
			return err
		}
	}

	g.SetOutput(resource, SourceRef{Step: resource, Port: step.DefaultOutput()})
	return g.ResolveReferences()
}

var _ Resolver = (*registry.Registry)(nil)
