package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/covetools/cove/pkg/monitor"
)

// Execute computes the requested resource names, or all graph outputs when
// none are requested. Only steps whose outputs are transitively required are
// evaluated, in dependency order; ties among independent steps are broken by
// insertion order, so results are deterministic. The returned mapping is
// all-or-nothing: the first operation failure aborts the run with an
// ExecutionError and no partial results.
func (g *Graph) Execute(ctx context.Context, names []string, mon monitor.Monitor) (map[string]any, error) {
	if mon == nil {
		mon = monitor.Null()
	}
	if !g.resolved {
		if err := g.ResolveReferences(); err != nil {
			return nil, err
		}
	}

	if len(names) == 0 {
		names = g.OutputNames()
	}

	// Requested outputs and the steps that produce them.
	targets := make(map[string]SourceRef, len(names))
	for _, name := range names {
		port, ok := g.Output(name)
		if !ok {
			return nil, &UnresolvedReferenceError{Port: name, Ref: SourceRef{Step: name}}
		}
		targets[name] = *port.Source()
	}

	// Transitive closure of required steps.
	required := make(map[string]bool)
	var visit func(resource string) error
	visit = func(resource string) error {
		if required[resource] {
			return nil
		}
		required[resource] = true
		step, ok := g.Step(resource)
		if !ok {
			return &UnresolvedReferenceError{Port: resource, Ref: SourceRef{Step: resource}}
		}
		for _, port := range step.Inputs() {
			if ref := port.Source(); ref != nil {
				if err := visit(ref.Step); err != nil {
					return err
				}
			}
		}
		return nil
	}
	for _, ref := range targets {
		if err := visit(ref.Step); err != nil {
			return nil, err
		}
	}

	order, err := g.evalOrder(required)
	if err != nil {
		return nil, err
	}

	mon.Start("executing workflow", float64(len(order)))
	defer mon.Done()

	// Computed output values keyed by (step, port).
	values := make(map[SourceRef]any)

	for _, step := range order {
		args, err := g.stepArgs(step, values)
		if err != nil {
			return nil, &ExecutionError{Resource: step.Name(), Err: err}
		}
		op := step.Op()
		if op == nil || op.Fn == nil {
			return nil, &ExecutionError{
				Resource: step.Name(),
				Err:      &UnknownOperationError{Op: step.OpName()},
			}
		}
		result, err := op.Fn(ctx, args, mon.Child(1))
		if err != nil {
			return nil, &ExecutionError{Resource: step.Name(), Err: err}
		}
		if err := recordOutputs(values, step, result); err != nil {
			return nil, &ExecutionError{Resource: step.Name(), Err: err}
		}
	}

	out := make(map[string]any, len(targets))
	for name, ref := range targets {
		out[name] = values[ref]
	}
	return out, nil
}

// recordOutputs files the operation result under the step's declared output
// ports. A multi-output operation must return a map keyed by output name;
// each declared output is stored individually so qualified references like
// "split.tail" resolve during the rest of the run.
func recordOutputs(values map[SourceRef]any, step *Step, result any) error {
	outs := step.Outputs()
	if len(outs) == 1 {
		values[SourceRef{Step: step.Name(), Port: outs[0]}] = result
		return nil
	}
	named, ok := result.(map[string]any)
	if !ok {
		return fmt.Errorf("operation %q declares outputs %v but returned %T", step.OpName(), outs, result)
	}
	for _, out := range outs {
		v, ok := named[out]
		if !ok {
			return fmt.Errorf("operation %q returned no value for output %q", step.OpName(), out)
		}
		values[SourceRef{Step: step.Name(), Port: out}] = v
	}
	return nil
}

// evalOrder produces a topological ordering of the required steps using
// Kahn's algorithm, picking the earliest-inserted ready step each round.
func (g *Graph) evalOrder(required map[string]bool) ([]*Step, error) {
	indeg := make(map[string]int, len(required))
	for name := range required {
		indeg[name] = 0
	}
	for name := range required {
		step, _ := g.Step(name)
		for _, port := range step.Inputs() {
			if ref := port.Source(); ref != nil && required[ref.Step] && ref.Step != name {
				indeg[name]++
			}
		}
	}

	order := make([]*Step, 0, len(required))
	done := make(map[string]bool, len(required))
	for len(order) < len(required) {
		progressed := false
		for _, step := range g.steps {
			name := step.Name()
			if !required[name] || done[name] || indeg[name] != 0 {
				continue
			}
			done[name] = true
			order = append(order, step)
			progressed = true
			// Relax dependents of the completed step.
			for dep := range required {
				if dep == name || done[dep] {
					continue
				}
				depStep, _ := g.Step(dep)
				for _, port := range depStep.Inputs() {
					if ref := port.Source(); ref != nil && ref.Step == name {
						indeg[dep]--
					}
				}
			}
			break
		}
		if !progressed {
			blocked := make([]string, 0, len(required))
			for _, step := range g.steps {
				if required[step.Name()] && !done[step.Name()] {
					blocked = append(blocked, step.Name())
				}
			}
			return nil, &ExecutionError{
				Resource: blocked[0],
				Err:      fmt.Errorf("dependency cycle among %s", strings.Join(blocked, ", ")),
			}
		}
	}
	return order, nil
}

// stepArgs assembles the concrete input values of a step from its literal
// ports and the outputs already computed for referenced steps.
func (g *Graph) stepArgs(step *Step, values map[SourceRef]any) (map[string]any, error) {
	args := make(map[string]any, len(step.Inputs()))
	for _, port := range step.Inputs() {
		if v, ok := port.Value(); ok {
			args[port.Name()] = v
			continue
		}
		if ref := port.Source(); ref != nil {
			v, ok := values[*ref]
			if !ok {
				return nil, fmt.Errorf("input %q: value of %q not computed", port.Name(), ref.String())
			}
			args[port.Name()] = v
			continue
		}
		if op := step.Op(); op != nil {
			if param, ok := op.Param(port.Name()); ok && param.Required {
				return nil, fmt.Errorf("required input %q is not set", port.Name())
			}
		}
	}
	return args, nil
}
