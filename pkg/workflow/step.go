package workflow

import (
	"github.com/covetools/cove/pkg/registry"
)

// Step is one operation invocation, uniquely identified within a graph by
// the resource name it produces. Its input ports mirror the declared
// parameters of the bound operation, in declaration order.
type Step struct {
	name    string
	opName  string
	op      *registry.Operation
	inputs  []*Port
	inIndex map[string]int
	outputs []string
}

// NewStep constructs a step bound to the given operation descriptor.
func NewStep(op *registry.Operation, resource string) *Step {
	s := &Step{
		name:    resource,
		opName:  op.Name,
		op:      op,
		outputs: op.OutputNames(),
	}
	s.inputs = make([]*Port, 0, len(op.Params))
	s.inIndex = make(map[string]int, len(op.Params))
	for _, p := range op.Params {
		s.inIndex[p.Name] = len(s.inputs)
		s.inputs = append(s.inputs, NewPort(p.Name))
	}
	return s
}

// newUnboundStep reconstructs a step from persisted state; the operation is
// re-bound later against a registry.
func newUnboundStep(resource, opName string, inputs []*Port, outputs []string) *Step {
	s := &Step{
		name:    resource,
		opName:  opName,
		inputs:  inputs,
		inIndex: make(map[string]int, len(inputs)),
		outputs: outputs,
	}
	for i, p := range inputs {
		s.inIndex[p.Name()] = i
	}
	if len(s.outputs) == 0 {
		s.outputs = []string{registry.ReturnOutput}
	}
	return s
}

// Name returns the resource name this step produces.
func (s *Step) Name() string { return s.name }

// OpName returns the bound operation identifier.
func (s *Step) OpName() string { return s.opName }

// Op returns the bound operation descriptor, or nil if the step has been
// deserialized but not yet bound.
func (s *Step) Op() *registry.Operation { return s.op }

// Input returns the input port with the given name.
func (s *Step) Input(name string) (*Port, bool) {
	i, ok := s.inIndex[name]
	if !ok {
		return nil, false
	}
	return s.inputs[i], true
}

// Inputs returns the input ports in declaration order.
func (s *Step) Inputs() []*Port { return s.inputs }

// Outputs returns the output port names.
func (s *Step) Outputs() []string { return s.outputs }

// HasOutput reports whether the step declares the named output.
func (s *Step) HasOutput(name string) bool {
	for _, o := range s.outputs {
		if o == name {
			return true
		}
	}
	return false
}

// DefaultOutput returns the step's designated default output name.
func (s *Step) DefaultOutput() string {
	if s.HasOutput(registry.ReturnOutput) {
		return registry.ReturnOutput
	}
	return s.outputs[0]
}

// bind re-attaches the operation descriptor after deserialization and
// reshapes the input ports into declaration order, preserving their state.
// Serialized input names that do not match a declared parameter are rejected.
func (s *Step) bind(op *registry.Operation) error {
	loaded := make(map[string]*Port, len(s.inputs))
	for _, p := range s.inputs {
		if _, ok := op.Param(p.Name()); !ok {
			return &UnknownParameterError{Op: op.Name, Param: p.Name()}
		}
		loaded[p.Name()] = p
	}

	inputs := make([]*Port, 0, len(op.Params))
	index := make(map[string]int, len(op.Params))
	for _, param := range op.Params {
		port, ok := loaded[param.Name]
		if !ok {
			port = NewPort(param.Name)
		}
		index[param.Name] = len(inputs)
		inputs = append(inputs, port)
	}

	s.op = op
	s.opName = op.Name
	s.inputs = inputs
	s.inIndex = index
	s.outputs = op.OutputNames()
	return nil
}
