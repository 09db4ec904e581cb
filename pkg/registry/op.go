package registry

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/covetools/cove/pkg/schema"
)

// ReturnOutput is the name of the single implicit output most operations have.
const ReturnOutput = "return"

// Param describes one declared operation parameter.
type Param struct {
	Name     string
	Type     schema.Type
	Required bool
	Default  any
}

// Operation describes a named operation: its parameters in declaration order,
// its output names and the function that computes it.
type Operation struct {
	Name        string
	Description string
	Params      []Param
	// Outputs lists the output port names. Empty means the single implicit
	// "return" output.
	Outputs []string
	Fn      Func
}

// OutputNames returns the effective output names of the operation.
func (op *Operation) OutputNames() []string {
	if len(op.Outputs) == 0 {
		return []string{ReturnOutput}
	}
	return op.Outputs
}

// HasNamedOutputs reports whether the operation declares outputs beyond the
// single implicit return value.
func (op *Operation) HasNamedOutputs() bool {
	names := op.OutputNames()
	return len(names) > 1 || names[0] != ReturnOutput
}

// Param returns the declared parameter with the given name.
func (op *Operation) Param(name string) (Param, bool) {
	for _, p := range op.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// ParamSchema returns the parameter declarations as a validation schema.
func (op *Operation) ParamSchema() schema.Schema {
	s := make(schema.Schema, len(op.Params))
	for _, p := range op.Params {
		s[p.Name] = p.Type
	}
	return s
}

// ValidateLiterals checks the given literal values against the declared
// parameter types. Values wired in from other steps must be excluded by the
// caller; they are validated at execution time once concrete.
func (op *Operation) ValidateLiterals(values map[string]any) error {
	if err := schema.ValidatePartial(op.ParamSchema(), values); err != nil {
		return fmt.Errorf("operation %q: %w", op.Name, err)
	}
	return nil
}

// DecodeArgs decodes an argument map into a typed parameter struct, applying
// declared defaults for absent parameters first. Implementations of built-in
// operations use this instead of hand-rolled map plumbing.
func (op *Operation) DecodeArgs(args map[string]any, out any) error {
	merged := make(map[string]any, len(args))
	for _, p := range op.Params {
		if p.Default != nil {
			merged[p.Name] = p.Default
		}
	}
	for k, v := range args {
		merged[k] = v
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("operation %q: %w", op.Name, err)
	}
	if err := dec.Decode(merged); err != nil {
		return fmt.Errorf("operation %q: decode args: %w", op.Name, err)
	}
	return nil
}
