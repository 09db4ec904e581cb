package workflow

import (
	"fmt"
	"strings"
)

// SourceRef addresses a step output as a (step, port) key pair resolved
// through the graph. Steps and ports live in flat collections owned by the
// graph; references never hold live pointers, so replacing a step cannot
// leave another port aimed at a dead object.
type SourceRef struct {
	Step string
	Port string
}

// String encodes the reference in "step.port" form.
func (r SourceRef) String() string {
	return r.Step + "." + r.Port
}

// ParseSourceRef decodes a "step.port" reference string.
func ParseSourceRef(s string) (SourceRef, error) {
	i := strings.LastIndex(s, ".")
	if i <= 0 || i == len(s)-1 {
		return SourceRef{}, fmt.Errorf("malformed source reference %q", s)
	}
	return SourceRef{Step: s[:i], Port: s[i+1:]}, nil
}

// Port is a named slot on a step or on the graph boundary. It is in exactly
// one of three states: unset, holding a literal value, or referencing another
// port's output.
type Port struct {
	name     string
	value    any
	hasValue bool
	source   *SourceRef
}

// NewPort creates an unset port.
func NewPort(name string) *Port {
	return &Port{name: name}
}

// Name returns the port name, unique per owner.
func (p *Port) Name() string { return p.name }

// SetValue binds a literal value, clearing any source reference.
func (p *Port) SetValue(v any) {
	p.value = v
	p.hasValue = true
	p.source = nil
}

// Value returns the literal value and whether one is set.
func (p *Port) Value() (any, bool) {
	return p.value, p.hasValue
}

// SetSource binds a source reference, clearing any literal value.
func (p *Port) SetSource(ref SourceRef) {
	p.source = &ref
	p.value = nil
	p.hasValue = false
}

// Source returns the source reference, or nil if the port is literal/unset.
func (p *Port) Source() *SourceRef { return p.source }

// IsSet reports whether the port holds either a value or a reference.
func (p *Port) IsSet() bool {
	return p.hasValue || p.source != nil
}
