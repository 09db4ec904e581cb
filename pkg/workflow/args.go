package workflow

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/covetools/cove/pkg/registry"
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// IsValidName reports whether s is a legal resource or argument name.
func IsValidName(s string) bool {
	return identRe.MatchString(s)
}

// Arg is one parsed operation argument: either a reference into the graph or
// a literal value.
type Arg struct {
	Name  string
	Ref   *SourceRef
	Value any
}

// IsRef reports whether the argument resolved to a port reference.
func (a Arg) IsRef() bool { return a.Ref != nil }

// ParseArgs parses a sequence of "key=expression" strings against the given
// namespace. An expression naming an existing resource becomes a port
// reference; "resource.output" selects a specific named output; anything
// else is decoded as a JSON literal, falling back to a plain string.
// Positional (unnamed) arguments are rejected: every operation argument must
// be explicitly named.
func ParseArgs(raw []string, ns Namespace) ([]Arg, error) {
	args := make([]Arg, 0, len(raw))
	seen := make(map[string]bool, len(raw))

	for _, entry := range raw {
		eq := strings.Index(entry, "=")
		if eq < 0 {
			return nil, &ArgumentError{Arg: entry, Reason: "positional arguments are not supported"}
		}
		name := strings.TrimSpace(entry[:eq])
		expr := strings.TrimSpace(entry[eq+1:])
		if !IsValidName(name) {
			return nil, &ArgumentError{Arg: name, Reason: "not a valid argument name"}
		}
		if seen[name] {
			return nil, &ArgumentError{Arg: name, Reason: "given more than once"}
		}
		seen[name] = true

		arg, err := parseExpr(name, expr, ns)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	return args, nil
}

func parseExpr(name, expr string, ns Namespace) (Arg, error) {
	// Bare resource name
	if identRe.MatchString(expr) {
		if entry, ok := ns[expr]; ok {
			return refArg(name, expr, "", entry)
		}
	}

	// Qualified "resource.output"
	if dot := strings.Index(expr, "."); dot > 0 {
		res, out := expr[:dot], expr[dot+1:]
		if identRe.MatchString(res) && identRe.MatchString(out) {
			if entry, ok := ns[res]; ok {
				return refArg(name, res, out, entry)
			}
		}
	}

	// Literal: JSON first, bare string as fallback
	var value any
	if err := json.Unmarshal([]byte(expr), &value); err != nil {
		value = expr
	}
	return Arg{Name: name, Value: value}, nil
}

func refArg(name, res, out string, entry any) (Arg, error) {
	switch v := entry.(type) {
	case SourceRef:
		if out != "" && out != v.Port {
			return Arg{}, &ArgumentError{
				Arg:    name,
				Reason: fmt.Sprintf("resource %q has no output %q", res, out),
			}
		}
		return Arg{Name: name, Ref: &v}, nil
	case map[string]SourceRef:
		if out == "" {
			// Unqualified access selects the designated default output.
			ref, ok := v[registry.ReturnOutput]
			if !ok {
				return Arg{}, &ArgumentError{
					Arg:    name,
					Reason: fmt.Sprintf("resource %q has named outputs; select one with %s.<output>", res, res),
				}
			}
			return Arg{Name: name, Ref: &ref}, nil
		}
		ref, ok := v[out]
		if !ok {
			return Arg{}, &ArgumentError{
				Arg:    name,
				Reason: fmt.Sprintf("resource %q has no output %q", res, out),
			}
		}
		return Arg{Name: name, Ref: &ref}, nil
	default:
		return Arg{}, &ArgumentError{Arg: name, Reason: "illegal namespace entry"}
	}
}
