package workflow

import (
	"encoding/json"
	"fmt"
)

// The persisted graph document. Input ports are serialized as an array to
// preserve declaration order even before the operation is re-bound; each
// port carries either a literal value or a "step.port" source reference,
// which stays dangling until ResolveReferences runs.

type graphJSON struct {
	Header  map[string]any `json:"header"`
	Steps   []stepJSON     `json:"steps"`
	Outputs []outputJSON   `json:"outputs,omitempty"`
}

type stepJSON struct {
	Resource string     `json:"resource"`
	Op       string     `json:"op"`
	Inputs   []portJSON `json:"inputs,omitempty"`
	Outputs  []string   `json:"outputs,omitempty"`
}

type portJSON struct {
	Name   string          `json:"name"`
	Value  json.RawMessage `json:"value,omitempty"`
	Source string          `json:"source,omitempty"`
}

type outputJSON struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}

// MarshalJSON serializes the graph with enough per-port information to
// reconstruct unresolved references on load.
func (g *Graph) MarshalJSON() ([]byte, error) {
	doc := graphJSON{
		Header: g.header,
		Steps:  make([]stepJSON, 0, len(g.steps)),
	}

	for _, step := range g.steps {
		sj := stepJSON{
			Resource: step.Name(),
			Op:       step.OpName(),
			Outputs:  step.Outputs(),
		}
		for _, port := range step.Inputs() {
			if !port.IsSet() {
				continue
			}
			pj := portJSON{Name: port.Name()}
			if ref := port.Source(); ref != nil {
				pj.Source = ref.String()
			} else if v, ok := port.Value(); ok {
				raw, err := json.Marshal(v)
				if err != nil {
					return nil, fmt.Errorf("step %q input %q: %w", step.Name(), port.Name(), err)
				}
				pj.Value = raw
			}
			sj.Inputs = append(sj.Inputs, pj)
		}
		doc.Steps = append(doc.Steps, sj)
	}

	for _, port := range g.outputs {
		oj := outputJSON{Name: port.Name()}
		if ref := port.Source(); ref != nil {
			oj.Source = ref.String()
		}
		doc.Outputs = append(doc.Outputs, oj)
	}

	return json.MarshalIndent(doc, "", "  ")
}

// UnmarshalJSON reconstructs a graph from its persisted form. Steps come
// back unbound; call Bind with a registry before executing, and
// ResolveReferences to validate the restored references.
func (g *Graph) UnmarshalJSON(data []byte) error {
	var doc graphJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	restored := New(doc.Header)
	restored.resolved = false

	for _, sj := range doc.Steps {
		inputs := make([]*Port, 0, len(sj.Inputs))
		for _, pj := range sj.Inputs {
			port := NewPort(pj.Name)
			switch {
			case pj.Source != "":
				ref, err := ParseSourceRef(pj.Source)
				if err != nil {
					return fmt.Errorf("step %q input %q: %w", sj.Resource, pj.Name, err)
				}
				port.SetSource(ref)
			case pj.Value != nil:
				var v any
				if err := json.Unmarshal(pj.Value, &v); err != nil {
					return fmt.Errorf("step %q input %q: %w", sj.Resource, pj.Name, err)
				}
				port.SetValue(v)
			}
			inputs = append(inputs, port)
		}
		step := newUnboundStep(sj.Resource, sj.Op, inputs, sj.Outputs)
		if _, err := restored.AddStep(step, false); err != nil {
			return err
		}
	}

	for _, oj := range doc.Outputs {
		ref, err := ParseSourceRef(oj.Source)
		if err != nil {
			return fmt.Errorf("workflow output %q: %w", oj.Name, err)
		}
		restored.SetOutput(oj.Name, ref)
	}

	*g = *restored
	return nil
}
