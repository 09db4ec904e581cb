package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Schemas travel as a flat JSON object of field name to type expression,
// e.g. {"series": "[float]", "factor": "float"}. The expressions are the
// Name() forms and parse back through ParseType, so a published operation
// catalog can be decoded into live validators by another process.

// MarshalJSON encodes the schema as a name-to-type-expression object.
func (s Schema) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	raw := make(map[string]string, len(s))
	for name, typ := range s {
		if typ == nil {
			return nil, fmt.Errorf("field %s: nil type", name)
		}
		raw[name] = typ.Name()
	}
	return json.Marshal(raw)
}

// UnmarshalJSON decodes a name-to-type-expression object back into a schema
// of live validators.
func (s *Schema) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = nil
		return nil
	}
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	parsed, err := ParseTypeMap(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
