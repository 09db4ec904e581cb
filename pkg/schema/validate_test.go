package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covetools/cove/pkg/schema"
)

func TestValidate_AllRequired(t *testing.T) {
	s := schema.Schema{
		"path":   schema.String(),
		"factor": schema.Float(),
	}

	err := schema.Validate(s, map[string]any{"path": "a.json", "factor": 2.0})
	assert.NoError(t, err)

	err = schema.Validate(s, map[string]any{"path": "a.json"})
	require.Error(t, err)
	var agg *schema.AggregateError
	require.ErrorAs(t, err, &agg)
	assert.Len(t, agg.Errors, 1)

	err = schema.Validate(s, map[string]any{})
	assert.Len(t, schema.ValidationErrors(err), 2)
	assert.Nil(t, schema.ValidationErrors(nil))
}

func TestValidatePartial_IgnoresAbsentAndUndeclared(t *testing.T) {
	s := schema.Schema{
		"input":  schema.Float(),
		"factor": schema.Float(),
	}

	// Absent fields pass, undeclared fields pass, present fields are checked.
	assert.NoError(t, schema.ValidatePartial(s, map[string]any{"factor": 2}))
	assert.NoError(t, schema.ValidatePartial(s, map[string]any{"other": "x"}))
	assert.Error(t, schema.ValidatePartial(s, map[string]any{"input": "not a number"}))
}

func TestTypeValidation(t *testing.T) {
	cases := []struct {
		typ   schema.Type
		good  any
		bad   any
		hasBad bool
	}{
		{schema.Any(), nil, nil, false},
		{schema.String(), "x", 1, true},
		{schema.Int(), 3, 1.5, true},
		{schema.Int(), float64(4), "x", true}, // whole floats count as ints
		{schema.Float(), 1.5, "x", true},
		{schema.Float(), 3, true, true}, // ints are acceptable floats
		{schema.Bool(), true, 0, true},
		{schema.Slice(schema.Float()), []any{1.0, 2.0}, []any{"x"}, true},
		{schema.Map(schema.Int()), map[string]any{"n": 1}, map[string]any{"n": "x"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.typ.Name(), func(t *testing.T) {
			assert.NoError(t, tc.typ.Validate(tc.good))
			if tc.hasBad {
				assert.Error(t, tc.typ.Validate(tc.bad))
			}
		})
	}
}

func TestParseType(t *testing.T) {
	for _, name := range []string{"any", "string", "int", "float", "bool", "[float]", "{string}", "[[int]]"} {
		typ, err := schema.ParseType(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, typ.Name())
	}

	_, err := schema.ParseType("decimal")
	assert.Error(t, err)
}
