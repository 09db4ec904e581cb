package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNamespace() Namespace {
	return Namespace{
		"sst": SourceRef{Step: "sst", Port: "return"},
		"split": map[string]SourceRef{
			"return": {Step: "split", Port: "return"},
			"rest":   {Step: "split", Port: "rest"},
		},
	}
}

func TestParseArgs_References(t *testing.T) {
	args, err := ParseArgs([]string{"input=sst"}, testNamespace())
	require.NoError(t, err)
	require.Len(t, args, 1)
	require.True(t, args[0].IsRef())
	assert.Equal(t, SourceRef{Step: "sst", Port: "return"}, *args[0].Ref)
}

func TestParseArgs_QualifiedReference(t *testing.T) {
	args, err := ParseArgs([]string{"input=split.rest"}, testNamespace())
	require.NoError(t, err)
	require.True(t, args[0].IsRef())
	assert.Equal(t, SourceRef{Step: "split", Port: "rest"}, *args[0].Ref)
}

func TestParseArgs_UnknownOutput(t *testing.T) {
	_, err := ParseArgs([]string{"input=split.bogus"}, testNamespace())
	var argErr *ArgumentError
	require.ErrorAs(t, err, &argErr)
}

func TestParseArgs_Literals(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want any
	}{
		{"number", "value=5", float64(5)},
		{"bool", "value=true", true},
		{"quoted string", `value="sst"`, "sst"},
		{"list", "value=[1,2]", []any{float64(1), float64(2)}},
		{"bare string fallback", "value=hello world", "hello world"},
		{"unknown name is a literal", "value=nosuch", "nosuch"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			args, err := ParseArgs([]string{tc.raw}, testNamespace())
			require.NoError(t, err)
			require.False(t, args[0].IsRef())
			assert.Equal(t, tc.want, args[0].Value)
		})
	}
}

func TestParseArgs_Rejections(t *testing.T) {
	cases := []struct {
		name string
		raw  []string
	}{
		{"positional", []string{"5"}},
		{"bad name", []string{"2x=5"}},
		{"duplicate", []string{"a=1", "a=2"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseArgs(tc.raw, testNamespace())
			var argErr *ArgumentError
			assert.ErrorAs(t, err, &argErr)
		})
	}
}

func TestParseSourceRef(t *testing.T) {
	ref, err := ParseSourceRef("step.return")
	require.NoError(t, err)
	assert.Equal(t, SourceRef{Step: "step", Port: "return"}, ref)
	assert.Equal(t, "step.return", ref.String())

	_, err = ParseSourceRef("no-dot")
	assert.Error(t, err)
}
