package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/covetools/cove/pkg/monitor"
	"github.com/covetools/cove/pkg/schema"
)

// Default returns a registry populated with the built-in operations.
func Default() *Registry {
	r := New()
	for _, op := range builtins() {
		r.Register(op)
	}
	return r
}

func builtins() []*Operation {
	constant := &Operation{
		Name:        "constant",
		Description: "Produces the given value unchanged.",
		Params: []Param{
			{Name: "value", Type: schema.Any(), Required: true},
		},
	}
	constant.Fn = func(ctx context.Context, args map[string]any, mon monitor.Monitor) (any, error) {
		return args["value"], nil
	}

	identity := &Operation{
		Name:        "identity",
		Description: "Passes its input through.",
		Params: []Param{
			{Name: "input", Type: schema.Any(), Required: true},
		},
	}
	identity.Fn = func(ctx context.Context, args map[string]any, mon monitor.Monitor) (any, error) {
		return args["input"], nil
	}

	add := &Operation{
		Name:        "add",
		Description: "Adds two numbers.",
		Params: []Param{
			{Name: "a", Type: schema.Float(), Required: true},
			{Name: "b", Type: schema.Float(), Required: true},
		},
	}
	add.Fn = func(ctx context.Context, args map[string]any, mon monitor.Monitor) (any, error) {
		var in struct {
			A float64 `mapstructure:"a"`
			B float64 `mapstructure:"b"`
		}
		if err := add.DecodeArgs(args, &in); err != nil {
			return nil, err
		}
		return in.A + in.B, nil
	}

	scale := &Operation{
		Name:        "scale",
		Description: "Multiplies the input by a factor.",
		Params: []Param{
			{Name: "input", Type: schema.Float(), Required: true},
			{Name: "factor", Type: schema.Float(), Default: 1.0},
		},
	}
	scale.Fn = func(ctx context.Context, args map[string]any, mon monitor.Monitor) (any, error) {
		var in struct {
			Input  float64 `mapstructure:"input"`
			Factor float64 `mapstructure:"factor"`
		}
		if err := scale.DecodeArgs(args, &in); err != nil {
			return nil, err
		}
		return in.Input * in.Factor, nil
	}

	stats := &Operation{
		Name:        "stats",
		Description: "Computes min, max, mean and count of a numeric series.",
		Params: []Param{
			{Name: "series", Type: schema.Slice(schema.Float()), Required: true},
		},
	}
	stats.Fn = func(ctx context.Context, args map[string]any, mon monitor.Monitor) (any, error) {
		var in struct {
			Series []float64 `mapstructure:"series"`
		}
		if err := stats.DecodeArgs(args, &in); err != nil {
			return nil, err
		}
		if len(in.Series) == 0 {
			return nil, fmt.Errorf("stats: empty series")
		}
		min, max, sum := in.Series[0], in.Series[0], 0.0
		for _, v := range in.Series {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
			sum += v
		}
		return map[string]any{
			"min":   min,
			"max":   max,
			"mean":  sum / float64(len(in.Series)),
			"count": len(in.Series),
		}, nil
	}

	readJSON := &Operation{
		Name:        "read_json",
		Description: "Reads a JSON document from a file.",
		Params: []Param{
			{Name: "path", Type: schema.String(), Required: true},
		},
	}
	readJSON.Fn = func(ctx context.Context, args map[string]any, mon monitor.Monitor) (any, error) {
		var in struct {
			Path string `mapstructure:"path"`
		}
		if err := readJSON.DecodeArgs(args, &in); err != nil {
			return nil, err
		}
		mon.Start("read_json "+in.Path, 1)
		defer mon.Done()
		data, err := os.ReadFile(in.Path)
		if err != nil {
			return nil, fmt.Errorf("read_json: %w", err)
		}
		var value any
		if err := json.Unmarshal(data, &value); err != nil {
			return nil, fmt.Errorf("read_json %s: %w", in.Path, err)
		}
		return value, nil
	}

	return []*Operation{constant, identity, add, scale, stats, readJSON}
}
