// Package schema provides the type system used to validate operation
// parameter values.
//
// An operation declares one Type per parameter. Literal values supplied when a
// resource is set are validated against these types; values that flow in from
// other steps are only validated at execution time, once they are concrete.
//
// Basic usage:
//
//	params := schema.Schema{
//	    "input":  schema.Float(),
//	    "factor": schema.Float(),
//	    "labels": schema.Slice(schema.String()),
//	}
//
//	if err := schema.Validate(params, values); err != nil {
//	    // one ValidationError per offending parameter
//	}
//
// Types can also be parsed from their string names ("float", "[string]",
// "any"), which is how a serialized operation descriptor is reconstructed.
package schema
