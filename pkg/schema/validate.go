package schema

// Schema is a map of parameter names to their expected types.
// Example: {"path": String(), "factor": Float()}
type Schema map[string]Type

// Validate checks that every field declared in the schema is present in data
// and conforms to its type. Returns an error aggregating all failures.
func Validate(schema Schema, data map[string]any) error {
	if len(schema) == 0 {
		return nil
	}

	var errs []error

	for fieldName, fieldType := range schema {
		value, exists := data[fieldName]
		if !exists {
			errs = append(errs, &ValidationError{
				Key:    fieldName,
				Reason: "required",
				Value:  nil,
			})
			continue
		}

		if err := fieldType.Validate(value); err != nil {
			errs = append(errs, &ValidationError{
				Key:    fieldName,
				Reason: err.Error(),
				Value:  value,
			})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}

	return nil
}

// ValidatePartial validates only the fields present in data against the
// schema. Fields the schema does not declare and schema fields absent from
// data are ignored. This is the set-time check: values wired in from other
// steps are excluded by the caller and checked at execution time instead.
func ValidatePartial(schema Schema, data map[string]any) error {
	if len(schema) == 0 || len(data) == 0 {
		return nil
	}

	var errs []error

	for fieldName, value := range data {
		fieldType, declared := schema[fieldName]
		if !declared {
			continue
		}
		if err := fieldType.Validate(value); err != nil {
			errs = append(errs, &ValidationError{
				Key:    fieldName,
				Reason: err.Error(),
				Value:  value,
			})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}

	return nil
}
