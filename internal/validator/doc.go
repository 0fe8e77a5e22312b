// Package validator validates decoded request bodies.
//
// It wraps go-playground/validator and reports failures by JSON field name:
//
//	if err := validator.Validate(&input); err != nil {
//	    // err is a validator.ValidationErrors
//	}
//
// The validator instance is package-level and safe for concurrent use.
package validator
