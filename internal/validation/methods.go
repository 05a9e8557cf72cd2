// Package validation collects field-level request validation into an
// errors map that handlers can return verbatim in a 400 body.
package validation

import "fmt"

// Validator defines validation methods
type Validator struct {
	Errors map[string]string
}

// New creates a new validator
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid checks if there are any validation errors
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError adds an error to the validator
func (v *Validator) AddError(field, message string) {
	v.Errors[field] = message
}

// Check adds an error if the condition is false
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// Positive checks that a number is strictly greater than zero
func (v *Validator) Positive(field string, value float64) {
	v.Check(value > 0, field, "must be greater than zero")
}

// Max checks that a number does not exceed a limit
func (v *Validator) Max(field string, value, limit float64) {
	v.Check(value <= limit, field, fmt.Sprintf("must not be more than %v", limit))
}
