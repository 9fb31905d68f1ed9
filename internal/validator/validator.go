package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator is a wrapper around the validator library.
type Validator struct {
	validate *validator.Validate
}

// New creates a new Validator instance. Field errors are reported by their
// JSON names.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// ValidateStruct validates a struct based on its tags.
func (v *Validator) ValidateStruct(s interface{}) error {
	err := v.validate.Struct(s)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// InvalidFields returns the JSON names of the fields that failed in err, in
// the order the validator reported them. It returns nil when err carries no
// field errors.
func InvalidFields(err error) []string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil
	}
	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field())
	}
	return fields
}

// Blank reports whether value is empty once surrounding whitespace is removed.
func (v *Validator) Blank(value string) bool {
	return v.validate.Var(strings.TrimSpace(value), "required") != nil
}

// IsURL reports whether value is an absolute URL.
func (v *Validator) IsURL(value string) bool {
	return v.validate.Var(value, "url") == nil
}
