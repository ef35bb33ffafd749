// Package validation checks decoded upstream payloads against their struct tag schemas.
package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrSchemaMismatch is returned when a payload does not satisfy its schema.
var ErrSchemaMismatch = errors.New("payload schema mismatch")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct validates v (a struct or pointer to struct) using its `validate` tags.
func Struct(v any) error {
	if err := validate.Struct(v); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("%w: %s failed on %q (%d violations)", ErrSchemaMismatch, fe.Namespace(), fe.Tag(), len(fieldErrs))
		}
		return fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	return nil
}
