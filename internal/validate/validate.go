// Package validate wraps go-playground/validator and translates field
// errors into the human-readable messages the API contract promises,
// e.g. `"name" is required` or `"name" length must be at least 2
// characters long`. Field names come from json tags so messages match
// the wire format.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"pokedex-service/internal/apperror"

	"github.com/go-playground/validator/v10"
)

// IDTag validates the canonical 24-hex-character identifier format.
const IDTag = "required,len=24,hexadecimal"

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()
	val.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return val
}

// Struct validates s and returns a validation error for the first
// failing field, or nil. No side effects occur on failure; callers run
// this before any store access.
func Struct(s interface{}) error {
	return translate(v.Struct(s), "")
}

// Field validates a single value against tag, reporting failures under
// the given field name.
func Field(name, tag string, value interface{}) error {
	return translate(v.Var(value, tag), name)
}

// ID validates a single identifier value (24 hex characters).
func ID(name, value string) error {
	return Field(name, IDTag, value)
}

func translate(err error, fieldName string) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		name := fieldName
		if name == "" {
			name = fe.Field()
		}
		return apperror.Validation(name, message(name, fe.Tag(), fe.Param()))
	}
	return apperror.Validation(fieldName, err.Error())
}

func message(field, tag, param string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("%q is required", field)
	case "min":
		return fmt.Sprintf("%q length must be at least %s characters long", field, param)
	case "max":
		return fmt.Sprintf("%q length must be less than or equal to %s characters long", field, param)
	case "alphanum":
		return fmt.Sprintf("%q must only contain alpha-numeric characters", field)
	case "email":
		return fmt.Sprintf("%q must be a valid email", field)
	case "len", "hexadecimal":
		return fmt.Sprintf("%q must be a valid id", field)
	default:
		return fmt.Sprintf("%q is invalid", field)
	}
}
