// Package validation checks struct fields with go-playground/validator/v10 and
// reports failures as coded domain errors.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	domainerrors "github.com/listenupapp/beatmap-server/internal/errors"
)

// Validator wraps go-playground/validator with domain error conversion.
// It is safe for concurrent use.
type Validator struct {
	v *validator.Validate
}

// New creates a validator that names fields by their JSON tag.
func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return &Validator{v: v}
}

// Validate validates request input and returns a VALIDATION error on failure.
func (v *Validator) Validate(s any) error {
	return v.check(s, domainerrors.CodeValidation, "validation failed")
}

// ValidatePayload validates a decoded wire payload and returns a
// MALFORMED_PAYLOAD error on failure.
func (v *Validator) ValidatePayload(s any) error {
	return v.check(s, domainerrors.CodeMalformedPayload, "malformed payload")
}

func (v *Validator) check(s any, code domainerrors.Code, msg string) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fieldErrors := make(map[string]string, len(validationErrs))
	for _, e := range validationErrs {
		fieldErrors[e.Field()] = friendlyMessage(e)
	}

	fields := make([]string, 0, len(fieldErrors))
	for f := range fieldErrors {
		fields = append(fields, f)
	}
	slices.Sort(fields)

	return &domainerrors.Error{
		Code:    code,
		Message: fmt.Sprintf("%s: %s", msg, strings.Join(fields, ", ")),
		Details: fieldErrors,
	}
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + e.Param()
	case "max":
		return "must not exceed " + e.Param()
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "gt":
		return "must be greater than " + e.Param()
	default:
		return "is invalid"
	}
}
