// Package validation checks request payloads at the HTTP boundary. The
// ledger itself never validates receiver format; everything user-facing is
// decided here before a transition is dispatched.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// phonePattern matches a 10-digit number with an optional leading zero or
// +country-code prefix, the same shape the QR codec accepts.
var phonePattern = regexp.MustCompile(`^(\+\d{1,3}|0)?\d{10}$`)

// Validator wraps go-playground/validator with the wallet's custom rules.
type Validator struct {
	validate *validator.Validate
}

// New builds a validator with the "phone" rule registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return &Validator{validate: v}
}

// Struct validates s and returns a user-facing message for the first
// failing field, or nil.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return errors.New(messageFor(fieldErrs[0]))
	}
	return err
}

// Phone reports whether raw is an acceptable phone number.
func Phone(raw string) bool {
	return phonePattern.MatchString(strings.TrimSpace(raw))
}

func messageFor(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "phone":
		return "enter a valid phone number"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
