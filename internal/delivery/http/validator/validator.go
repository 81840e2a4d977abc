// Package validator adapts go-playground/validator to echo's Validator
// interface so handlers can validate bound request DTOs by struct tags.
package validator

import (
	domainerrors "tsmarket/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

type echoValidator struct {
	validate *validator.Validate
}

// New creates the request validator used by the echo server.
func New() *echoValidator {
	return &echoValidator{validate: validator.New()}
}

// Validate checks the struct tags on the bound input and maps failures onto
// the application error model so the error handler renders them uniformly.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
