package dto

import (
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"

	apperrors "github.com/spec-kit/store-rating-service/pkg/util"
)

// Field rules shared across requests. Names are deliberately long-form
// (20-60 chars) per product requirement; addresses cap at 400.
var (
	nameRule    = validation.Length(20, 60)
	addressRule = validation.Length(0, 400)

	passwordUppercase = regexp.MustCompile(`[A-Z]`)
	passwordSpecial   = regexp.MustCompile(`[^A-Za-z0-9]`)
)

func passwordRules() []validation.Rule {
	return []validation.Rule{
		validation.Required,
		validation.Length(8, 16),
		validation.Match(passwordUppercase).Error("must contain an uppercase letter"),
		validation.Match(passwordSpecial).Error("must contain a special character"),
	}
}

// wrapValidation converts ozzo's field-error map into the service's
// structured validation error.
func wrapValidation(err error) error {
	if err == nil {
		return nil
	}
	details := map[string]any{}
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		for field, fieldErr := range fieldErrs {
			details[field] = fieldErr.Error()
		}
	}
	return apperrors.NewValidationError("invalid request payload", details)
}
