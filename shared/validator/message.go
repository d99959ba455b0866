package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

// messages maps validation tags to the human-readable form shown to the
// user. Unknown tags fall through to the library's own wording.
var messages = map[string]string{
	"required": "{field} is required",
	"min":      "{field} must be at least {param} characters",
	"max":      "{field} must be at most {param} characters",
	"oneof":    "{field} must be one of {param}",
	"email":    "{field} must be a valid email address",
	"phone":    "{field} must be a valid phone number",
	"datetime": "{field} must match the {param} format",
}

func message(err error) string {
	var valErrors val.ValidationErrors

	if !errors.As(err, &valErrors) {
		return err.Error()
	}

	for _, valErr := range valErrors {
		template := messages[valErr.Tag()]
		if template == "" {
			continue
		}

		template = strings.ReplaceAll(template, "{field}", valErr.Field())

		return strings.ReplaceAll(template, "{param}", valErr.Param())
	}

	return valErrors.Error()
}
