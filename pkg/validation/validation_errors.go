package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps JSON field names to user-facing labels.
var FieldLabels = map[string]string{
	"title":        "Title",
	"company":      "Company",
	"period":       "Period",
	"description":  "Description",
	"companyImage": "Company image",
	"icon":         "Icon",
}

// FormatValidationErrors converts validator.ValidationErrors into a map of
// field name to message. Other errors land under the "_" key.
func FormatValidationErrors(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return map[string]string{"_": err.Error()}
	}

	messages := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		if _, seen := messages[e.Field()]; seen {
			continue
		}
		messages[e.Field()] = formatSingleError(e)
	}
	return messages
}

func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at most %s", label, param)
	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at least %s", label, param)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", label)
	case "no_emoji":
		return fmt.Sprintf("%s must not contain emoji or symbols", label)
	case "symbolic_icon":
		return fmt.Sprintf("%s must be an icon name such as \"smartphone\"", label)
	default:
		return fmt.Sprintf("%s failed validation (%s)", label, e.Tag())
	}
}

func getFieldLabel(field string) string {
	if label, ok := FieldLabels[field]; ok {
		return label
	}
	return formatCamelCase(field)
}

// formatCamelCase turns "readTime" into "Read time".
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
			r += 'a' - 'A'
		} else if i == 0 && r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		result.WriteRune(r)
	}
	return result.String()
}
