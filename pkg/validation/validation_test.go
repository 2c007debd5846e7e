package validation_test

import (
	"errors"
	"strings"
	"testing"

	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExperienceValidation(t *testing.T) {
	v := validation.New()

	t.Run("valid", func(t *testing.T) {
		exp := domain.Experience{
			Title:        "Senior Engineer",
			Company:      "Acme",
			Period:       "2021 - Present",
			CompanyImage: "https://cdn.example.com/acme.png",
		}
		assert.NoError(t, v.Struct(exp))
	})

	t.Run("missing required fields", func(t *testing.T) {
		err := v.Struct(domain.Experience{})
		require.Error(t, err)
		msgs := validation.FormatValidationErrors(err)
		assert.Equal(t, "Title is required", msgs["title"])
		assert.Equal(t, "Company is required", msgs["company"])
		assert.Equal(t, "Period is required", msgs["period"])
	})

	t.Run("bad image and emoji title", func(t *testing.T) {
		err := v.Struct(domain.Experience{
			Title:        "Engineer 🚀",
			Company:      "Acme",
			Period:       "2020",
			CompanyImage: "not a url",
		})
		require.Error(t, err)
		msgs := validation.FormatValidationErrors(err)
		assert.Equal(t, "Title must not contain emoji or symbols", msgs["title"])
		assert.Equal(t, "Company image must be a valid URL", msgs["companyImage"])
	})

	t.Run("too long", func(t *testing.T) {
		err := v.Struct(domain.Experience{Title: strings.Repeat("a", 201), Company: "Acme", Period: "2020"})
		require.Error(t, err)
		assert.Equal(t, "Title must be at most 200 characters", validation.FormatValidationErrors(err)["title"])
	})
}

func TestSymbolicIcon(t *testing.T) {
	v := validation.New()
	for _, icon := range []string{"", "smartphone", "code-2", "cloud"} {
		assert.NoError(t, v.Struct(domain.Skill{Title: "x", Icon: icon}), icon)
	}
	for _, icon := range []string{"📱", "Smartphone", "code 2", "-cloud"} {
		err := v.Struct(domain.Skill{Title: "x", Icon: icon})
		require.Error(t, err, icon)
		assert.Contains(t, validation.FormatValidationErrors(err)["icon"], "icon name")
	}
}

func TestFormatNonValidationError(t *testing.T) {
	msgs := validation.FormatValidationErrors(errors.New("boom"))
	assert.Equal(t, map[string]string{"_": "boom"}, msgs)
}
