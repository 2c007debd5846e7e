package validation

import (
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Icon names are lowercase identifiers like "smartphone" or "code-2".
var iconRegex = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)

// New returns a validator with the custom rules registered and field errors
// reported under their JSON (or YAML) names.
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	v.RegisterTagNameFunc(fieldName)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("no_emoji", NoEmoji)
	_ = v.RegisterValidation("symbolic_icon", SymbolicIcon)
}

func fieldName(f reflect.StructField) string {
	for _, key := range []string{"json", "yaml"} {
		name := strings.SplitN(f.Tag.Get(key), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

// NoEmoji validates that a string does not contain emoji characters
func NoEmoji(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		// Supplementary planes hold most emoji.
		if r > 0x1F000 {
			return false
		}
		if unicode.In(r, unicode.So, unicode.Sk) {
			return false
		}
	}
	return true
}

// SymbolicIcon accepts icon identifiers the frontend maps to an icon
// component. Emoji and free text are rejected.
func SymbolicIcon(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return iconRegex.MatchString(val)
}
