package actions

import (
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldErrors runs the struct tags and returns messages keyed by JSON field.
// Nested fields keep their path, e.g. items[1].listId.
func fieldErrors(in any) map[string]string {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	errs, isValidation := err.(validator.ValidationErrors)
	if !isValidation {
		return map[string]string{"_": err.Error()}
	}
	out := make(map[string]string, len(errs))
	for _, fe := range errs {
		key := fe.Namespace()
		if i := strings.IndexByte(key, '.'); i >= 0 {
			key = key[i+1:]
		}
		if _, seen := out[key]; !seen {
			out[key] = message(fe)
		}
	}
	return out
}

func message(fe validator.FieldError) string {
	label := humanize(fe.Field())
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return label + " must not be empty"
		}
		return label + " is too short"
	case "uuid":
		return label + " is not a valid id"
	case "gte":
		return label + " must not be negative"
	default:
		return label + " is invalid"
	}
}

// humanize turns boardId into "Board id" and title into "Title".
func humanize(field string) string {
	var b strings.Builder
	for i, r := range field {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteByte(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
