package service

import (
	"errors"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return lowerCamel(field.Name)
		}
		return name
	})
	return v
}

// checkInput runs the struct's validate tags. Failures become a
// ValidationError carrying message plus one detail per offending field.
func checkInput(input interface{}, message string) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return invalid(message)
	}

	details := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		field := fieldError.Field()
		switch fieldError.Tag() {
		case "required":
			details = append(details, field+" is required")
		case "min":
			unit := " item(s)"
			if fieldError.Kind() == reflect.String {
				unit = " characters"
			}
			details = append(details, field+" must have at least "+fieldError.Param()+unit)
		case "oneof":
			details = append(details, field+" must be one of: "+fieldError.Param())
		default:
			details = append(details, field+" is invalid")
		}
	}
	return invalid(message, details...)
}

func requireID(raw, message string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", invalid(message, "id is required")
	}
	return id, nil
}

func lowerCamel(value string) string {
	if value == "" {
		return value
	}
	runes := []rune(value)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

func trimPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	return &trimmed
}
