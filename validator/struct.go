package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var (
	mobilePattern = regexp.MustCompile(`^\d{10}$`)
	emailPattern  = regexp.MustCompile(`\S+@\S+\.\S+`)
)

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(jsonName)
	mustRegister("mobile", func(fl validator.FieldLevel) bool {
		return mobilePattern.MatchString(fl.Field().String())
	})
	mustRegister("loose_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	mustRegister("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validator: register %s: %v", tag, err))
	}
}

func jsonName(field reflect.StructField) string {
	name := strings.Split(field.Tag.Get("json"), ",")[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

// errorMessages maps validation tags to default messages.
var errorMessages = map[string]string{
	"required":    "The field '%s' is required.",
	"notblank":    "The field '%s' is required.",
	"mobile":      "The field '%s' must be exactly 10 digits.",
	"loose_email": "The field '%s' must be a valid email address.",
	"min":         "The field '%s' must be at least %s characters long.",
	"max":         "The field '%s' must be no longer than %s characters.",
	"eqfield":     "The field '%s' must match '%s'.",
	"oneof":       "The field '%s' must be one of %s.",
}

// Messenger lets a form override messages per field and tag. Keys are
// "<json field>.<tag>", e.g. "mobile.mobile".
type Messenger interface {
	ValidationMessages() map[string]string
}

// parseMessage constructs a friendly error message based on the validation tag and custom messages.
func parseMessage(field string, e validator.FieldError, custom map[string]string) string {
	if msg, ok := custom[field+"."+e.Tag()]; ok {
		return msg
	}
	if msg, ok := errorMessages[e.Tag()]; ok {
		if strings.Count(msg, "%s") == 2 {
			return fmt.Sprintf(msg, field, e.Param())
		}
		return fmt.Sprintf(msg, field)
	}
	return fmt.Sprintf("Field '%s' is invalid: %s", field, e.Tag())
}

// ValidateStruct validates a struct and returns a map of JSON field names to
// friendly error messages. An empty map means the struct is valid.
func ValidateStruct(s any) map[string]string {
	validationErrors := make(map[string]string)

	var custom map[string]string
	if m, ok := s.(Messenger); ok {
		custom = m.ValidationMessages()
	}

	var validationErrs validator.ValidationErrors
	if err := validate.Struct(s); errors.As(err, &validationErrs) {
		for _, e := range validationErrs {
			field := e.Field()
			if _, seen := validationErrors[field]; seen {
				continue
			}
			validationErrors[field] = parseMessage(field, e, custom)
		}
	}

	return validationErrors
}

// Struct validates s and returns the first failure as an error, for schema checks
// where field messages are not shown to anyone.
func Struct(s any) error {
	if err := validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			e := validationErrs[0]
			return fmt.Errorf("%s: failed %q", e.Namespace(), e.Tag())
		}
		return err
	}
	return nil
}

// Var validates a single value against a tag expression.
func Var(value any, tag string) error {
	return validate.Var(value, tag)
}
