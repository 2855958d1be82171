package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/masq-social/masq-service/internal/models"
)

// ValidationError represents a single field violation
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,24}$`)

// Validator wraps struct validation plus the registration rules that go
// beyond per-field tags
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with all custom rules registered
func New() *Validator {
	validate := validator.New()

	v := &Validator{validate: validate}
	v.registerRules()

	return v
}

// Validate validates any tagged struct
func (v *Validator) Validate(s interface{}) ValidationErrors {
	err := v.validate.Struct(s)
	if err != nil {
		return v.toValidationErrors(err)
	}
	return nil
}

// ValidateRegister validates a registration request, including the rules a
// tag cannot express
func (v *Validator) ValidateRegister(req *models.RegisterRequest) ValidationErrors {
	errors := v.Validate(req)

	// An alias equal to the real name would give the identity away.
	if req.FakeName != "" && strings.EqualFold(strings.TrimSpace(req.FakeName), strings.TrimSpace(req.RealName)) {
		errors = append(errors, ValidationError{
			Field:   "fake_name",
			Message: "must differ from the real name",
			Value:   req.FakeName,
			Rule:    "business_logic",
		})
	}

	return errors
}

// registerRules registers custom rule validators
func (v *Validator) registerRules() {
	// Login handle: 3-24 characters of letters, digits or underscore
	v.validate.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})

	// Rejects whitespace-only strings that pass required/min
	v.validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// toValidationErrors converts go-playground violations into the API shape
func (v *Validator) toValidationErrors(err error) ValidationErrors {
	var errors ValidationErrors

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationErrors{{Field: "request", Message: "is invalid", Rule: "struct"}}
	}

	for _, fe := range fieldErrors {
		errors = append(errors, ValidationError{
			Field:   snakeCase(fe.Field()),
			Message: errorMessage(fe),
			Value:   fe.Value(),
			Rule:    fe.Tag(),
		})
	}
	return errors
}

// errorMessage renders a human message per rule tag
func errorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "username":
		return "must be 3-24 characters of letters, digits or underscore"
	case "notblank":
		return "cannot be blank"
	default:
		return "is invalid"
	}
}

// snakeCase converts exported field names to their wire spelling; runs of
// capitals like "ID" stay one word.
func snakeCase(field string) string {
	runes := []rune(field)
	var b strings.Builder
	for i, r := range runes {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && (runes[i-1] < 'A' || runes[i-1] > 'Z') {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
