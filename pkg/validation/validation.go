package validation

import (
	"errors"
	"fmt"
	"routekit/pkg/shared"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	TagRoutePath   = "route_path"
	TagPlainObject = "plain_object"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	messages := make([]string, 0, len(v))
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// New returns a validator with the routekit tags registered.
func New() (*validator.Validate, error) {
	v := validator.New(validator.WithRequiredStructEnabled())

	if err := v.RegisterValidation(TagRoutePath, validateRoutePath); err != nil {
		return nil, fmt.Errorf("register %q: %w", TagRoutePath, err)
	}
	if err := v.RegisterValidation(TagPlainObject, validatePlainObject); err != nil {
		return nil, fmt.Errorf("register %q: %w", TagPlainObject, err)
	}
	return v, nil
}

// validateRoutePath accepts strings already in canonical form.
func validateRoutePath(fl validator.FieldLevel) bool {
	v := fl.Field().Interface()
	if !shared.IsString(v) {
		return false
	}
	s := fl.Field().String()
	return shared.ValidatePath(s) == s
}

func validatePlainObject(fl validator.FieldLevel) bool {
	return shared.IsPlainObject(fl.Field().Interface())
}

// Struct validates s and translates failures into ValidationErrors.
func Struct(v *validator.Validate, s any) error {
	if err := v.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return Translate(validationErrs)
		}
		return err
	}
	return nil
}

func Translate(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min", "gte":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max", "lte":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "oneof":
			message = fmt.Sprintf("%s must be one of [%s]", err.Field(), err.Param())
		case TagRoutePath:
			message = fmt.Sprintf("%s must be a canonical route path (got %q, expected %q)",
				err.Field(), fmt.Sprint(err.Value()), shared.ValidatePath(fmt.Sprint(err.Value())))
		case TagPlainObject:
			message = fmt.Sprintf("%s must be a plain object", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
