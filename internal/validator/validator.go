package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/SAP-F-2025/elearning-service/internal/models"
)

// ValidationError represents a single field failure
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

// Validator wraps go-playground validator with the domain rules registered
type Validator struct {
	validate *validator.Validate
}

// New creates a validator reporting json field names
func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	v := &Validator{validate: validate}
	v.registerDomainRules()
	return v
}

// Validate checks struct tags. It returns nil or ValidationErrors.
func (v *Validator) Validate(s interface{}) error {
	if errs := ToValidationErrors(v.validate.Struct(s)); len(errs) > 0 {
		return errs
	}
	return nil
}

func (v *Validator) registerDomainRules() {
	// Membership tier codes b, s, g
	v.validate.RegisterValidation("membership_level", func(fl validator.FieldLevel) bool {
		return models.MembershipLevel(fl.Field().String()).IsValid()
	})

	// Account type codes ST, FA
	v.validate.RegisterValidation("user_type", func(fl validator.FieldLevel) bool {
		return models.UserType(fl.Field().String()).IsValid()
	})
}

// ToValidationErrors converts go-playground errors; other errors become a
// single entry
func ToValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ValidationErrors{{Field: "", Message: err.Error(), Rule: "invalid"}}
	}

	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Message: getErrorMessage(fe),
			Value:   fe.Value(),
			Rule:    fe.Tag(),
		})
	}
	return out
}

func getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "email":
		return "must be a valid email address"
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lt":
		return fmt.Sprintf("must be less than %s", fe.Param())
	case "membership_level":
		return "must be one of b, s, g"
	case "user_type":
		return "must be one of ST, FA"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
