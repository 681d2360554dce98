package validator

import (
	"fmt"

	"github.com/SAP-F-2025/elearning-service/internal/models"
)

// ValidateGrade checks marks awarded against the assignment's maximum
func (v *Validator) ValidateGrade(marks float64, assignment *models.Assignment) error {
	var errs ValidationErrors

	if marks < 0 {
		errs = append(errs, ValidationError{
			Field:   "marks",
			Message: "must not be negative",
			Value:   marks,
			Rule:    "business_logic",
		})
	}

	if assignment != nil && marks > assignment.Marks {
		errs = append(errs, ValidationError{
			Field:   "marks",
			Message: fmt.Sprintf("must not exceed the assignment maximum of %.2f", assignment.Marks),
			Value:   marks,
			Rule:    "business_logic",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidatePassword enforces the account password length
func (v *Validator) ValidatePassword(password string) error {
	if len(password) < 8 {
		return ValidationErrors{{
			Field:   "password",
			Message: "must be at least 8 characters",
			Rule:    "business_logic",
		}}
	}
	// bcrypt ignores everything past 72 bytes
	if len(password) > 72 {
		return ValidationErrors{{
			Field:   "password",
			Message: "must be at most 72 bytes",
			Rule:    "business_logic",
		}}
	}
	return nil
}
