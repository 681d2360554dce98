package services

import (
	"errors"
	"fmt"

	"github.com/SAP-F-2025/elearning-service/internal/repositories"
	"github.com/SAP-F-2025/elearning-service/internal/validator"
)

// Error kinds returned by every service. Match them with errors.Is; the
// typed errors below carry the details.
var (
	ErrConstraintViolation = errors.New("constraint violation")
	ErrNotFound            = errors.New("not found")
	ErrStorageFailure      = errors.New("storage failure")
	ErrInvalidCredentials  = errors.New("invalid credentials")
)

// Constraint names
const (
	ConstraintValidation = "validation"
	ConstraintUnique     = "unique"
	ConstraintForeignKey = "foreign_key"
)

// ConstraintViolationError reports a write rejected by a schema or
// validation rule
type ConstraintViolationError struct {
	Entity     string
	Constraint string
	Err        error
}

func NewConstraintViolationError(entity, constraint string, err error) *ConstraintViolationError {
	return &ConstraintViolationError{Entity: entity, Constraint: constraint, Err: err}
}

func (e *ConstraintViolationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s constraint violated", e.Entity, e.Constraint)
	}
	return fmt.Sprintf("%s: %s constraint violated: %v", e.Entity, e.Constraint, e.Err)
}

func (e *ConstraintViolationError) Is(target error) bool {
	return target == ErrConstraintViolation
}

func (e *ConstraintViolationError) Unwrap() error {
	return e.Err
}

// NotFoundError reports a missing record, including a missing parent
// referenced by a write
type NotFoundError struct {
	Entity string
	ID     interface{}
}

func NewNotFoundError(entity string, id interface{}) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func (e *NotFoundError) Unwrap() error {
	return repositories.ErrRecordNotFound
}

// StorageFailureError reports a file store operation that failed. A delete
// that fails this way rolls back the database change.
type StorageFailureError struct {
	Path string
	Op   string
	Err  error
}

func NewStorageFailureError(path, op string, err error) *StorageFailureError {
	return &StorageFailureError{Path: path, Op: op, Err: err}
}

func (e *StorageFailureError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Path, e.Err)
}

func (e *StorageFailureError) Is(target error) bool {
	return target == ErrStorageFailure
}

func (e *StorageFailureError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err came from field validation
func IsValidationError(err error) bool {
	var cv *ConstraintViolationError
	return errors.As(err, &cv) && cv.Constraint == ConstraintValidation
}

func newValidationFailure(entity string, err error) error {
	if err == nil {
		return nil
	}
	return NewConstraintViolationError(entity, ConstraintValidation, err)
}

// translateRepoError maps repository error kinds onto service errors.
// Errors that already carry a service kind pass through.
func translateRepoError(err error, entity string, id interface{}) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrConstraintViolation),
		errors.Is(err, ErrStorageFailure),
		errors.Is(err, ErrInvalidCredentials):
		return err
	case repositories.IsNotFoundError(err):
		return NewNotFoundError(entity, id)
	case repositories.IsDuplicateKeyError(err):
		return NewConstraintViolationError(entity, ConstraintUnique, err)
	case repositories.IsForeignKeyError(err):
		return NewConstraintViolationError(entity, ConstraintForeignKey, err)
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return newValidationFailure(entity, err)
	}

	return err
}
