package repositories

import "errors"

// Repository error kinds. Implementations wrap driver errors so callers can
// match them with errors.Is.
var (
	ErrRecordNotFound      = errors.New("record not found")
	ErrDuplicateKey        = errors.New("duplicate key")
	ErrForeignKeyViolation = errors.New("foreign key violation")
)

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrRecordNotFound)
}

func IsDuplicateKeyError(err error) bool {
	return errors.Is(err, ErrDuplicateKey)
}

func IsForeignKeyError(err error) bool {
	return errors.Is(err, ErrForeignKeyViolation)
}
