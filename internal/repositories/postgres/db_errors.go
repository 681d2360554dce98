package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/elearning-service/internal/repositories"
)

// PostgreSQL SQLSTATE codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// handleDBError is a package-level helper for handling database errors. It
// maps driver errors onto the repository error kinds.
func handleDBError(err error, operation string) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s failed: %w", operation, repositories.ErrRecordNotFound)
	case isDuplicateKey(err):
		return fmt.Errorf("%s failed: %w: %w", operation, repositories.ErrDuplicateKey, err)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%s failed: %w: %w", operation, repositories.ErrForeignKeyViolation, err)
	}

	return fmt.Errorf("%s failed: %w", operation, err)
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	// SQLite reports constraint failures only through the message
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
