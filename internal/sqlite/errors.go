package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/rpggio/academe/internal/repository"
)

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// insertErr maps a failed INSERT of a primary row.
func insertErr(err error, what string) error {
	if isUniqueViolation(err) {
		return repository.ErrConflict
	}
	return fmt.Errorf("failed to create %s: %w", what, err)
}

// affected turns a zero row count into repository.ErrNotFound.
func affected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
