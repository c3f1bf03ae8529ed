package student

import (
	"fmt"

	"github.com/rpggio/academe/internal/domain/apperr"
)

// ErrStudentNotFound indicates the student doesn't exist.
var ErrStudentNotFound = fmt.Errorf("student %w", apperr.ErrNotFound)
