package task

import (
	"fmt"

	"github.com/rpggio/academe/internal/domain/apperr"
)

var (
	// ErrTaskNotFound indicates the task doesn't exist.
	ErrTaskNotFound = fmt.Errorf("task %w", apperr.ErrNotFound)
	// ErrInvalidDueDate indicates a due date that is neither YYYY-MM-DD nor RFC 3339.
	ErrInvalidDueDate = fmt.Errorf("%w: due_date must be YYYY-MM-DD or RFC 3339", apperr.ErrInvalidInput)
)
