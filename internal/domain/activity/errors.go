package activity

import (
	"fmt"

	"github.com/rpggio/academe/internal/domain/apperr"
)

// ErrInvalidInput indicates a nil or incomplete activity entry.
var ErrInvalidInput = fmt.Errorf("activity: %w", apperr.ErrInvalidInput)
