package project

import (
	"fmt"

	"github.com/rpggio/academe/internal/domain/apperr"
)

var (
	// ErrProjectNotFound indicates the project doesn't exist.
	ErrProjectNotFound = fmt.Errorf("project %w", apperr.ErrNotFound)
)
