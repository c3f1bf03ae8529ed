package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/academe/internal/domain/apperr"
	"github.com/rpggio/academe/internal/validate"
)

// Error codes returned to clients.
const (
	CodeNotFound         = "NOT_FOUND"
	CodeInvalidOperation = "INVALID_OPERATION"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeForbidden        = "FORBIDDEN"
)

// ErrUnknownMethod is returned for a method name the handler doesn't serve.
var ErrUnknownMethod = errors.New("unknown method")

// APIError represents an MCP error response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to client error codes. It returns nil for
// errors outside the taxonomy.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var code string
	switch apperr.Kind(err) {
	case apperr.ErrNotFound:
		code = CodeNotFound
	case apperr.ErrInvalidOperation:
		code = CodeInvalidOperation
	case apperr.ErrInvalidInput:
		code = CodeInvalidInput
	case apperr.ErrForbidden:
		code = CodeForbidden
	default:
		return nil
	}

	out := &APIError{Code: code, Message: err.Error()}
	var fields validate.FieldErrors
	if errors.As(err, &fields) {
		out.Details = map[string]string(fields)
	}
	return out
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}

func forbidden(action string) error {
	return fmt.Errorf("%w: role may not %s", apperr.ErrForbidden, action)
}
