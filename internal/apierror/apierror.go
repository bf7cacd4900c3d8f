// Package apierror maps domain errors to the error body HTTP handlers and
// MCP tools return.
package apierror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rpggio/caredesk/internal/domain/collection"
	"github.com/rpggio/caredesk/internal/domain/rate"
	"github.com/rpggio/caredesk/internal/domain/status"
	"github.com/rpggio/caredesk/internal/listview"
	"github.com/rpggio/caredesk/internal/validation"
)

// ErrBadRequest indicates a request body or parameter that could not be decoded.
var ErrBadRequest = errors.New("bad request")

// Error is the error body returned to API clients.
type Error struct {
	Status       int               `json:"-"`
	Code         string            `json:"code"`
	Message      string            `json:"message"`
	Fields       map[string]string `json:"fields,omitempty"`
	RecoveryHint string            `json:"recovery_hint,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Map maps err to its API error. Unknown errors map to an internal error
// that does not leak err's text.
func Map(err error) *Error {
	if err == nil {
		return nil
	}

	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		return &Error{
			Status:       http.StatusUnprocessableEntity,
			Code:         "VALIDATION_FAILED",
			Message:      "validation failed",
			Fields:       verr.Fields,
			RecoveryHint: "Correct the listed fields",
		}
	case errors.Is(err, collection.ErrNotFound), errors.Is(err, status.ErrNotFound):
		return &Error{Status: http.StatusNotFound, Code: "NOT_FOUND", Message: "record not found", RecoveryHint: "Check ID spelling"}
	case errors.Is(err, collection.ErrInvalidAction):
		return &Error{Status: http.StatusBadRequest, Code: "INVALID_ACTION", Message: err.Error(), RecoveryHint: "Use Add or Edit"}
	case errors.Is(err, listview.ErrInvalidPageSize),
		errors.Is(err, listview.ErrInvalidPageIndex),
		errors.Is(err, listview.ErrInvalidDirection):
		return &Error{Status: http.StatusBadRequest, Code: "INVALID_QUERY", Message: err.Error(), RecoveryHint: "rowsPerPage is one of 5, 10, 25"}
	case errors.Is(err, ErrBadRequest):
		return &Error{Status: http.StatusBadRequest, Code: "BAD_REQUEST", Message: err.Error()}
	case errors.Is(err, status.ErrInvalidTransition):
		return &Error{Status: http.StatusConflict, Code: "INVALID_TRANSITION", Message: "invalid status transition", RecoveryHint: "Record is already deleted"}
	case errors.Is(err, rate.ErrNotConfigured):
		return &Error{Status: http.StatusConflict, Code: "RATES_NOT_CONFIGURED", Message: "rates not configured", RecoveryHint: "Set rates first"}
	case errors.Is(err, collection.ErrNotSupported):
		return &Error{Status: http.StatusMethodNotAllowed, Code: "NOT_SUPPORTED", Message: err.Error()}
	case errors.Is(err, collection.ErrPersistence):
		return &Error{Status: http.StatusServiceUnavailable, Code: "PERSISTENCE_FAILED", Message: "could not reach the document store", RecoveryHint: "Retry"}
	default:
		return &Error{Status: http.StatusInternalServerError, Code: "INTERNAL", Message: "internal error"}
	}
}
