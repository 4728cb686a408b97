package dto

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mtlprog/taskboard/internal/domain"
)

// ErrorResponse is the failure envelope.
type ErrorResponse struct {
	Status  bool   `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewErrorResponse creates a new error response.
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Status:  false,
		Code:    code,
		Message: message,
	}
}

// MapDomainError maps domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code string, message string) {
	message = err.Error()

	// Specific errors first
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, "TASK_NOT_FOUND", message
	case errors.Is(err, domain.ErrTaskExists):
		return http.StatusConflict, "TASK_EXISTS", message
	case errors.Is(err, domain.ErrUserInactive):
		return http.StatusUnauthorized, "USER_INACTIVE", domain.ErrUserInactive.Message
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "INVALID_TOKEN", domain.ErrInvalidToken.Message
	case errors.Is(err, domain.ErrInvalidJSON):
		return http.StatusBadRequest, "INVALID_JSON", message
	}

	kind, ok := domain.KindOf(err)
	if !ok {
		// Log unmapped error for debugging
		slog.Error("unmapped domain error returned to client",
			"error", err,
			"error_type", fmt.Sprintf("%T", err),
		)
		return http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"
	}

	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest, "VALIDATION_ERROR", message
	case domain.KindNotFound:
		return http.StatusNotFound, "NOT_FOUND", message
	case domain.KindConflict:
		return http.StatusConflict, "CONFLICT", message
	case domain.KindUnauthorized:
		return http.StatusUnauthorized, "UNAUTHORIZED", message
	default:
		slog.Error("unknown domain error kind", "error", err, "kind", kind)
		return http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"
	}
}
