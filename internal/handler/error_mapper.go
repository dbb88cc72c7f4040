package handler

import (
	"errors"
	"log/slog"

	"github.com/livejourney/api/internal/model"
	"github.com/livejourney/api/internal/service"
	"github.com/livejourney/api/internal/storage"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	switch {
	// ===== Authentication Errors → 401 =====
	case errors.Is(err, service.ErrInvalidCredentials):
		return model.NewUnauthorizedError("invalid email or password")

	// ===== Authorization Errors → 403 =====
	case errors.Is(err, service.ErrNotRecordOwner):
		return model.NewForbiddenError(err.Error())

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("user")
	case errors.Is(err, service.ErrActivityNotFound):
		return model.NewNotFoundError("activity")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrEmailAlreadyExists):
		return model.NewConflictError(err.Error())

	// ===== Validation Errors → 422 =====
	case errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrPasswordRequired),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrPasswordTooLong),
		errors.Is(err, service.ErrMissingUserID),
		errors.Is(err, service.ErrMissingLocation):
		return model.NewValidationError(err.Error())

	// ===== Storage Errors → 500 =====
	case errors.Is(err, storage.ErrConnection),
		errors.Is(err, storage.ErrQuery):
		slog.Error("storage error", "error", err)
		return model.NewInternalError("storage unavailable")

	// ===== Default → 500 =====
	default:
		slog.Error("unhandled service error", "error", err)
		return model.NewInternalError("")
	}
}
