package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/beaconhr/onboarding-system/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "username or email already in use"
	case errors.Is(err, domain.ErrPasswordPolicy):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInviteExists):
		return http.StatusConflict, "an active registration token already exists for this email"
	case errors.Is(err, domain.ErrInviteInvalid):
		return http.StatusUnauthorized, "registration token is invalid, expired or already used"
	case errors.Is(err, domain.ErrInviteNotFound):
		return http.StatusNotFound, "registration token not found"
	case errors.Is(err, domain.ErrEmployeeNotFound):
		return http.StatusNotFound, "employee not found"
	case errors.Is(err, domain.ErrApplicationLocked):
		return http.StatusConflict, "application cannot be submitted in its current state"
	case errors.Is(err, domain.ErrApplicationNotPending):
		return http.StatusConflict, "application is not pending review"
	case errors.Is(err, domain.ErrFeedbackRequired):
		return http.StatusBadRequest, "feedback is required when rejecting"
	case errors.Is(err, domain.ErrInvalidSection):
		return http.StatusBadRequest, "unknown personal information section"
	case errors.Is(err, domain.ErrInvalidPatch):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrSearchQueryRequired):
		return http.StatusBadRequest, "search query is required"
	case errors.Is(err, domain.ErrInvalidDocumentType):
		return http.StatusBadRequest, "unknown document type"
	case errors.Is(err, domain.ErrDocumentExists):
		return http.StatusConflict, "a document of this type already exists"
	case errors.Is(err, domain.ErrDocumentNotFound):
		return http.StatusNotFound, "document not found"
	case errors.Is(err, domain.ErrDocumentNotRejected):
		return http.StatusConflict, "only rejected documents can be re-uploaded"
	case errors.Is(err, domain.ErrDocumentNotPending):
		return http.StatusConflict, "document is not pending review"
	case errors.Is(err, domain.ErrFileRequired):
		return http.StatusBadRequest, "a file is required"
	case errors.Is(err, domain.ErrReminderThrottled):
		return http.StatusTooManyRequests, "a reminder was already sent recently"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
