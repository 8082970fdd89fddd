package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/csuniv/election-system/internal/core/domain"
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

	// Known domain errors → deterministic HTTP codes. The delivery-failure
	// detail stays in the log; the client sees a generic retryable message.
	switch {
	case errors.Is(err, domain.ErrInvalidEmailDomain):
		return http.StatusUnprocessableEntity, "you must use an institutional student email"
	case errors.Is(err, domain.ErrAlreadyVoted):
		return http.StatusConflict, "you have already voted"
	case errors.Is(err, domain.ErrVotingClosed):
		return http.StatusForbidden, "voting is not open right now"
	case errors.Is(err, domain.ErrCodeMismatch):
		return http.StatusUnauthorized, "invalid code, try again"
	case errors.Is(err, domain.ErrNoSession):
		return http.StatusUnauthorized, "no active verification session"
	case errors.Is(err, domain.ErrDeliveryFailed):
		return http.StatusBadGateway, "could not send the verification code, try again"
	case errors.Is(err, domain.ErrTooManySelections):
		return http.StatusBadRequest, fmt.Sprintf("you can select up to %d candidates", domain.MaxSelections)
	case errors.Is(err, domain.ErrNoSelection):
		return http.StatusBadRequest, "select at least one candidate"
	case errors.Is(err, domain.ErrEmptyCandidateName):
		return http.StatusBadRequest, "candidate name is empty"
	case errors.Is(err, domain.ErrCandidateExists):
		return http.StatusConflict, "candidate already on roster"
	case errors.Is(err, domain.ErrCandidateNotFound):
		return http.StatusNotFound, "candidate not found"
	case errors.Is(err, domain.ErrVoterNotFound):
		return http.StatusNotFound, "voter not found"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
