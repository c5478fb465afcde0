package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thao-tran/glowcare-admin-api/config"
)

// AppError is a request-scoped error carrying the HTTP status it maps to.
// Every handler catches at the boundary and converts whatever it got into
// one of the constructors below; the response body is always {"message": ...}.
type AppError struct {
	Status  int
	Message string
	Err     error // wrapped cause, nil for input errors
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError reports bad or missing input (HTTP 400)
func NewValidationError(message string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Message: message}
}

// NewAuthenticationError reports a missing or invalid credential (HTTP 401)
func NewAuthenticationError(message string) *AppError {
	return &AppError{Status: http.StatusUnauthorized, Message: message}
}

// NewAuthorizationError reports an authenticated caller with the wrong role (HTTP 403)
func NewAuthorizationError(message string) *AppError {
	return &AppError{Status: http.StatusForbidden, Message: message}
}

// NewNotFoundError reports an id that did not resolve (HTTP 404)
func NewNotFoundError(message string) *AppError {
	return &AppError{Status: http.StatusNotFound, Message: message}
}

// NewInternalError wraps an unexpected store or service failure (HTTP 500)
func NewInternalError(err error) *AppError {
	return &AppError{Status: http.StatusInternalServerError, Message: err.Error(), Err: err}
}

// RespondError writes the error as {"message": string} with its HTTP status.
// Internal error details are only exposed outside production; in production
// a generic message is substituted so store internals do not leak.
func RespondError(c *gin.Context, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = NewInternalError(err)
	}

	message := appErr.Message
	if appErr.Status == http.StatusInternalServerError && config.GetConfig().IsProduction() {
		message = "internal server error"
	}

	c.JSON(appErr.Status, gin.H{"message": message})
}
