package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Error   string `json:"error"`   // error code (see codes.go)
	Message string `json:"message"` // user-facing message
}

// RespondWithError writes a standard error body.
func RespondWithError(c *gin.Context, statusCode int, errorCode string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   errorCode,
		Message: message,
	})
}

// Shorthand responders for the common cases.

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Please login to continue"
	}
	RespondWithError(c, http.StatusUnauthorized, AuthUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "You do not have permission to access this page"
	}
	RespondWithError(c, http.StatusForbidden, AuthzForbidden, message)
}

func BadRequest(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusBadRequest, errorCode, message)
}

func NotFound(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusNotFound, errorCode, message)
}

func Conflict(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusConflict, errorCode, message)
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Something went wrong. Please try again later"
	}
	RespondWithError(c, http.StatusInternalServerError, InternalServerError, message)
}

// ValidationError carries per-field messages for form re-rendering.
type ValidationError struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func RespondWithValidationError(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, ValidationError{
		Error:   ValidationInvalidInput,
		Message: "Please correct the highlighted fields",
		Fields:  fields,
	})
}
