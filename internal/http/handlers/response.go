// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the standard response utilities used across all endpoints:
// the error envelope and the helpers that write it. The goal is uniform
// responses for both success and failure cases.
//
// Conventions:
//   - All error responses return an ErrorResponse with a stable `code`.
//   - `fail()` centralizes error logging and formatting, ensuring 5xx responses
//     are logged with request context for observability.
//   - `error` is "Validation Error" for 400s and the HTTP status text otherwise.
//
// Example error response:
//
//	HTTP/1.1 400 Bad Request
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "error": "Validation Error",
//	  "code": "validation_error",
//	  "message": "Invalid category",
//	  "timestamp": "2025-01-02T03:04:05.678Z"
//	}
package handlers

import (
	"net/http"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/politely-failed/internal/http/middleware"
)

// now is swapped in tests.
var now = time.Now

// ErrorResponse is the standard error envelope returned by all endpoints.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Short error title
	Error string `json:"error" example:"Validation Error"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"validation_error"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"Invalid category"`
	// RFC 3339 UTC timestamp with milliseconds
	Timestamp string `json:"timestamp" example:"2025-01-02T03:04:05.678Z"`
}

// fail aborts the request with a structured error. Server errors (>=500) are
// logged using the request-scoped logger from middleware.
func fail(c *gin.Context, status int, code, msg string) {
	resp := ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Error:     errorTitle(status, code),
		Code:      code,
		Message:   msg,
		Timestamp: timestamp(),
	}

	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail() for router-level fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// text writes a plain-text success response.
func text(c *gin.Context, status int, body string) {
	c.Data(status, "text/plain; charset=utf-8", []byte(body))
}

// errorMessage renders err for the envelope `message` field. Go error strings
// start lowercase; clients see them with the first letter capitalized.
func errorMessage(err error) string {
	s := err.Error()
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

func errorTitle(status int, code string) string {
	if code == ErrCodeValidation {
		return "Validation Error"
	}
	if t := http.StatusText(status); t != "" {
		return t
	}
	return "Error"
}

func timestamp() string {
	return now().UTC().Format(middleware.TimestampLayout)
}
