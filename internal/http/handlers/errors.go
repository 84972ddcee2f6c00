// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// These codes give clients a stable, machine-readable error taxonomy that
// supplements the human-readable message. Codes are lowercase snake_case.
//
// Example response:
//
//	{
//	  "error": "Internal Server Error",
//	  "code": "no_messages",
//	  "message": "No messages found for category: auth, tone: casual",
//	  "timestamp": "2025-01-02T03:04:05.678Z"
//	}
package handlers

import (
	"errors"

	"github.com/tbourn/politely-failed/internal/services"
)

const (
	ErrCodeValidation = "validation_error"
	ErrCodeNotFound   = "not_found"
	ErrCodeInternal   = "internal_error"

	// Domain-specific:
	ErrCodeNoMessages = "no_messages"
)

// Validation messages, in the order they are checked.
const (
	msgCategoryRequired = "Category is required"
	msgCategoryInvalid  = "Invalid category"
	msgToneRequired     = "Tone is required"
	msgToneInvalid      = "Invalid tone"
	msgFormatInvalid    = "Format must be either json or text"
)

// isNoMessages reports whether err means the requested pair has no messages.
func isNoMessages(err error) bool {
	return errors.Is(err, services.ErrNoMessages)
}
