// Package services defines the business logic over the message catalog.
// This file centralizes the service-level error values so that they can be
// returned consistently by service methods and checked by callers.
//
// Translation into HTTP status codes is performed at the handler layer.
package services

import (
	"errors"
	"fmt"

	"github.com/tbourn/politely-failed/internal/domain"
)

// ErrNoMessages indicates that no message is available for a category/tone
// pair: the list is missing, or empty when a single message was requested.
var ErrNoMessages = errors.New("no messages found")

// NotFoundError carries the pair that had no messages. It matches
// ErrNoMessages with errors.Is.
type NotFoundError struct {
	Category domain.Category
	Tone     domain.Tone
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no messages found for category: %s, tone: %s", e.Category, e.Tone)
}

// Is reports whether target is ErrNoMessages.
func (e *NotFoundError) Is(target error) bool { return target == ErrNoMessages }
