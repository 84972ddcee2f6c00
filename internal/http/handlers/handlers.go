package handlers

import (
	"context"

	"github.com/tbourn/politely-failed/internal/domain"
)

//
// Service contracts (context-aware)
//

// MessageService defines the catalog operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type MessageService interface {
	// RandomMessage returns one message for (category, tone).
	RandomMessage(ctx context.Context, category domain.Category, tone domain.Tone) (string, error)
	// AllMessages returns every message for (category, tone).
	AllMessages(ctx context.Context, category domain.Category, tone domain.Tone) ([]string, error)
	// IsValidCategory reports whether v is a declared category.
	IsValidCategory(v string) bool
	// IsValidTone reports whether v is a declared tone.
	IsValidTone(v string) bool
	// Categories lists every category in declaration order.
	Categories() []string
	// Tones lists every tone in declaration order.
	Tones() []string
	// Version returns the catalog version string.
	Version(ctx context.Context) (string, error)
	// MessageCount returns the total number of messages in the catalog.
	MessageCount(ctx context.Context) (int, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints of the message API.
type Handlers struct {
	svc MessageService
}

// New constructs and returns a Handlers instance bound to svc.
func New(svc MessageService) *Handlers {
	return &Handlers{svc: svc}
}
