// Package services – MessageService
//
// This file implements MessageService, a stateless façade over the message
// store. It picks random messages, returns full lists, and answers the
// category/tone membership questions the HTTP layer validates against.
//
// Observability: methods that touch the store are OpenTelemetry-instrumented;
// spans carry the category and tone being served.

package services

import (
	"context"
	"math/rand/v2"

	"github.com/tbourn/politely-failed/internal/domain"

	// OpenTelemetry
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Catalog is the store contract required by MessageService. *repo.Store
// satisfies it.
type Catalog interface {
	// Database returns the active database, loading it if needed.
	Database(ctx context.Context) (*domain.MessageDatabase, error)
	// MessageCount sums the list lengths over all category/tone pairs.
	MessageCount(ctx context.Context) (int, error)
}

// MessageService serves messages from a Catalog.
type MessageService struct {
	Store Catalog

	// IntN returns a uniform int in [0, n). Defaults to math/rand/v2.IntN.
	IntN func(n int) int
}

// NewMessageService wires a MessageService over store.
func NewMessageService(store Catalog) *MessageService {
	return &MessageService{Store: store, IntN: rand.IntN}
}

// RandomMessage returns one message for (category, tone), chosen uniformly.
// A missing or empty list yields a *NotFoundError.
func (s *MessageService) RandomMessage(ctx context.Context, category domain.Category, tone domain.Tone) (string, error) {
	ctx, span := startSpan(ctx, "RandomMessage", category, tone)
	defer span.End()

	db, err := s.Store.Database(ctx)
	if err != nil {
		recordErr(span, err)
		return "", err
	}
	msgs, _ := db.Messages(category, tone)
	if len(msgs) == 0 {
		err := &NotFoundError{Category: category, Tone: tone}
		recordErr(span, err)
		return "", err
	}

	i := s.intN(len(msgs))
	span.SetAttributes(attribute.Int("messages.count", len(msgs)), attribute.Int("messages.index", i))
	messagesServed.WithLabelValues(string(category), string(tone), "random").Inc()
	return msgs[i], nil
}

// AllMessages returns a copy of the list for (category, tone) in stored
// order. An empty list is returned as an empty, non-nil slice; a missing key
// yields a *NotFoundError.
func (s *MessageService) AllMessages(ctx context.Context, category domain.Category, tone domain.Tone) ([]string, error) {
	ctx, span := startSpan(ctx, "AllMessages", category, tone)
	defer span.End()

	db, err := s.Store.Database(ctx)
	if err != nil {
		recordErr(span, err)
		return nil, err
	}
	msgs, ok := db.Messages(category, tone)
	if !ok {
		err := &NotFoundError{Category: category, Tone: tone}
		recordErr(span, err)
		return nil, err
	}

	out := make([]string, len(msgs))
	copy(out, msgs)
	span.SetAttributes(attribute.Int("messages.count", len(out)))
	messagesServed.WithLabelValues(string(category), string(tone), "all").Inc()
	return out, nil
}

// IsValidCategory reports whether v names a Category. Case-sensitive.
func (s *MessageService) IsValidCategory(v string) bool {
	return domain.Category(v).Valid()
}

// IsValidTone reports whether v names a Tone. Case-sensitive.
func (s *MessageService) IsValidTone(v string) bool {
	return domain.Tone(v).Valid()
}

// Categories lists every category in declaration order.
func (s *MessageService) Categories() []string {
	cs := domain.Categories()
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = string(c)
	}
	return out
}

// Tones lists every tone in declaration order.
func (s *MessageService) Tones() []string {
	ts := domain.Tones()
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = string(t)
	}
	return out
}

// Version returns the version of the active database.
func (s *MessageService) Version(ctx context.Context) (string, error) {
	tr := otel.Tracer("services/MessageService")
	ctx, span := tr.Start(ctx, "Version")
	defer span.End()

	db, err := s.Store.Database(ctx)
	if err != nil {
		recordErr(span, err)
		return "", err
	}
	return db.Version, nil
}

// MessageCount returns the total number of loaded messages.
func (s *MessageService) MessageCount(ctx context.Context) (int, error) {
	tr := otel.Tracer("services/MessageService")
	ctx, span := tr.Start(ctx, "MessageCount")
	defer span.End()

	n, err := s.Store.MessageCount(ctx)
	if err != nil {
		recordErr(span, err)
		return 0, err
	}
	return n, nil
}

func (s *MessageService) intN(n int) int {
	if s.IntN != nil {
		return s.IntN(n)
	}
	return rand.IntN(n)
}

func startSpan(ctx context.Context, name string, category domain.Category, tone domain.Tone) (context.Context, trace.Span) {
	tr := otel.Tracer("services/MessageService")
	return tr.Start(ctx, name,
		trace.WithAttributes(
			attribute.String("message.category", string(category)),
			attribute.String("message.tone", string(tone)),
		),
	)
}

func recordErr(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
