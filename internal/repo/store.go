package repo

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/politely-failed/internal/domain"
)

// Store loads the message database from a Source, validates it once, and
// serves the cached result.
//
// Readers never block once a database is cached. Loads and reloads are
// serialized, so concurrent first calls read the source exactly once. A
// failed reload leaves the previous database active.
//
// Store is safe for concurrent use.
type Store struct {
	src    Source
	logger *zerolog.Logger
	now    func() time.Time

	mu       sync.Mutex // serializes reads of src
	db       atomic.Pointer[domain.MessageDatabase]
	loadedAt atomic.Int64 // unix nanos of the last successful load
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load warnings. Defaults to the global
// zerolog logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.logger = &l }
}

// WithClock overrides the time source used for LoadedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore returns a Store reading from src. Nothing is read until the first
// Load.
func NewStore(src Source, opts ...Option) *Store {
	s := &Store{src: src, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Source returns the data source backing the store.
func (s *Store) Source() Source { return s.src }

// Load reads, validates, and caches the database. After the first success
// it returns the cached value without touching the source.
func (s *Store) Load(ctx context.Context) (*domain.MessageDatabase, error) {
	if db := s.db.Load(); db != nil {
		return db, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if db := s.db.Load(); db != nil {
		return db, nil
	}
	return s.readLocked(ctx, "load")
}

// Database returns the cached database, loading it first if needed.
func (s *Store) Database(ctx context.Context) (*domain.MessageDatabase, error) {
	return s.Load(ctx)
}

// Reload re-reads the source and swaps in the new database on success. On
// failure the previous database stays active and a *LoadError is returned.
func (s *Store) Reload(ctx context.Context) (*domain.MessageDatabase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked(ctx, "reload")
}

// MessageCount returns the number of messages across all Category × Tone
// pairs, loading the database if needed.
func (s *Store) MessageCount(ctx context.Context) (int, error) {
	db, err := s.Database(ctx)
	if err != nil {
		return 0, err
	}
	return db.Count(), nil
}

// Version returns the version of the cached database, loading it if needed.
func (s *Store) Version(ctx context.Context) (string, error) {
	db, err := s.Database(ctx)
	if err != nil {
		return "", err
	}
	return db.Version, nil
}

// LoadedAt reports when the active database was loaded. Zero before the
// first successful load.
func (s *Store) LoadedAt() time.Time {
	n := s.loadedAt.Load()
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n)
}

// readLocked performs one read of the source. Callers hold s.mu.
func (s *Store) readLocked(ctx context.Context, op string) (*domain.MessageDatabase, error) {
	raw, err := s.src.Read(ctx)
	if err != nil {
		catalogLoads.WithLabelValues(op, "error").Inc()
		return nil, &LoadError{Source: s.src.Location(), Err: err}
	}
	db, empty, err := buildDatabase(raw)
	if err != nil {
		catalogLoads.WithLabelValues(op, "error").Inc()
		return nil, &LoadError{Source: s.src.Location(), Err: err}
	}

	lg := s.log()
	for _, e := range empty {
		lg.Warn().
			Str("category", string(e.Category)).
			Str("tone", string(e.Tone)).
			Str("source", s.src.Location()).
			Msg("message set has no messages")
	}

	now := s.now()
	s.db.Store(db)
	s.loadedAt.Store(now.UnixNano())

	catalogLoads.WithLabelValues(op, "ok").Inc()
	catalogMessages.Set(float64(db.Count()))
	catalogEmptySets.Set(float64(len(empty)))
	catalogLastLoad.Set(float64(now.Unix()))
	return db, nil
}

func (s *Store) log() *zerolog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return &log.Logger
}
