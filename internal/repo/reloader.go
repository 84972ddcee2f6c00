package repo

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Reloader coalesces reload requests (signals, file polling) so that at
// most one reload runs per minimum interval.
type Reloader struct {
	store   *Store
	limiter *rate.Limiter
}

// NewReloader returns a Reloader for store. A minInterval <= 0 disables
// throttling.
func NewReloader(store *Store, minInterval time.Duration) *Reloader {
	lim := rate.NewLimiter(rate.Inf, 1)
	if minInterval > 0 {
		lim = rate.NewLimiter(rate.Every(minInterval), 1)
	}
	return &Reloader{store: store, limiter: lim}
}

// Trigger reloads the store unless a reload ran too recently, in which case
// it returns ErrReloadThrottled. reason is only used for logging.
func (r *Reloader) Trigger(ctx context.Context, reason string) error {
	if !r.limiter.Allow() {
		log.Debug().Str("reason", reason).Msg("catalog reload throttled")
		return ErrReloadThrottled
	}

	db, err := r.store.Reload(ctx)
	if err != nil {
		ev := log.Error().Err(err).Str("reason", reason)
		if prev := r.store.db.Load(); prev != nil {
			ev = ev.Str("active_version", prev.Version)
		}
		ev.Msg("catalog reload failed; keeping previous catalog")
		return err
	}

	log.Info().
		Str("reason", reason).
		Str("version", db.Version).
		Int("messages", db.Count()).
		Msg("catalog reloaded")
	return nil
}

// Watch polls the source modification time every interval and triggers a
// reload when it changes. It returns when ctx is done. An interval <= 0
// returns immediately.
func (r *Reloader) Watch(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	src := r.store.Source()
	last, _ := src.ModTime()

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}

		mod, err := src.ModTime()
		if err != nil {
			log.Debug().Err(err).Str("source", src.Location()).Msg("catalog stat failed")
			continue
		}
		if !mod.After(last) {
			continue
		}
		// A throttled attempt retries on the next tick; a failed reload waits
		// for the next modification.
		if err := r.Trigger(ctx, "watch"); errors.Is(err, ErrReloadThrottled) {
			continue
		}
		last = mod
	}
}
