// Package repo owns the message catalog: it reads a data source, validates
// it into a domain.MessageDatabase, caches the result, and serves reloads.
package repo

import "errors"

// LoadError reports a failed load or reload of the message database. The
// data source was missing, unparseable, or structurally invalid.
type LoadError struct {
	// Source is the data source location (usually a file path).
	Source string
	// Err is the underlying cause.
	Err error
}

func (e *LoadError) Error() string {
	return "failed to load messages: " + e.Err.Error()
}

func (e *LoadError) Unwrap() error { return e.Err }

// ErrReloadThrottled is returned by Reloader.Trigger when a reload ran less
// than the configured minimum interval ago.
var ErrReloadThrottled = errors.New("reload throttled")
