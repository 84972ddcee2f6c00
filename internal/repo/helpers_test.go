package repo

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/politely-failed/internal/domain"
)

// fullDoc returns a valid document with one message per pair, named
// "<category>/<tone>".
func fullDoc(version string) map[string]any {
	cats := map[string]any{}
	for _, c := range domain.Categories() {
		tones := map[string]any{}
		for _, t := range domain.Tones() {
			tones[string(t)] = []any{string(c) + "/" + string(t)}
		}
		cats[string(c)] = tones
	}
	return map[string]any{"version": version, "categories": cats}
}

// setTone replaces one list in doc.
func setTone(doc map[string]any, c, t string, v any) {
	doc["categories"].(map[string]any)[c].(map[string]any)[t] = v
}

func writeJSON(t *testing.T, path string, doc any) {
	t.Helper()
	b, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	writeFile(t, path, b)
}

func writeFile(t *testing.T, path string, b []byte) {
	t.Helper()
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func tempPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })
	log.Logger = zerolog.New(&buf)
	return &buf
}

// countingSource serves a fixed document and counts reads.
type countingSource struct {
	doc   any
	err   error
	delay time.Duration
	reads atomic.Int32
}

func (s *countingSource) Location() string { return "memory" }

func (s *countingSource) Read(ctx context.Context) (any, error) {
	s.reads.Add(1)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.doc, nil
}

func (s *countingSource) ModTime() (time.Time, error) { return time.Time{}, nil }
