package repo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Source produces the raw, untyped message document. Read returns the
// decoded value (maps, slices, scalars) without any shape checks; the Store
// validates and converts it.
type Source interface {
	// Location identifies the source in errors and logs.
	Location() string
	// Read decodes the whole source into a generic value.
	Read(ctx context.Context) (any, error)
	// ModTime reports when the underlying data last changed.
	ModTime() (time.Time, error)
}

// OpenSource picks a Source implementation from the file extension:
// .yaml/.yml for YAML, .db/.sqlite/.sqlite3 for a SQLite snapshot, and JSON
// for everything else. The file itself is not touched until Read.
func OpenSource(path string) Source {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return &fileSource{path: path, format: "YAML", decode: decodeYAML}
	case ".db", ".sqlite", ".sqlite3":
		return &sqliteSource{path: path}
	default:
		return &fileSource{path: path, format: "JSON", decode: decodeJSON}
	}
}

// fileSource reads a whole file and hands the bytes to a decoder.
type fileSource struct {
	path   string
	format string
	decode func([]byte) (any, error)
}

func (s *fileSource) Location() string { return s.path }

func (s *fileSource) Read(ctx context.Context) (any, error) {
	abs, err := resolvePath(s.path)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(abs)
	if err != nil {
		return nil, err
	}
	v, err := s.decode(b)
	if err != nil {
		return nil, fmt.Errorf("invalid %s in %s: %w", s.format, abs, err)
	}
	return v, nil
}

func (s *fileSource) ModTime() (time.Time, error) { return modTime(s.path) }

// resolvePath returns the absolute path, or a not-found error that names it.
func resolvePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(abs); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("messages file not found at: %s", abs)
		}
		return "", err
	}
	return abs, nil
}

func modTime(path string) (time.Time, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return fi.ModTime(), nil
}

// decodeJSON decodes exactly one JSON value. Numbers stay json.Number so a
// numeric version keeps its original spelling.
func decodeJSON(b []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after top-level value")
	}
	return v, nil
}

// decodeYAML decodes a YAML document. The top-level version scalar is kept
// as written: unquoted `1.10` stays "1.10" and `2024-01-01` stays a string
// instead of becoming a float or a timestamp.
func decodeYAML(b []byte) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	if root.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(root.Content); i += 2 {
			key, val := root.Content[i], root.Content[i+1]
			if key.Value == "version" && val.Kind == yaml.ScalarNode && val.Tag != "!!null" {
				val.Tag = "!!str"
			}
		}
	}
	var v any
	if err := root.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
