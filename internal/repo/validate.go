package repo

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tbourn/politely-failed/internal/domain"
)

// emptySet names a Category × Tone pair whose list is present but empty.
type emptySet struct {
	Category domain.Category
	Tone     domain.Tone
}

// buildDatabase validates a decoded document and converts it into a typed
// MessageDatabase. It stops at the first violation. Empty lists are
// accepted and reported back so the caller can warn about them.
//
// Checks, in order:
//  1. version present and non-empty
//  2. categories present and a mapping
//  3. every declared category present and a mapping
//  4. every declared tone present and a list of strings
//
// Unknown categories and tones are ignored. Message text is normalized to NFC.
func buildDatabase(raw any) (*domain.MessageDatabase, []emptySet, error) {
	root, ok := asMap(raw)
	if !ok {
		return nil, nil, errors.New("message database is not an object")
	}

	version, ok := asVersion(root["version"])
	if !ok {
		return nil, nil, errors.New("message database missing version field")
	}

	cats, ok := asMap(root["categories"])
	if !ok {
		return nil, nil, errors.New("message database missing categories field")
	}

	db := &domain.MessageDatabase{
		Version:    version,
		Categories: make(map[domain.Category]domain.ToneMessages, len(domain.Categories())),
	}
	var empty []emptySet

	for _, c := range domain.Categories() {
		v, present := cats[string(c)]
		if !present || v == nil {
			return nil, nil, fmt.Errorf("missing category: %s", c)
		}
		tones, ok := asMap(v)
		if !ok {
			return nil, nil, fmt.Errorf("category %s is not an object", c)
		}

		tm := make(domain.ToneMessages, len(domain.Tones()))
		for _, t := range domain.Tones() {
			items, ok := tones[string(t)].([]any)
			if !ok {
				return nil, nil, fmt.Errorf("category %s missing tone: %s", c, t)
			}
			msgs := make([]string, 0, len(items))
			for i, it := range items {
				s, ok := it.(string)
				if !ok {
					return nil, nil, fmt.Errorf("category %s tone %s: message %d is not a string", c, t, i)
				}
				msgs = append(msgs, norm.NFC.String(s))
			}
			if len(msgs) == 0 {
				empty = append(empty, emptySet{Category: c, Tone: t})
			}
			tm[t] = msgs
		}
		db.Categories[c] = tm
	}

	return db, empty, nil
}

// asMap accepts both map shapes produced by the decoders: JSON and most YAML
// documents give map[string]any, YAML with non-string keys gives map[any]any.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// asVersion accepts a non-empty string or a number. YAML authors frequently
// write `version: 1.2` unquoted.
func asVersion(v any) (string, bool) {
	var s string
	switch x := v.(type) {
	case string:
		s = x
	case json.Number:
		s = x.String()
	case int:
		s = strconv.Itoa(x)
	case int64:
		s = strconv.FormatInt(x, 10)
	case uint64:
		s = strconv.FormatUint(x, 10)
	case float64:
		s = strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return "", false
	}
	if strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}
