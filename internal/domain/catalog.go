// Package domain defines the message catalog model: the closed Category and
// Tone enumerations, the validated in-memory MessageDatabase, and the GORM
// rows used when the catalog is stored as a SQLite snapshot.
package domain

import (
	"fmt"
	"strings"
)

// Category is a failure-domain label used to select a message set.
type Category string

// Categories in declaration order. The order is part of the public API
// (GET /categories returns it unchanged).
const (
	CategoryNetwork        Category = "network"
	CategoryAuth           Category = "auth"
	CategoryDatabase       Category = "database"
	CategoryValidation     Category = "validation"
	CategoryRateLimit      Category = "rate_limit"
	CategoryServerError    Category = "server_error"
	CategoryNotImplemented Category = "not_implemented"
)

// Tone is the stylistic register of a message.
type Tone string

const (
	ToneCasual       Tone = "casual"
	ToneProfessional Tone = "professional"
	ToneHumorous     Tone = "humorous"
)

var (
	allCategories = []Category{
		CategoryNetwork,
		CategoryAuth,
		CategoryDatabase,
		CategoryValidation,
		CategoryRateLimit,
		CategoryServerError,
		CategoryNotImplemented,
	}
	allTones = []Tone{ToneCasual, ToneProfessional, ToneHumorous}
)

// Categories returns every Category in declaration order.
func Categories() []Category {
	return append([]Category(nil), allCategories...)
}

// Tones returns every Tone in declaration order.
func Tones() []Tone {
	return append([]Tone(nil), allTones...)
}

// ParseCategory converts s into a Category. Matching is exact and
// case-sensitive: "Network" is not a valid category.
func ParseCategory(s string) (Category, error) {
	for _, c := range allCategories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("invalid category %q (want one of: %s)", s, joinCategories())
}

// ParseTone converts s into a Tone. Matching is exact and case-sensitive.
func ParseTone(s string) (Tone, error) {
	for _, t := range allTones {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid tone %q (want one of: %s)", s, joinTones())
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool {
	_, err := ParseCategory(string(c))
	return err == nil
}

// Valid reports whether t is one of the declared tones.
func (t Tone) Valid() bool {
	_, err := ParseTone(string(t))
	return err == nil
}

func joinCategories() string {
	parts := make([]string, len(allCategories))
	for i, c := range allCategories {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}

func joinTones() string {
	parts := make([]string, len(allTones))
	for i, t := range allTones {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}
