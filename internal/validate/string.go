// Package validate provides input validation helpers for user profile
// and facility data.
package validate

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// String validation errors.
var (
	ErrEmpty          = errors.New("value is empty")
	ErrStringTooShort = errors.New("value is too short")
	ErrStringTooLong  = errors.New("value is too long")
)

// Length trims surrounding whitespace and checks the rune count against
// the inclusive [min, max] bounds. Returns the trimmed string.
func Length(s string, min, max int) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmpty
	}

	// Character count, not byte count; names carry accents.
	length := utf8.RuneCountInString(s)
	if min > 0 && length < min {
		return "", fmt.Errorf("%w: got %d chars, need at least %d", ErrStringTooShort, length, min)
	}
	if max > 0 && length > max {
		return "", fmt.Errorf("%w: got %d chars, maximum is %d", ErrStringTooLong, length, max)
	}
	return s, nil
}

// Optional trims a value that may legitimately be absent. Returns nil
// when the trimmed value is empty, otherwise a pointer to the trimmed
// string bounded by max runes.
func Optional(s string, max int) (*string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if max > 0 && utf8.RuneCountInString(s) > max {
		return nil, fmt.Errorf("%w: maximum is %d chars", ErrStringTooLong, max)
	}
	return &s, nil
}
