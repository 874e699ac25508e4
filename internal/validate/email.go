package validate

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidEmail indicates a malformed email address.
var ErrInvalidEmail = errors.New("invalid email format")

// emailPattern covers the common email shapes; anything stricter
// belongs to the mail provider.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validates an email address and returns it normalized
// (lowercased, trimmed).
func Email(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", ErrEmpty
	}

	// RFC 5321 length ceilings.
	if len(email) > 254 {
		return "", ErrStringTooLong
	}
	if !emailPattern.MatchString(email) {
		return "", ErrInvalidEmail
	}

	local, _, _ := strings.Cut(email, "@")
	if len(local) > 64 {
		return "", ErrStringTooLong
	}
	return email, nil
}
