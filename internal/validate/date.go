package validate

import (
	"errors"
	"fmt"
	"time"
)

// Birth date validation errors.
var (
	ErrInvalidDate = errors.New("date must use the YYYY-MM-DD format")
	ErrFutureDate  = errors.New("birth date cannot be in the future")
	ErrTooYoung    = errors.New("minimum age not reached")
)

// MinRegistrationAge is the youngest age allowed to complete a kiosk
// registration.
const MinRegistrationAge = 13

// DateLayout is the wire format for birth dates.
const DateLayout = "2006-01-02"

// BirthDate validates a birth date string for registration: it must
// parse as an ISO date, not lie in the future, and imply an age of at
// least MinRegistrationAge. Returns the normalized date string.
func BirthDate(s string, now time.Time) (string, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	if d.After(now) {
		return "", ErrFutureDate
	}
	if AgeAt(d, now) < MinRegistrationAge {
		return "", fmt.Errorf("%w: must be at least %d", ErrTooYoung, MinRegistrationAge)
	}
	return d.Format(DateLayout), nil
}

// AgeAt computes whole years between a birth date and a reference time.
func AgeAt(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	// Birthday not reached yet this year.
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}
