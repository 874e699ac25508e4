// Package user provides models, repositories and the service for kiosk
// users, including the gamification point ledger, ranking and
// aggregate statistics.
package user

import (
	"time"

	"github.com/onnwee/praca/internal/validate"
)

// User is a person identified by the opaque hash scanned at a totem.
// Users are created minimally (hash only) on first contact and later
// complete their registration with profile fields; that transition is
// one-way. Optional fields use pointers with omitempty: a field is
// either present with a value or absent from the document, never
// present-and-null.
type User struct {
	UserHash             string    `bson:"vem_hash" json:"vem_hash"`
	Name                 *string   `bson:"nome,omitempty" json:"nome,omitempty"`
	Email                *string   `bson:"email,omitempty" json:"email,omitempty"`
	BirthDate            *string   `bson:"data_nascimento,omitempty" json:"data_nascimento,omitempty"`
	Points               int64     `bson:"pontuacao" json:"pontuacao"`
	RegistrationComplete bool      `bson:"cadastro_completo" json:"cadastro_completo"`
	CreatedAt            time.Time `bson:"data_criacao" json:"data_criacao"`
	UpdatedAt            time.Time `bson:"ultima_atualizacao" json:"ultima_atualizacao"`
}

// New creates a minimal user record for a freshly scanned hash.
func New(userHash string) *User {
	now := time.Now().UTC()
	return &User{
		UserHash:  userHash,
		Points:    0,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Age returns the user's age in whole years at the reference time.
// Returns false when the birth date is absent or does not parse;
// statistics skip such users rather than failing.
func (u *User) Age(now time.Time) (int, bool) {
	if u.BirthDate == nil {
		return 0, false
	}
	birth, err := time.Parse(validate.DateLayout, *u.BirthDate)
	if err != nil {
		return 0, false
	}
	return validate.AgeAt(birth, now), true
}
