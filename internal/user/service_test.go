package user

import (
	"context"
	"errors"
	"testing"
)

func newTestService() *Service {
	return NewService(NewInMemoryRepository(), nil)
}

func TestVerifyCreatesOnFirstContact(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	u, err := svc.Verify(ctx, "abc123")
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if u.UserHash != "abc123" {
		t.Errorf("UserHash = %q, want %q", u.UserHash, "abc123")
	}
	if u.RegistrationComplete {
		t.Error("new user should not have cadastro_completo set")
	}
	if u.Points != 0 {
		t.Errorf("Points = %d, want 0", u.Points)
	}

	// Second scan returns the same record, not a fresh one.
	again, err := svc.Verify(ctx, "abc123")
	if err != nil {
		t.Fatalf("Verify() second call error = %v", err)
	}
	if !again.CreatedAt.Equal(u.CreatedAt) {
		t.Error("second Verify should return the existing user")
	}
}

func TestVerifyEmptyHash(t *testing.T) {
	svc := newTestService()
	if _, err := svc.Verify(context.Background(), ""); !errors.Is(err, ErrEmptyHash) {
		t.Errorf("Verify(\"\") error = %v, want ErrEmptyHash", err)
	}
}

func TestCreateRejectsDuplicate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, "abc123"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := svc.Create(ctx, "abc123"); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("duplicate Create() error = %v, want ErrAlreadyExists", err)
	}
}

func TestGetUnknownUser(t *testing.T) {
	svc := newTestService()
	if _, err := svc.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestCompleteRegistration(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Verify(ctx, "abc123"); err != nil {
		t.Fatalf("Verify() error = %v", err)
	}

	u, err := svc.CompleteRegistration(ctx, RegistrationInput{
		UserHash:  "abc123",
		Name:      "Maria Silva",
		Email:     "Maria@Example.com",
		BirthDate: "1990-05-20",
	})
	if err != nil {
		t.Fatalf("CompleteRegistration() error = %v", err)
	}
	if !u.RegistrationComplete {
		t.Error("cadastro_completo should be true after completion")
	}
	if u.Name == nil || *u.Name != "Maria Silva" {
		t.Errorf("Name = %v, want Maria Silva", u.Name)
	}
	if u.Email == nil || *u.Email != "maria@example.com" {
		t.Errorf("Email = %v, want normalized lowercase", u.Email)
	}

	// The transition is one-way.
	_, err = svc.CompleteRegistration(ctx, RegistrationInput{
		UserHash:  "abc123",
		Name:      "Someone Else",
		Email:     "else@example.com",
		BirthDate: "1985-01-01",
	})
	if !errors.Is(err, ErrAlreadyRegistered) {
		t.Errorf("second completion error = %v, want ErrAlreadyRegistered", err)
	}

	// The stored profile must be untouched by the failed attempt.
	stored, err := svc.Get(ctx, "abc123")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if stored.Name == nil || *stored.Name != "Maria Silva" {
		t.Errorf("stored Name = %v, want Maria Silva", stored.Name)
	}
}

func TestCompleteRegistrationValidation(t *testing.T) {
	tests := []struct {
		name  string
		input RegistrationInput
	}{
		{"short name", RegistrationInput{UserHash: "u1", Name: "A", Email: "a@b.com", BirthDate: "1990-01-01"}},
		{"bad email", RegistrationInput{UserHash: "u1", Name: "Ana", Email: "not-an-email", BirthDate: "1990-01-01"}},
		{"bad date", RegistrationInput{UserHash: "u1", Name: "Ana", Email: "a@b.com", BirthDate: "01/01/1990"}},
		{"future date", RegistrationInput{UserHash: "u1", Name: "Ana", Email: "a@b.com", BirthDate: "2999-01-01"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService()
			ctx := context.Background()
			if _, err := svc.Verify(ctx, "u1"); err != nil {
				t.Fatalf("Verify() error = %v", err)
			}
			if _, err := svc.CompleteRegistration(ctx, tt.input); err == nil {
				t.Error("CompleteRegistration() expected validation error, got nil")
			}
			u, err := svc.Get(ctx, "u1")
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if u.RegistrationComplete {
				t.Error("failed completion must not mark cadastro_completo")
			}
		})
	}
}

func TestUpdateProfilePartial(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Verify(ctx, "u1"); err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if _, err := svc.CompleteRegistration(ctx, RegistrationInput{
		UserHash: "u1", Name: "Maria Silva", Email: "maria@example.com", BirthDate: "1990-05-20",
	}); err != nil {
		t.Fatalf("CompleteRegistration() error = %v", err)
	}

	newName := "Maria S. Oliveira"
	u, err := svc.UpdateProfile(ctx, "u1", ProfileUpdate{Name: &newName})
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if u.Name == nil || *u.Name != newName {
		t.Errorf("Name = %v, want %q", u.Name, newName)
	}
	// Absent fields stay as they were.
	if u.Email == nil || *u.Email != "maria@example.com" {
		t.Errorf("Email = %v, want unchanged", u.Email)
	}
	if u.BirthDate == nil || *u.BirthDate != "1990-05-20" {
		t.Errorf("BirthDate = %v, want unchanged", u.BirthDate)
	}
}

func TestUpdateProfileRejectsInvalidField(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	if _, err := svc.Verify(ctx, "u1"); err != nil {
		t.Fatalf("Verify() error = %v", err)
	}

	bad := "not-an-email"
	if _, err := svc.UpdateProfile(ctx, "u1", ProfileUpdate{Email: &bad}); err == nil {
		t.Error("UpdateProfile() expected email validation error, got nil")
	}
}

func TestDelete(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Verify(ctx, "u1"); err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if err := svc.Delete(ctx, "u1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := svc.Get(ctx, "u1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(ctx, "u1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() on absent user error = %v, want ErrNotFound", err)
	}
}
