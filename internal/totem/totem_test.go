package totem

import (
	"context"
	"errors"
	"regexp"
	"testing"
)

var idPattern = regexp.MustCompile(`^[0-9a-f]{12}$`)

// TestNewGeneratesID verifies new totems receive a well-formed,
// timestamp-salted identifier.
func TestNewGeneratesID(t *testing.T) {
	a := New(-8.0632, -34.8711)
	b := New(-8.0632, -34.8711)

	if !idPattern.MatchString(a.TotemID) {
		t.Errorf("totem ID %q does not match expected 12-hex format", a.TotemID)
	}
	if a.TotemID == b.TotemID {
		t.Error("two totems created at the same coordinates share an ID")
	}
	if a.CreatedAt.IsZero() {
		t.Error("created totem has zero creation time")
	}
}

// TestNewIDMatchesCreatedAt verifies the ID is salted with the stored
// creation instant, not a separate clock read.
func TestNewIDMatchesCreatedAt(t *testing.T) {
	tot := New(-8.0632, -34.8711)

	if got := generateID(tot.Latitude, tot.Longitude, tot.CreatedAt); got != tot.TotemID {
		t.Errorf("ID derived from CreatedAt = %q, want %q", got, tot.TotemID)
	}
}

func TestServiceCreateAndGet(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewInMemoryRepository())

	created, err := svc.Create(ctx, -8.05, -34.88)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := svc.Get(ctx, created.TotemID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Latitude != -8.05 || got.Longitude != -34.88 {
		t.Errorf("got coordinates (%v, %v), want (-8.05, -34.88)", got.Latitude, got.Longitude)
	}
}

func TestServiceGetNotFound(t *testing.T) {
	svc := NewService(NewInMemoryRepository())

	_, err := svc.Get(context.Background(), "missing00000")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get on missing totem: got %v, want ErrNotFound", err)
	}
}

func TestServiceLocate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewInMemoryRepository())

	created, err := svc.Create(ctx, -8.0476, -34.8770)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	lat, lng, err := svc.Locate(ctx, created.TotemID)
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if lat != -8.0476 || lng != -34.8770 {
		t.Errorf("Locate = (%v, %v), want (-8.0476, -34.8770)", lat, lng)
	}

	if _, _, err := svc.Locate(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Locate on missing totem: got %v, want ErrNotFound", err)
	}
}

func TestServiceDelete(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewInMemoryRepository())

	created, err := svc.Create(ctx, 1, 2)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := svc.Delete(ctx, created.TotemID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := svc.Get(ctx, created.TotemID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete: got %v, want ErrNotFound", err)
	}
	if err := svc.Delete(ctx, created.TotemID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete: got %v, want ErrNotFound", err)
	}
}

func TestInMemoryRepositoryIsolation(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()

	orig := New(10, 20)
	if err := repo.Save(ctx, orig); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Mutating the original must not affect the stored copy.
	orig.Latitude = 99

	stored, err := repo.GetByID(ctx, orig.TotemID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if stored.Latitude != 10 {
		t.Errorf("stored totem latitude = %v, want 10 (repository must copy)", stored.Latitude)
	}
}
