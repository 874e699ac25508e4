// Package purge implements the full data reset: every collection wiped
// in one call. Exposed on the admin surface only.
package purge

import (
	"context"
	"fmt"
	"log/slog"
)

// Wiper is the per-repository wipe operation. Every repository in the
// system implements it as DeleteAll.
type Wiper interface {
	DeleteAll(ctx context.Context) error
}

// Service wipes a set of repositories.
type Service struct {
	wipers map[string]Wiper
	logger *slog.Logger
}

// NewService creates a purge service over named wipers. The name keys
// the error and log output, typically the collection name.
func NewService(wipers map[string]Wiper, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{wipers: wipers, logger: logger}
}

// Wipe empties every registered repository. It stops at the first
// failure so a partial reset is visible in the error rather than
// silently swallowed.
func (s *Service) Wipe(ctx context.Context) error {
	for name, w := range s.wipers {
		if err := w.DeleteAll(ctx); err != nil {
			return fmt.Errorf("failed to wipe %s: %w", name, err)
		}
		s.logger.Info("collection wiped", "collection", name)
	}
	s.logger.Warn("full data reset completed", "collections", len(s.wipers))
	return nil
}
