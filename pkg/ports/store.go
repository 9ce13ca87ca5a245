package ports

import (
	"context"

	"github.com/aretw0/numerology/pkg/domain"
)

// SessionStore persists sessions between requests. Sessions carry only the
// display mode and the latest result, so stores may expire them freely.
type SessionStore interface {
	// Save persists the session under sessionID.
	Save(ctx context.Context, sessionID string, s *domain.Session) error

	// Load retrieves a session.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.Session, error)

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of all stored sessions.
	List(ctx context.Context) ([]string, error)
}
