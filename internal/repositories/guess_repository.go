package repositories

import (
	"context"

	"github.com/masq-social/masq-service/internal/models"
)

// GuessRepository interface for identity-guess storage
type GuessRepository interface {
	// Create assigns the ID, stamps the creation time and persists the
	// guess. Correctness is already decided by the caller.
	Create(ctx context.Context, guess *models.Guess) error

	// ListForUser returns every guess the user made or received, newest
	// first.
	ListForUser(ctx context.Context, userID uint) ([]*models.Guess, error)
}
