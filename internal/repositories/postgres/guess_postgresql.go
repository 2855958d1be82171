package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/masq-social/masq-service/internal/models"
	"github.com/masq-social/masq-service/internal/repositories"
)

// GuessPostgreSQL implements repositories.GuessRepository backed by
// PostgreSQL
type GuessPostgreSQL struct {
	db *gorm.DB
}

func NewGuessPostgreSQL(db *gorm.DB) repositories.GuessRepository {
	return &GuessPostgreSQL{db: db}
}

// Create persists a new guess; correctness was decided by the caller
func (g *GuessPostgreSQL) Create(ctx context.Context, guess *models.Guess) error {
	if err := g.db.WithContext(ctx).Create(guess).Error; err != nil {
		return fmt.Errorf("failed to create guess: %w", err)
	}
	return nil
}

// ListForUser returns every guess the user made or received, newest first
func (g *GuessPostgreSQL) ListForUser(ctx context.Context, userID uint) ([]*models.Guess, error) {
	var guesses []*models.Guess
	err := g.db.WithContext(ctx).
		Where("guesser_id = ? OR target_id = ?", userID, userID).
		Order("created_at DESC, id DESC").
		Find(&guesses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list guesses for user: %w", err)
	}
	return guesses, nil
}
