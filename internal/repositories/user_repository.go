package repositories

import (
	"context"

	"github.com/masq-social/masq-service/internal/models"
)

// UserRepository interface for user storage. Username and real-name lookups
// match case-insensitively.
type UserRepository interface {
	// Create assigns the ID and persists the user. Uniqueness of usernames
	// is the caller's concern, not the store's.
	Create(ctx context.Context, user *models.User) error

	// Lookups
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByRealName(ctx context.Context, realName string) (*models.User, error)

	// List returns every registered user
	List(ctx context.Context) ([]*models.User, error)

	// TouchLastActive stamps the user's last activity with the current time.
	// Unknown ids are a silent no-op.
	TouchLastActive(ctx context.Context, id uint) error
}
