package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/masq-social/masq-service/internal/models"
	"github.com/masq-social/masq-service/internal/repositories"
)

// UserPostgreSQL implements repositories.UserRepository backed by PostgreSQL
type UserPostgreSQL struct {
	db *gorm.DB
}

func NewUserPostgreSQL(db *gorm.DB) repositories.UserRepository {
	return &UserPostgreSQL{db: db}
}

// Create persists a new user; the database assigns the ID
func (u *UserPostgreSQL) Create(ctx context.Context, user *models.User) error {
	if user.LastActive.IsZero() {
		user.LastActive = time.Now().UTC()
	}
	if err := u.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID
func (u *UserPostgreSQL) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", id, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetByUsername retrieves a user by username, matching case-insensitively.
// First orders by primary key, so the earliest registered match wins.
func (u *UserPostgreSQL) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := u.db.WithContext(ctx).
		Where("LOWER(username) = LOWER(?)", username).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with username %s: %w", username, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return &user, nil
}

// GetByRealName retrieves a user by real name, matching case-insensitively
func (u *UserPostgreSQL) GetByRealName(ctx context.Context, realName string) (*models.User, error) {
	var user models.User
	err := u.db.WithContext(ctx).
		Where("LOWER(real_name) = LOWER(?)", realName).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with real name %s: %w", realName, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by real name: %w", err)
	}
	return &user, nil
}

// List returns every user ordered by ID
func (u *UserPostgreSQL) List(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	if err := u.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// TouchLastActive stamps the user's last activity; unknown ids update zero
// rows and stay silent.
func (u *UserPostgreSQL) TouchLastActive(ctx context.Context, id uint) error {
	now := time.Now().UTC()
	err := u.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"last_active": now, "updated_at": now}).Error
	if err != nil {
		return fmt.Errorf("failed to touch last active: %w", err)
	}
	return nil
}
