package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/masq-social/masq-service/internal/models"
	"github.com/masq-social/masq-service/internal/repositories"
	"github.com/samber/lo"
)

type userService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewUserService(repo repositories.Repository, logger *slog.Logger) UserService {
	return &userService{
		repo:   repo,
		logger: logger,
	}
}

// ListOthers returns everyone except the caller, reduced to the fields a
// classmate is allowed to see. Real names and usernames stay private.
func (s *userService) ListOthers(ctx context.Context, userID uint) ([]*models.PublicProfile, error) {
	users, err := s.repo.User().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	profiles := lo.FilterMap(users, func(u *models.User, _ int) (*models.PublicProfile, bool) {
		if u.ID == userID {
			return nil, false
		}
		return u.PublicProfile(), true
	})

	return profiles, nil
}

func (s *userService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

func (s *userService) TouchLastActive(ctx context.Context, userID uint) error {
	return s.repo.User().TouchLastActive(ctx, userID)
}
