package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/masq-social/masq-service/internal/auth"
	"github.com/masq-social/masq-service/internal/events"
	"github.com/masq-social/masq-service/internal/models"
	"github.com/masq-social/masq-service/internal/repositories"
	"github.com/masq-social/masq-service/internal/sessions"
	"github.com/masq-social/masq-service/internal/validator"
)

type authService struct {
	repo      repositories.Repository
	sessions  *sessions.Store
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAuthService(repo repositories.Repository, sessions *sessions.Store, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) AuthService {
	return &authService{
		repo:      repo,
		sessions:  sessions,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// ===== REGISTRATION =====

func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	s.logger.Info("Registering user", "username", req.Username)

	if errs := s.validator.ValidateRegister(req); len(errs) > 0 {
		return nil, errs
	}

	// The store performs no uniqueness check of its own.
	if _, err := s.repo.User().GetByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error("Failed to hash password", "error", err)
		return nil, err
	}

	user := &models.User{
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: hash,
		RealName:     strings.TrimSpace(req.RealName),
		FakeName:     strings.TrimSpace(req.FakeName),
		Age:          req.Age,
		School:       strings.TrimSpace(req.School),
		ClassInfo:    strings.TrimSpace(req.ClassInfo),
		AvatarType:   req.AvatarType,
		AvatarID:     req.AvatarID,
	}

	if err := s.repo.User().Create(ctx, user); err != nil {
		s.logger.Error("Failed to create user", "username", req.Username, "error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.publishEvent(ctx, events.New(events.TypeUserRegistered, events.UserRegisteredData{
		UserID:   user.ID,
		Username: user.Username,
		FakeName: user.FakeName,
		School:   user.School,
	}))

	s.logger.Info("User registered", "user_id", user.ID, "username", user.Username)

	return &models.AuthResponse{User: user, Token: token}, nil
}

// ===== LOGIN / LOGOUT =====

func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	user, err := s.repo.User().GetByUsername(ctx, req.Username)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			// Same response for unknown user and wrong password.
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.logger.Warn("Login rejected", "username", req.Username)
		return nil, ErrInvalidCredentials
	}

	if err := s.repo.User().TouchLastActive(ctx, user.ID); err != nil {
		s.logger.Warn("Failed to touch last active", "user_id", user.ID, "error", err)
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info("User logged in", "user_id", user.ID)

	return &models.AuthResponse{User: user, Token: token}, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Revoke(ctx, token); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (uint, error) {
	userID, err := s.sessions.Lookup(ctx, token)
	if err != nil {
		if errors.Is(err, sessions.ErrNoSession) {
			return 0, ErrUnauthorized
		}
		return 0, fmt.Errorf("failed to look up session: %w", err)
	}
	return userID, nil
}

func (s *authService) publishEvent(ctx context.Context, event *events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish event", "type", event.Type, "error", err)
	}
}
