package services

import (
	"context"

	"github.com/masq-social/masq-service/internal/models"
	"github.com/xuri/excelize/v2"
)

// ===== SERVICE INTERFACES =====

// AuthService covers registration, login and session resolution.
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	Logout(ctx context.Context, token string) error

	// Authenticate resolves a session token to the owning user ID.
	Authenticate(ctx context.Context, token string) (uint, error)
}

// UserService exposes user profiles.
type UserService interface {
	// ListOthers returns the public profiles of every user except the caller.
	ListOthers(ctx context.Context, userID uint) ([]*models.PublicProfile, error)
	GetProfile(ctx context.Context, userID uint) (*models.User, error)
	TouchLastActive(ctx context.Context, userID uint) error
}

// MessageService covers direct messages between two users.
type MessageService interface {
	Send(ctx context.Context, senderID uint, req *models.SendMessageRequest) (*models.Message, error)

	// Thread returns the two-party conversation in chronological order and
	// marks the counterpart's messages to the caller as read.
	Thread(ctx context.Context, userID, otherID uint) ([]*models.Message, error)
	UnreadCount(ctx context.Context, userID uint) (int64, error)
}

// ConversationService derives per-counterpart conversation summaries.
type ConversationService interface {
	ListForUser(ctx context.Context, userID uint) ([]*models.Conversation, error)
}

// GuessService covers identity guesses.
type GuessService interface {
	Submit(ctx context.Context, guesserID uint, req *models.GuessRequest) (*models.GuessResult, error)
	ListForUser(ctx context.Context, userID uint) ([]*models.Guess, error)
}

// ExportService builds the personal data takeout.
type ExportService interface {
	ActivityWorkbook(ctx context.Context, userID uint) (*excelize.File, error)
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	// Core service getters
	Auth() AuthService
	User() UserService
	Message() MessageService
	Conversation() ConversationService
	Guess() GuessService
	Export() ExportService

	// Health and lifecycle
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
