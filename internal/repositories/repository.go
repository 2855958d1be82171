package repositories

import (
	"context"
	"errors"
)

// ErrNotFound is the shared absence sentinel. Lookup implementations wrap it
// so callers can branch with IsNotFoundError; list operations return empty
// slices instead.
var ErrNotFound = errors.New("record not found")

// IsNotFoundError reports whether err means the record does not exist.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Repository bundles all entity stores behind one injectable handle
type Repository interface {
	// User domain
	User() UserRepository

	// Messaging domain
	Message() MessageRepository
	Guess() GuessRepository

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager interface for managing repository lifecycle
type RepositoryManager interface {
	// Initialize repositories with backing connections
	Initialize() error

	// Get repository instance
	GetRepository() Repository

	// Health check for all repositories
	HealthCheck(ctx context.Context) error

	// Graceful shutdown
	Shutdown(ctx context.Context) error
}
