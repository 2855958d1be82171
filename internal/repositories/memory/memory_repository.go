// Package memory provides the default map-backed Repository. The whole
// dataset lives in process; every read hands back copies so callers never
// alias store-owned structs.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/masq-social/masq-service/internal/models"
	"github.com/masq-social/masq-service/internal/repositories"
)

// state is the shared map storage behind the per-entity adapters. IDs are
// per-entity counters, monotonically increasing and never reused.
type state struct {
	mu sync.RWMutex

	users    map[uint]models.User
	messages map[uint]models.Message
	guesses  map[uint]models.Guess

	nextUserID    uint
	nextMessageID uint
	nextGuessID   uint
}

func newState() *state {
	return &state{
		users:    make(map[uint]models.User),
		messages: make(map[uint]models.Message),
		guesses:  make(map[uint]models.Guess),
	}
}

// MemoryRepository implements the main Repository interface over in-process
// maps
type MemoryRepository struct {
	st *state

	// Repository instances
	user    repositories.UserRepository
	message repositories.MessageRepository
	guess   repositories.GuessRepository
}

// NewRepository creates the map-backed repository with all sub-repositories
func NewRepository() repositories.Repository {
	st := newState()

	return &MemoryRepository{
		st:      st,
		user:    newUserMemory(st),
		message: newMessageMemory(st),
		guess:   newGuessMemory(st),
	}
}

// User returns the user repository
func (r *MemoryRepository) User() repositories.UserRepository {
	return r.user
}

// Message returns the message repository
func (r *MemoryRepository) Message() repositories.MessageRepository {
	return r.message
}

// Guess returns the guess repository
func (r *MemoryRepository) Guess() repositories.GuessRepository {
	return r.guess
}

// Ping always succeeds, the maps need no connection
func (r *MemoryRepository) Ping(ctx context.Context) error {
	return nil
}

// Close releases nothing, it exists to satisfy the Repository contract
func (r *MemoryRepository) Close() error {
	return nil
}

// Manager implements the RepositoryManager interface for the map-backed
// repository
type Manager struct {
	repo repositories.Repository
}

// NewRepositoryManager creates a new manager for the map-backed repository
func NewRepositoryManager() repositories.RepositoryManager {
	return &Manager{}
}

// Initialize builds the repository, there are no connections to test
func (m *Manager) Initialize() error {
	m.repo = NewRepository()
	return nil
}

// GetRepository returns the repository instance
func (m *Manager) GetRepository() repositories.Repository {
	return m.repo
}

// HealthCheck checks the repository is initialized
func (m *Manager) HealthCheck(ctx context.Context) error {
	if m.repo == nil {
		return fmt.Errorf("repository not initialized")
	}

	return m.repo.Ping(ctx)
}

// Shutdown gracefully shuts down the repository
func (m *Manager) Shutdown(ctx context.Context) error {
	if m.repo == nil {
		return nil
	}

	return m.repo.Close()
}
