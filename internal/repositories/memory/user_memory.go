package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/masq-social/masq-service/internal/models"
	"github.com/masq-social/masq-service/internal/repositories"
)

// UserMemory implements repositories.UserRepository over the shared state
type UserMemory struct {
	st *state
}

func newUserMemory(st *state) *UserMemory {
	return &UserMemory{st: st}
}

// Create assigns the next user ID and stores a copy. Timestamps already set
// by the caller are kept, zero ones are stamped with the current time.
func (u *UserMemory) Create(ctx context.Context, user *models.User) error {
	u.st.mu.Lock()
	defer u.st.mu.Unlock()

	u.st.nextUserID++
	user.ID = u.st.nextUserID

	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.LastActive.IsZero() {
		user.LastActive = now
	}
	user.UpdatedAt = now

	u.st.users[user.ID] = *user
	return nil
}

// GetByID retrieves a user by ID
func (u *UserMemory) GetByID(ctx context.Context, id uint) (*models.User, error) {
	u.st.mu.RLock()
	defer u.st.mu.RUnlock()

	user, ok := u.st.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, repositories.ErrNotFound)
	}
	return &user, nil
}

// GetByUsername retrieves a user by username, matching case-insensitively.
// With several matches the earliest registered wins.
func (u *UserMemory) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	u.st.mu.RLock()
	defer u.st.mu.RUnlock()

	return u.findFirst(func(user *models.User) bool {
		return strings.EqualFold(user.Username, username)
	}, "username "+username)
}

// GetByRealName retrieves a user by real name, matching case-insensitively
func (u *UserMemory) GetByRealName(ctx context.Context, realName string) (*models.User, error) {
	u.st.mu.RLock()
	defer u.st.mu.RUnlock()

	return u.findFirst(func(user *models.User) bool {
		return strings.EqualFold(user.RealName, realName)
	}, "real name "+realName)
}

// List returns every user ordered by ID
func (u *UserMemory) List(ctx context.Context) ([]*models.User, error) {
	u.st.mu.RLock()
	defer u.st.mu.RUnlock()

	users := make([]*models.User, 0, len(u.st.users))
	for id := range u.st.users {
		user := u.st.users[id]
		users = append(users, &user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })

	return users, nil
}

// TouchLastActive stamps the user's last activity; unknown ids are a silent
// no-op.
func (u *UserMemory) TouchLastActive(ctx context.Context, id uint) error {
	u.st.mu.Lock()
	defer u.st.mu.Unlock()

	user, ok := u.st.users[id]
	if !ok {
		return nil
	}

	now := time.Now().UTC()
	user.LastActive = now
	user.UpdatedAt = now
	u.st.users[id] = user

	return nil
}

// findFirst scans for the lowest-ID user matching the predicate. Callers
// must hold at least the read lock.
func (u *UserMemory) findFirst(match func(*models.User) bool, desc string) (*models.User, error) {
	var found *models.User
	for id := range u.st.users {
		user := u.st.users[id]
		if !match(&user) {
			continue
		}
		if found == nil || user.ID < found.ID {
			found = &user
		}
	}
	if found == nil {
		return nil, fmt.Errorf("user with %s: %w", desc, repositories.ErrNotFound)
	}
	return found, nil
}
