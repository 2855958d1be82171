package memory

import (
	"context"
	"sort"
	"time"

	"github.com/masq-social/masq-service/internal/models"
)

// GuessMemory implements repositories.GuessRepository over the shared state
type GuessMemory struct {
	st *state
}

func newGuessMemory(st *state) *GuessMemory {
	return &GuessMemory{st: st}
}

// Create assigns the next guess ID and stores a copy. A creation time
// already set by the caller is kept.
func (g *GuessMemory) Create(ctx context.Context, guess *models.Guess) error {
	g.st.mu.Lock()
	defer g.st.mu.Unlock()

	g.st.nextGuessID++
	guess.ID = g.st.nextGuessID
	if guess.CreatedAt.IsZero() {
		guess.CreatedAt = time.Now().UTC()
	}

	g.st.guesses[guess.ID] = *guess
	return nil
}

// ListForUser returns every guess the user made or received, newest first
func (g *GuessMemory) ListForUser(ctx context.Context, userID uint) ([]*models.Guess, error) {
	g.st.mu.RLock()
	defer g.st.mu.RUnlock()

	guesses := make([]*models.Guess, 0)
	for id := range g.st.guesses {
		guess := g.st.guesses[id]
		if guess.GuesserID == userID || guess.TargetID == userID {
			guesses = append(guesses, &guess)
		}
	}
	sort.Slice(guesses, func(i, j int) bool {
		if guesses[i].CreatedAt.Equal(guesses[j].CreatedAt) {
			return guesses[i].ID > guesses[j].ID
		}
		return guesses[i].CreatedAt.After(guesses[j].CreatedAt)
	})

	return guesses, nil
}
