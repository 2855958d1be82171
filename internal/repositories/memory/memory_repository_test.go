package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masq-social/masq-service/internal/models"
	"github.com/masq-social/masq-service/internal/repositories"
)

func newTestUser(username, realName, fakeName string) *models.User {
	return &models.User{
		Username:     username,
		PasswordHash: "x",
		RealName:     realName,
		FakeName:     fakeName,
		Age:          14,
		School:       "Riverside Middle",
		ClassInfo:    "8B",
		AvatarType:   models.AvatarAnimal,
		AvatarID:     3,
	}
}

func TestUserMemory_CreateAssignsSequentialIDs(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	first := newTestUser("ana", "Ana Petrova", "Foxglove")
	second := newTestUser("ben", "Ben Okafor", "Thunderwing")

	require.NoError(t, repo.User().Create(ctx, first))
	require.NoError(t, repo.User().Create(ctx, second))

	assert.Equal(t, uint(1), first.ID)
	assert.Equal(t, uint(2), second.ID)
	assert.False(t, first.LastActive.IsZero())
}

func TestUserMemory_LookupsAreCaseInsensitive(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	user := newTestUser("JaneD", "Jane Doe", "Moonfox")
	require.NoError(t, repo.User().Create(ctx, user))

	t.Run("by username", func(t *testing.T) {
		got, err := repo.User().GetByUsername(ctx, "janed")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)

		got, err = repo.User().GetByUsername(ctx, "JANED")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("by real name", func(t *testing.T) {
		got, err := repo.User().GetByRealName(ctx, "jane doe")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("miss yields not found", func(t *testing.T) {
		_, err := repo.User().GetByUsername(ctx, "nobody")
		require.Error(t, err)
		assert.True(t, repositories.IsNotFoundError(err))
	})
}

func TestUserMemory_GetByIDMissYieldsNotFound(t *testing.T) {
	repo := NewRepository()

	_, err := repo.User().GetByID(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, repositories.IsNotFoundError(err))
}

func TestUserMemory_TouchLastActive(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	user := newTestUser("ana", "Ana Petrova", "Foxglove")
	user.LastActive = time.Now().UTC().Add(-time.Hour)
	require.NoError(t, repo.User().Create(ctx, user))

	before := user.LastActive
	require.NoError(t, repo.User().TouchLastActive(ctx, user.ID))

	got, err := repo.User().GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, got.LastActive.After(before))

	// Unknown ids must not error
	require.NoError(t, repo.User().TouchLastActive(ctx, 999))
}

func TestUserMemory_ListReturnsCopiesInIDOrder(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	require.NoError(t, repo.User().Create(ctx, newTestUser("ana", "Ana Petrova", "Foxglove")))
	require.NoError(t, repo.User().Create(ctx, newTestUser("ben", "Ben Okafor", "Thunderwing")))
	require.NoError(t, repo.User().Create(ctx, newTestUser("chi", "Chi Tran", "Nightbloom")))

	users, err := repo.User().List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, []uint{1, 2, 3}, []uint{users[0].ID, users[1].ID, users[2].ID})

	// Mutating a returned user must not leak into the store
	users[0].FakeName = "changed"
	fresh, err := repo.User().GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Foxglove", fresh.FakeName)
}

func seedMessage(t *testing.T, repo repositories.Repository, sender, receiver uint, content string, at time.Time) *models.Message {
	t.Helper()
	msg := &models.Message{
		SenderID:   sender,
		ReceiverID: receiver,
		Content:    content,
		CreatedAt:  at,
	}
	require.NoError(t, repo.Message().Create(context.Background(), msg))
	return msg
}

func TestMessageMemory_CreateStartsUnread(t *testing.T) {
	repo := NewRepository()

	msg := &models.Message{SenderID: 1, ReceiverID: 2, Content: "hi", Read: true}
	require.NoError(t, repo.Message().Create(context.Background(), msg))

	assert.Equal(t, uint(1), msg.ID)
	assert.False(t, msg.Read)
	assert.False(t, msg.CreatedAt.IsZero())
}

func TestMessageMemory_BetweenCoversBothDirections(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	seedMessage(t, repo, 1, 2, "first", base)
	seedMessage(t, repo, 2, 1, "second", base.Add(time.Minute))
	seedMessage(t, repo, 1, 3, "other thread", base.Add(2*time.Minute))
	seedMessage(t, repo, 1, 2, "third", base.Add(3*time.Minute))

	thread, err := repo.Message().Between(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, thread, 3)
	assert.Equal(t, "first", thread[0].Content)
	assert.Equal(t, "second", thread[1].Content)
	assert.Equal(t, "third", thread[2].Content)

	// Same thread regardless of argument order
	flipped, err := repo.Message().Between(ctx, 2, 1)
	require.NoError(t, err)
	require.Len(t, flipped, 3)
	assert.Equal(t, thread[0].ID, flipped[0].ID)
}

func TestMessageMemory_BetweenTiesBreakByID(t *testing.T) {
	repo := NewRepository()
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	a := seedMessage(t, repo, 1, 2, "a", at)
	b := seedMessage(t, repo, 2, 1, "b", at)

	thread, err := repo.Message().Between(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.Equal(t, a.ID, thread[0].ID)
	assert.Equal(t, b.ID, thread[1].ID)
}

func TestMessageMemory_UnreadCountAndMarkRead(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	seedMessage(t, repo, 1, 2, "one", base)
	seedMessage(t, repo, 1, 2, "two", base.Add(time.Minute))
	seedMessage(t, repo, 3, 2, "three", base.Add(2*time.Minute))
	seedMessage(t, repo, 2, 1, "reply", base.Add(3*time.Minute))

	count, err := repo.Message().CountUnread(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	// Reading the thread from user 1 leaves user 3's message untouched
	require.NoError(t, repo.Message().MarkRead(ctx, 1, 2))

	count, err = repo.Message().CountUnread(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Idempotent: marking again changes nothing
	require.NoError(t, repo.Message().MarkRead(ctx, 1, 2))
	count, err = repo.Message().CountUnread(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	thread, err := repo.Message().Between(ctx, 1, 2)
	require.NoError(t, err)
	for _, msg := range thread {
		if msg.ReceiverID == 2 {
			assert.True(t, msg.Read)
		} else {
			assert.False(t, msg.Read, "sender side must stay untouched")
		}
	}
}

func TestMessageMemory_ListInvolving(t *testing.T) {
	repo := NewRepository()
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	seedMessage(t, repo, 1, 2, "a", base)
	seedMessage(t, repo, 3, 1, "b", base.Add(time.Minute))
	seedMessage(t, repo, 2, 3, "unrelated", base.Add(2*time.Minute))

	involving, err := repo.Message().ListInvolving(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, involving, 2)
	assert.Equal(t, "a", involving[0].Content)
	assert.Equal(t, "b", involving[1].Content)
}

func TestGuessMemory_ListForUserNewestFirst(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	older := &models.Guess{GuesserID: 1, TargetID: 2, GuessedName: "Jane Doe", Correct: true, CreatedAt: base}
	newer := &models.Guess{GuesserID: 3, TargetID: 1, GuessedName: "Ana Petrova", CreatedAt: base.Add(time.Hour)}
	unrelated := &models.Guess{GuesserID: 2, TargetID: 3, GuessedName: "Chi Tran", CreatedAt: base.Add(2 * time.Hour)}

	require.NoError(t, repo.Guess().Create(ctx, older))
	require.NoError(t, repo.Guess().Create(ctx, newer))
	require.NoError(t, repo.Guess().Create(ctx, unrelated))

	guesses, err := repo.Guess().ListForUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, guesses, 2)
	assert.Equal(t, newer.ID, guesses[0].ID, "made or received, newest first")
	assert.Equal(t, older.ID, guesses[1].ID)
}

func TestManager_Lifecycle(t *testing.T) {
	mgr := NewRepositoryManager()
	ctx := context.Background()

	require.Error(t, mgr.HealthCheck(ctx), "health check must fail before Initialize")
	require.NoError(t, mgr.Initialize())
	require.NoError(t, mgr.HealthCheck(ctx))
	require.NotNil(t, mgr.GetRepository())
	require.NoError(t, mgr.Shutdown(ctx))
}
