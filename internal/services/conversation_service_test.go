package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/masq-social/masq-service/internal/models"
	"github.com/masq-social/masq-service/internal/repositories"
	"github.com/masq-social/masq-service/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type conversationFixture struct {
	repo    repositories.Repository
	service ConversationService
}

func newConversationFixture(t *testing.T) *conversationFixture {
	t.Helper()

	repo := memory.NewRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &conversationFixture{
		repo:    repo,
		service: NewConversationService(repo, logger),
	}
}

func (f *conversationFixture) seedUser(t *testing.T, username, realName, fakeName string) *models.User {
	t.Helper()

	user := &models.User{
		Username:   username,
		RealName:   realName,
		FakeName:   fakeName,
		AvatarType: models.AvatarFantasy,
	}
	require.NoError(t, f.repo.User().Create(context.Background(), user))
	return user
}

func (f *conversationFixture) seedMessage(t *testing.T, senderID, receiverID uint, content string, at time.Time) {
	t.Helper()

	msg := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		CreatedAt:  at,
	}
	require.NoError(t, f.repo.Message().Create(context.Background(), msg))
}

func TestConversationService_ListForUser(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("orders by latest activity", func(t *testing.T) {
		f := newConversationFixture(t)

		me := f.seedUser(t, "me", "Mia Moore", "Blue Fox")
		a := f.seedUser(t, "aaa", "Ada Adams", "Green Elf")
		b := f.seedUser(t, "bbb", "Ben Burke", "Grey Wolf")

		// A first, then B, then A again: A's thread carries the newest
		// message and must come first.
		f.seedMessage(t, me.ID, a.ID, "first to a", base)
		f.seedMessage(t, b.ID, me.ID, "from b", base.Add(1*time.Minute))
		f.seedMessage(t, a.ID, me.ID, "latest from a", base.Add(2*time.Minute))

		conversations, err := f.service.ListForUser(ctx, me.ID)
		require.NoError(t, err)
		require.Len(t, conversations, 2)

		assert.Equal(t, a.ID, conversations[0].UserID)
		assert.Equal(t, "Green Elf", conversations[0].FakeName)
		require.NotNil(t, conversations[0].LastMessage)
		assert.Equal(t, "latest from a", *conversations[0].LastMessage)
		require.NotNil(t, conversations[0].LastMessageTime)
		assert.True(t, conversations[0].LastMessageTime.Equal(base.Add(2*time.Minute)))

		assert.Equal(t, b.ID, conversations[1].UserID)
		require.NotNil(t, conversations[1].LastMessage)
		assert.Equal(t, "from b", *conversations[1].LastMessage)
	})

	t.Run("counts only unread from the counterpart", func(t *testing.T) {
		f := newConversationFixture(t)

		me := f.seedUser(t, "me", "Mia Moore", "Blue Fox")
		a := f.seedUser(t, "aaa", "Ada Adams", "Green Elf")

		f.seedMessage(t, a.ID, me.ID, "unread one", base)
		f.seedMessage(t, a.ID, me.ID, "unread two", base.Add(time.Minute))
		f.seedMessage(t, me.ID, a.ID, "my own reply", base.Add(2*time.Minute))

		conversations, err := f.service.ListForUser(ctx, me.ID)
		require.NoError(t, err)
		require.Len(t, conversations, 1)
		assert.Equal(t, 2, conversations[0].UnreadCount)

		require.NoError(t, f.repo.Message().MarkRead(ctx, a.ID, me.ID))

		conversations, err = f.service.ListForUser(ctx, me.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, conversations[0].UnreadCount)
	})

	t.Run("skips counterparts that no longer exist", func(t *testing.T) {
		f := newConversationFixture(t)

		me := f.seedUser(t, "me", "Mia Moore", "Blue Fox")
		a := f.seedUser(t, "aaa", "Ada Adams", "Green Elf")

		f.seedMessage(t, a.ID, me.ID, "real thread", base)
		// The store accepts foreign keys it has never seen.
		f.seedMessage(t, 9999, me.ID, "ghost mail", base.Add(time.Minute))

		conversations, err := f.service.ListForUser(ctx, me.ID)
		require.NoError(t, err)
		require.Len(t, conversations, 1)
		assert.Equal(t, a.ID, conversations[0].UserID)
	})

	t.Run("no messages means no conversations", func(t *testing.T) {
		f := newConversationFixture(t)

		me := f.seedUser(t, "me", "Mia Moore", "Blue Fox")
		f.seedUser(t, "aaa", "Ada Adams", "Green Elf")

		conversations, err := f.service.ListForUser(ctx, me.ID)
		require.NoError(t, err)
		assert.Empty(t, conversations)
	})

	t.Run("equal timestamps keep encounter order", func(t *testing.T) {
		f := newConversationFixture(t)

		me := f.seedUser(t, "me", "Mia Moore", "Blue Fox")
		a := f.seedUser(t, "aaa", "Ada Adams", "Green Elf")
		b := f.seedUser(t, "bbb", "Ben Burke", "Grey Wolf")

		f.seedMessage(t, a.ID, me.ID, "tie a", base)
		f.seedMessage(t, b.ID, me.ID, "tie b", base)

		conversations, err := f.service.ListForUser(ctx, me.ID)
		require.NoError(t, err)
		require.Len(t, conversations, 2)
		assert.Equal(t, a.ID, conversations[0].UserID)
		assert.Equal(t, b.ID, conversations[1].UserID)
	})
}
