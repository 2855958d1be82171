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

func newExportFixture(t *testing.T) (repositories.Repository, ExportService) {
	t.Helper()

	repo := memory.NewRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return repo, NewExportService(repo, logger)
}

func TestExportService_ActivityWorkbook(t *testing.T) {
	ctx := context.Background()
	repo, service := newExportFixture(t)

	me := &models.User{Username: "me", RealName: "Mia Moore", FakeName: "Blue Fox", AvatarType: models.AvatarAnimal, AvatarID: 7}
	require.NoError(t, repo.User().Create(ctx, me))
	other := &models.User{Username: "other", RealName: "Ada Adams", FakeName: "Green Elf", AvatarType: models.AvatarFantasy}
	require.NoError(t, repo.User().Create(ctx, other))

	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Message().Create(ctx, &models.Message{SenderID: me.ID, ReceiverID: other.ID, Content: "hello there", CreatedAt: at}))
	require.NoError(t, repo.Guess().Create(ctx, &models.Guess{GuesserID: me.ID, TargetID: other.ID, GuessedName: "Ada Adams", Correct: true, CreatedAt: at}))

	f, err := service.ActivityWorkbook(ctx, me.ID)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"Profile", "Messages", "Guesses"}, f.GetSheetList())

	// Profile carries the owner's private fields.
	name, err := f.GetCellValue("Profile", "B4")
	require.NoError(t, err)
	assert.Equal(t, "Mia Moore", name)

	// Messages reference counterparts by alias only.
	direction, err := f.GetCellValue("Messages", "A2")
	require.NoError(t, err)
	assert.Equal(t, "sent", direction)

	alias, err := f.GetCellValue("Messages", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Green Elf", alias)

	content, err := f.GetCellValue("Messages", "C2")
	require.NoError(t, err)
	assert.Equal(t, "hello there", content)

	guessed, err := f.GetCellValue("Guesses", "C2")
	require.NoError(t, err)
	assert.Equal(t, "Ada Adams", guessed)
}

func TestExportService_ActivityWorkbookUnknownUser(t *testing.T) {
	ctx := context.Background()
	_, service := newExportFixture(t)

	_, err := service.ActivityWorkbook(ctx, 42)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestExportService_DanglingCounterpart(t *testing.T) {
	ctx := context.Background()
	repo, service := newExportFixture(t)

	me := &models.User{Username: "me", RealName: "Mia Moore", FakeName: "Blue Fox", AvatarType: models.AvatarAnimal}
	require.NoError(t, repo.User().Create(ctx, me))

	require.NoError(t, repo.Message().Create(ctx, &models.Message{SenderID: 9999, ReceiverID: me.ID, Content: "ghost mail"}))

	f, err := service.ActivityWorkbook(ctx, me.ID)
	require.NoError(t, err)

	alias, err := f.GetCellValue("Messages", "B2")
	require.NoError(t, err)
	assert.Equal(t, "user 9999", alias)
}
