package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/masq-social/masq-service/internal/models"
	"github.com/masq-social/masq-service/internal/repositories"
	"github.com/xuri/excelize/v2"
)

const (
	profileSheet  = "Profile"
	messagesSheet = "Messages"
	guessesSheet  = "Guesses"
)

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		logger: logger,
	}
}

// ActivityWorkbook assembles the user's takeout: their profile, every
// message they sent or received, and every guess they made or were the
// target of. Counterparts appear by alias only.
func (s *exportService) ActivityWorkbook(ctx context.Context, userID uint) (*excelize.File, error) {
	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	messages, err := s.repo.Message().ListInvolving(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}

	guesses, err := s.repo.Guess().ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load guesses: %w", err)
	}

	aliases := s.resolveAliases(ctx, userID, messages, guesses)

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", profileSheet); err != nil {
		return nil, fmt.Errorf("failed to name profile sheet: %w", err)
	}

	s.writeProfileSheet(f, user)
	if err := s.writeMessagesSheet(f, userID, messages, aliases); err != nil {
		return nil, err
	}
	if err := s.writeGuessesSheet(f, userID, guesses, aliases); err != nil {
		return nil, err
	}

	s.logger.Info("Export workbook built", "user_id", userID, "messages", len(messages), "guesses", len(guesses))

	return f, nil
}

// resolveAliases maps every counterpart id in the export to its alias, one
// lookup per id. Deleted users keep a placeholder so the export still
// renders.
func (s *exportService) resolveAliases(ctx context.Context, userID uint, messages []*models.Message, guesses []*models.Guess) map[uint]string {
	ids := make(map[uint]struct{})
	for _, message := range messages {
		other := message.SenderID
		if other == userID {
			other = message.ReceiverID
		}
		ids[other] = struct{}{}
	}
	for _, guess := range guesses {
		other := guess.GuesserID
		if other == userID {
			other = guess.TargetID
		}
		ids[other] = struct{}{}
	}

	aliases := make(map[uint]string, len(ids))
	for id := range ids {
		if user, err := s.repo.User().GetByID(ctx, id); err == nil {
			aliases[id] = user.FakeName
		} else {
			aliases[id] = fmt.Sprintf("user %d", id)
		}
	}
	return aliases
}

func (s *exportService) writeProfileSheet(f *excelize.File, user *models.User) {
	rows := [][2]interface{}{
		{"Field", "Value"},
		{"ID", user.ID},
		{"Username", user.Username},
		{"Real name", user.RealName},
		{"Alias", user.FakeName},
		{"Age", user.Age},
		{"School", user.School},
		{"Class", user.ClassInfo},
		{"Avatar", fmt.Sprintf("%s #%d", user.AvatarType, user.AvatarID)},
		{"Registered", user.CreatedAt.Format(time.RFC3339)},
		{"Last active", user.LastActive.Format(time.RFC3339)},
	}
	for i, row := range rows {
		f.SetCellValue(profileSheet, fmt.Sprintf("A%d", i+1), row[0])
		f.SetCellValue(profileSheet, fmt.Sprintf("B%d", i+1), row[1])
	}
	f.SetColWidth(profileSheet, "A", "A", 14)
	f.SetColWidth(profileSheet, "B", "B", 32)
}

func (s *exportService) writeMessagesSheet(f *excelize.File, userID uint, messages []*models.Message, aliases map[uint]string) error {
	if _, err := f.NewSheet(messagesSheet); err != nil {
		return fmt.Errorf("failed to create messages sheet: %w", err)
	}

	headers := []string{"Direction", "Counterpart", "Content", "Sent at", "Read"}
	for i, h := range headers {
		f.SetCellValue(messagesSheet, fmt.Sprintf("%c1", 'A'+i), h)
	}

	for idx, message := range messages {
		row := idx + 2
		direction := "received"
		other := message.SenderID
		if message.SenderID == userID {
			direction = "sent"
			other = message.ReceiverID
		}

		f.SetCellValue(messagesSheet, fmt.Sprintf("A%d", row), direction)
		f.SetCellValue(messagesSheet, fmt.Sprintf("B%d", row), aliases[other])
		f.SetCellValue(messagesSheet, fmt.Sprintf("C%d", row), message.Content)
		f.SetCellValue(messagesSheet, fmt.Sprintf("D%d", row), message.CreatedAt.Format(time.RFC3339))
		f.SetCellValue(messagesSheet, fmt.Sprintf("E%d", row), message.Read)
	}

	f.SetColWidth(messagesSheet, "A", "B", 14)
	f.SetColWidth(messagesSheet, "C", "C", 48)
	f.SetColWidth(messagesSheet, "D", "D", 22)

	return nil
}

func (s *exportService) writeGuessesSheet(f *excelize.File, userID uint, guesses []*models.Guess, aliases map[uint]string) error {
	if _, err := f.NewSheet(guessesSheet); err != nil {
		return fmt.Errorf("failed to create guesses sheet: %w", err)
	}

	headers := []string{"Direction", "Counterpart", "Guessed name", "Correct", "At"}
	for i, h := range headers {
		f.SetCellValue(guessesSheet, fmt.Sprintf("%c1", 'A'+i), h)
	}

	for idx, guess := range guesses {
		row := idx + 2
		direction := "received"
		other := guess.GuesserID
		if guess.GuesserID == userID {
			direction = "made"
			other = guess.TargetID
		}

		f.SetCellValue(guessesSheet, fmt.Sprintf("A%d", row), direction)
		f.SetCellValue(guessesSheet, fmt.Sprintf("B%d", row), aliases[other])
		f.SetCellValue(guessesSheet, fmt.Sprintf("C%d", row), guess.GuessedName)
		f.SetCellValue(guessesSheet, fmt.Sprintf("D%d", row), guess.Correct)
		f.SetCellValue(guessesSheet, fmt.Sprintf("E%d", row), guess.CreatedAt.Format(time.RFC3339))
	}

	f.SetColWidth(guessesSheet, "A", "C", 16)
	f.SetColWidth(guessesSheet, "E", "E", 22)

	return nil
}
