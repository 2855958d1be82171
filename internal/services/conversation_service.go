package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/masq-social/masq-service/internal/models"
	"github.com/masq-social/masq-service/internal/repositories"
)

type conversationService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewConversationService(repo repositories.Repository, logger *slog.Logger) ConversationService {
	return &conversationService{
		repo:   repo,
		logger: logger,
	}
}

// threadDigest is the per-counterpart state accumulated during the scan.
type threadDigest struct {
	last   *models.Message
	unread int
}

// ListForUser recomputes the caller's conversation list from scratch. One
// pass over the user's messages collects, per counterpart, the newest
// message and the unread count; counterparts whose user record no longer
// exists are skipped silently.
func (s *conversationService) ListForUser(ctx context.Context, userID uint) ([]*models.Conversation, error) {
	messages, err := s.repo.Message().ListInvolving(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}

	// Counterparts keep first-encounter order so equal timestamps stay stable.
	order := make([]uint, 0)
	digests := make(map[uint]*threadDigest)

	for _, message := range messages {
		other := message.SenderID
		if other == userID {
			other = message.ReceiverID
		}

		digest, ok := digests[other]
		if !ok {
			digest = &threadDigest{}
			digests[other] = digest
			order = append(order, other)
		}

		// Messages arrive ascending, so the latest seen wins.
		digest.last = message
		if message.ReceiverID == userID && !message.Read {
			digest.unread++
		}
	}

	conversations := make([]*models.Conversation, 0, len(order))
	for _, otherID := range order {
		other, err := s.repo.User().GetByID(ctx, otherID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				s.logger.Debug("Skipping conversation with missing user", "user_id", otherID)
				continue
			}
			return nil, fmt.Errorf("failed to load counterpart %d: %w", otherID, err)
		}

		digest := digests[otherID]
		conversation := &models.Conversation{
			UserID:      other.ID,
			FakeName:    other.FakeName,
			AvatarType:  other.AvatarType,
			AvatarID:    other.AvatarID,
			UnreadCount: digest.unread,
		}
		if digest.last != nil {
			content := digest.last.Content
			at := digest.last.CreatedAt
			conversation.LastMessage = &content
			conversation.LastMessageTime = &at
		}

		conversations = append(conversations, conversation)
	}

	// Newest activity first. Entries without a message time sort last; ties
	// keep encounter order.
	sort.SliceStable(conversations, func(i, j int) bool {
		ti, tj := conversations[i].LastMessageTime, conversations[j].LastMessageTime
		if ti == nil {
			return false
		}
		if tj == nil {
			return true
		}
		return ti.After(*tj)
	})

	return conversations, nil
}
