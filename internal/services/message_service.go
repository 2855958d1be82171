package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/masq-social/masq-service/internal/events"
	"github.com/masq-social/masq-service/internal/models"
	"github.com/masq-social/masq-service/internal/moderation"
	"github.com/masq-social/masq-service/internal/repositories"
	"github.com/masq-social/masq-service/internal/validator"
)

type messageService struct {
	repo      repositories.Repository
	sanitizer *moderation.Sanitizer
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewMessageService(repo repositories.Repository, sanitizer *moderation.Sanitizer, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) MessageService {
	return &messageService{
		repo:      repo,
		sanitizer: sanitizer,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// ===== SENDING =====

func (s *messageService) Send(ctx context.Context, senderID uint, req *models.SendMessageRequest) (*models.Message, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	if req.ReceiverID == senderID {
		return nil, validator.ValidationErrors{{
			Field:   "receiver_id",
			Message: "cannot message yourself",
			Rule:    "business_logic",
		}}
	}

	if _, err := s.repo.User().GetByID(ctx, req.ReceiverID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrReceiverNotFound
		}
		return nil, fmt.Errorf("failed to load receiver: %w", err)
	}

	message := &models.Message{
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		Content:    s.sanitizer.Sanitize(strings.TrimSpace(req.Content)),
	}

	if err := s.repo.Message().Create(ctx, message); err != nil {
		s.logger.Error("Failed to create message", "sender_id", senderID, "receiver_id", req.ReceiverID, "error", err)
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	s.publishEvent(ctx, events.New(events.TypeMessageSent, events.MessageSentData{
		MessageID:  message.ID,
		SenderID:   message.SenderID,
		ReceiverID: message.ReceiverID,
	}))

	s.logger.Info("Message sent", "message_id", message.ID, "sender_id", senderID, "receiver_id", req.ReceiverID)

	return message, nil
}

// ===== READING =====

// Thread loads the two-party conversation and flips the counterpart's unread
// messages to read, so the returned thread already reflects the new state.
func (s *messageService) Thread(ctx context.Context, userID, otherID uint) ([]*models.Message, error) {
	if _, err := s.repo.User().GetByID(ctx, otherID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load counterpart: %w", err)
	}

	messages, err := s.repo.Message().Between(ctx, userID, otherID)
	if err != nil {
		return nil, fmt.Errorf("failed to load thread: %w", err)
	}

	unread := 0
	for _, message := range messages {
		if message.ReceiverID == userID && !message.Read {
			unread++
		}
	}

	if unread > 0 {
		if err := s.repo.Message().MarkRead(ctx, otherID, userID); err != nil {
			return nil, fmt.Errorf("failed to mark messages read: %w", err)
		}
		for _, message := range messages {
			if message.ReceiverID == userID {
				message.Read = true
			}
		}

		s.publishEvent(ctx, events.New(events.TypeMessagesRead, events.MessagesReadData{
			SenderID:   otherID,
			ReceiverID: userID,
		}))
	}

	return messages, nil
}

func (s *messageService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	count, err := s.repo.Message().CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return count, nil
}

func (s *messageService) publishEvent(ctx context.Context, event *events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish event", "type", event.Type, "error", err)
	}
}
