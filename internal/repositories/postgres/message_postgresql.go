package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/masq-social/masq-service/internal/models"
	"github.com/masq-social/masq-service/internal/repositories"
)

// MessagePostgreSQL implements repositories.MessageRepository backed by
// PostgreSQL
type MessagePostgreSQL struct {
	db *gorm.DB
}

func NewMessagePostgreSQL(db *gorm.DB) repositories.MessageRepository {
	return &MessagePostgreSQL{db: db}
}

// Create persists a new message with read=false
func (m *MessagePostgreSQL) Create(ctx context.Context, message *models.Message) error {
	message.Read = false
	if err := m.db.WithContext(ctx).Create(message).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// Between returns the full two-party thread ordered ascending by creation
// time
func (m *MessagePostgreSQL) Between(ctx context.Context, userID, otherID uint) ([]*models.Message, error) {
	var messages []*models.Message
	err := m.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, otherID, otherID, userID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get messages between users: %w", err)
	}
	return messages, nil
}

// ListInvolving returns every message the user sent or received, ordered
// ascending by creation time
func (m *MessagePostgreSQL) ListInvolving(ctx context.Context, userID uint) ([]*models.Message, error) {
	var messages []*models.Message
	err := m.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list messages for user: %w", err)
	}
	return messages, nil
}

// CountUnread counts unread messages addressed to receiverID
func (m *MessagePostgreSQL) CountUnread(ctx context.Context, receiverID uint) (int64, error) {
	var count int64
	err := m.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return count, nil
}

// MarkRead flips read on every message from senderID to receiverID; already
// read rows are skipped so the update is idempotent.
func (m *MessagePostgreSQL) MarkRead(ctx context.Context, senderID, receiverID uint) error {
	err := m.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", senderID, receiverID, false).
		Update("is_read", true).Error
	if err != nil {
		return fmt.Errorf("failed to mark messages read: %w", err)
	}
	return nil
}
