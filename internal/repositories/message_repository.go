package repositories

import (
	"context"

	"github.com/masq-social/masq-service/internal/models"
)

// MessageRepository interface for direct-message storage
type MessageRepository interface {
	// Create stamps the creation time, assigns the ID and persists the
	// message with read=false.
	Create(ctx context.Context, message *models.Message) error

	// Between returns the full two-party thread (both directions) ordered
	// ascending by creation time.
	Between(ctx context.Context, userID, otherID uint) ([]*models.Message, error)

	// ListInvolving returns every message the user sent or received,
	// ordered ascending by creation time.
	ListInvolving(ctx context.Context, userID uint) ([]*models.Message, error)

	// CountUnread counts messages addressed to receiverID with read=false
	CountUnread(ctx context.Context, receiverID uint) (int64, error)

	// MarkRead flips read on every message from senderID to receiverID.
	// Calling it again is a no-op.
	MarkRead(ctx context.Context, senderID, receiverID uint) error
}
