package memory

import (
	"context"
	"sort"
	"time"

	"github.com/masq-social/masq-service/internal/models"
)

// MessageMemory implements repositories.MessageRepository over the shared
// state
type MessageMemory struct {
	st *state
}

func newMessageMemory(st *state) *MessageMemory {
	return &MessageMemory{st: st}
}

// Create assigns the next message ID and stores a copy with read=false. A
// creation time already set by the caller is kept.
func (m *MessageMemory) Create(ctx context.Context, message *models.Message) error {
	m.st.mu.Lock()
	defer m.st.mu.Unlock()

	m.st.nextMessageID++
	message.ID = m.st.nextMessageID
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}
	message.Read = false

	m.st.messages[message.ID] = *message
	return nil
}

// Between returns the full two-party thread ordered ascending by creation
// time
func (m *MessageMemory) Between(ctx context.Context, userID, otherID uint) ([]*models.Message, error) {
	m.st.mu.RLock()
	defer m.st.mu.RUnlock()

	return m.collect(func(msg *models.Message) bool {
		return (msg.SenderID == userID && msg.ReceiverID == otherID) ||
			(msg.SenderID == otherID && msg.ReceiverID == userID)
	}), nil
}

// ListInvolving returns every message the user sent or received, ordered
// ascending by creation time
func (m *MessageMemory) ListInvolving(ctx context.Context, userID uint) ([]*models.Message, error) {
	m.st.mu.RLock()
	defer m.st.mu.RUnlock()

	return m.collect(func(msg *models.Message) bool {
		return msg.SenderID == userID || msg.ReceiverID == userID
	}), nil
}

// CountUnread counts unread messages addressed to receiverID
func (m *MessageMemory) CountUnread(ctx context.Context, receiverID uint) (int64, error) {
	m.st.mu.RLock()
	defer m.st.mu.RUnlock()

	var count int64
	for _, msg := range m.st.messages {
		if msg.ReceiverID == receiverID && !msg.Read {
			count++
		}
	}
	return count, nil
}

// MarkRead flips read on every message from senderID to receiverID. Already
// read messages stay read, so repeating the call changes nothing.
func (m *MessageMemory) MarkRead(ctx context.Context, senderID, receiverID uint) error {
	m.st.mu.Lock()
	defer m.st.mu.Unlock()

	for id, msg := range m.st.messages {
		if msg.SenderID == senderID && msg.ReceiverID == receiverID && !msg.Read {
			msg.Read = true
			m.st.messages[id] = msg
		}
	}
	return nil
}

// collect copies every matching message sorted ascending by creation time,
// ties broken by ID. Callers must hold at least the read lock.
func (m *MessageMemory) collect(match func(*models.Message) bool) []*models.Message {
	messages := make([]*models.Message, 0)
	for id := range m.st.messages {
		msg := m.st.messages[id]
		if match(&msg) {
			messages = append(messages, &msg)
		}
	}
	sort.Slice(messages, func(i, j int) bool {
		if messages[i].CreatedAt.Equal(messages[j].CreatedAt) {
			return messages[i].ID < messages[j].ID
		}
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
	return messages
}
