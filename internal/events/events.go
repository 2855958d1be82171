// Package events publishes domain events for downstream consumers
// (notification fan-out, class dashboards). Publishing is fire-and-forget:
// services log failures and carry on.
package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	Source  = "masq-service"
	Version = "1.0"
)

// Event types emitted by the service.
const (
	TypeUserRegistered = "user.registered"
	TypeMessageSent    = "message.sent"
	TypeMessagesRead   = "messages.read"
	TypeGuessSubmitted = "guess.submitted"
)

// Event is the envelope every domain event travels in.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// New builds an envelope with a fresh ID and the current timestamp.
func New(eventType string, data interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    Source,
		Version:   Version,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// ===== EVENT PAYLOADS =====

type UserRegisteredData struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	FakeName string `json:"fake_name"`
	School   string `json:"school"`
}

type MessageSentData struct {
	MessageID  uint `json:"message_id"`
	SenderID   uint `json:"sender_id"`
	ReceiverID uint `json:"receiver_id"`
}

type MessagesReadData struct {
	SenderID   uint `json:"sender_id"`
	ReceiverID uint `json:"receiver_id"`
}

type GuessSubmittedData struct {
	GuessID   uint `json:"guess_id"`
	GuesserID uint `json:"guesser_id"`
	TargetID  uint `json:"target_id"`
	Correct   bool `json:"correct"`
}
