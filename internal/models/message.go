package models

import (
	"time"
)

type Message struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	SenderID   uint   `json:"sender_id" gorm:"not null;index:idx_messages_pair"`
	ReceiverID uint   `json:"receiver_id" gorm:"not null;index:idx_messages_pair;index"`
	Content    string `json:"content" gorm:"type:text;not null"`

	// Read only ever flips false -> true.
	Read bool `json:"read" gorm:"column:is_read;not null;default:false"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

func (Message) TableName() string {
	return "messages"
}
