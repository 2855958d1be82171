package models

import (
	"time"
)

type RegisterRequest struct {
	Username   string     `json:"username" validate:"required,username"`
	Password   string     `json:"password" validate:"required,min=8,max=72"`
	RealName   string     `json:"real_name" validate:"required,notblank,min=2,max=100"`
	FakeName   string     `json:"fake_name" validate:"required,notblank,min=2,max=32"`
	Age        int        `json:"age" validate:"required,min=5,max=120"`
	School     string     `json:"school" validate:"required,max=200"`
	ClassInfo  string     `json:"class_info" validate:"required,max=100"`
	AvatarType AvatarType `json:"avatar_type" validate:"required,oneof=animal fantasy"`
	AvatarID   int        `json:"avatar_id" validate:"min=0,max=99"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SendMessageRequest struct {
	ReceiverID uint   `json:"receiver_id" validate:"required"`
	Content    string `json:"content" validate:"required,notblank,max=2000"`
}

type GuessRequest struct {
	TargetID    uint   `json:"target_id" validate:"required"`
	GuessedName string `json:"guessed_name" validate:"required,notblank,max=100"`
}

// PublicProfile is the subset of a user visible to everyone else.
type PublicProfile struct {
	ID         uint       `json:"id"`
	FakeName   string     `json:"fake_name"`
	AvatarType AvatarType `json:"avatar_type"`
	AvatarID   int        `json:"avatar_id"`
	LastActive time.Time  `json:"last_active"`
}

// Conversation is derived per request, never persisted. UserID is the
// counterpart; LastMessage/LastMessageTime stay nil when no message between
// the pair survives.
type Conversation struct {
	UserID          uint       `json:"user_id"`
	FakeName        string     `json:"fake_name"`
	AvatarType      AvatarType `json:"avatar_type"`
	AvatarID        int        `json:"avatar_id"`
	LastMessage     *string    `json:"last_message"`
	LastMessageTime *time.Time `json:"last_message_time"`
	UnreadCount     int        `json:"unread_count"`
}

// GuessResult mirrors the stored guess; TargetRealName is present only when
// the guess was correct.
type GuessResult struct {
	ID             uint      `json:"id"`
	GuesserID      uint      `json:"guesser_id"`
	TargetID       uint      `json:"target_id"`
	GuessedName    string    `json:"guessed_name"`
	Correct        bool      `json:"correct"`
	CreatedAt      time.Time `json:"created_at"`
	TargetRealName *string   `json:"target_real_name,omitempty"`
}

type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}
