package models

import (
	"time"
)

type Guess struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	GuesserID   uint   `json:"guesser_id" gorm:"not null;index"`
	TargetID    uint   `json:"target_id" gorm:"not null;index"`
	GuessedName string `json:"guessed_name" gorm:"not null;size:100"`

	// Correct is decided by the caller against the target's real name;
	// the store persists it as-is.
	Correct bool `json:"correct" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

func (Guess) TableName() string {
	return "guesses"
}
