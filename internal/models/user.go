package models

import (
	"time"
)

type AvatarType string

const (
	AvatarAnimal  AvatarType = "animal"
	AvatarFantasy AvatarType = "fantasy"
)

type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Username     string `json:"username" gorm:"uniqueIndex;not null;size:64"`
	PasswordHash string `json:"-" gorm:"not null;size:255"`

	// Identity to be guessed
	RealName string `json:"real_name" gorm:"not null;size:100;index"`

	// Public persona
	FakeName   string     `json:"fake_name" gorm:"not null;size:100"`
	AvatarType AvatarType `json:"avatar_type" gorm:"not null;size:20"`
	AvatarID   int        `json:"avatar_id" gorm:"not null"`

	// Demographics
	Age       int    `json:"age"`
	School    string `json:"school" gorm:"size:200"`
	ClassInfo string `json:"class_info" gorm:"size:100"`

	LastActive time.Time `json:"last_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// PublicProfile strips everything other users are allowed to see.
func (u *User) PublicProfile() *PublicProfile {
	return &PublicProfile{
		ID:         u.ID,
		FakeName:   u.FakeName,
		AvatarType: u.AvatarType,
		AvatarID:   u.AvatarID,
		LastActive: u.LastActive,
	}
}
