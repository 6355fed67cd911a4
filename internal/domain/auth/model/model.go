package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"size:50;not null"`
	Email        string    `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	Avatar       string    `gorm:"size:255"`
	// RefreshToken holds the single active refresh token, nil after logout.
	RefreshToken *string `gorm:"size:1024"`
	Confirmed    bool    `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
	UserID       uuid.UUID
}

// Principal is the authenticated identity attached to a request.
type Principal struct {
	ID       uuid.UUID
	Email    string
	Username string
	Avatar   string
	Roles    []string
}
