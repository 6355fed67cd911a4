package model

import (
	"time"

	"github.com/google/uuid"
)

type Contact struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null"`
	FirstName   string    `gorm:"size:25;index;not null"`
	LastName    string    `gorm:"size:50;index;not null"`
	Email       string    `gorm:"size:100;uniqueIndex;not null"`
	Phone       string    `gorm:"size:13;uniqueIndex;not null"`
	DateOfBirth time.Time `gorm:"type:date;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
