package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the gorm model backing the users table
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	IsActive     bool      `gorm:"not null;default:true"`
	IsConfirmed  bool      `gorm:"not null;default:false"`
	IsAdmin      bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Associations
	Events []Event `gorm:"foreignKey:OrganizerID"`
}
