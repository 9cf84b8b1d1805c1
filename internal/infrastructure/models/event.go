package models

import (
	"time"

	"github.com/google/uuid"
)

// Event is the gorm model backing the events table
type Event struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	Location    string    `gorm:"type:varchar(255)"`
	Date        time.Time `gorm:"not null;index"`
	ShareUUID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	IsPublic    bool      `gorm:"not null;default:false"`
	OrganizerID uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Associations
	Organizer     User           `gorm:"foreignKey:OrganizerID"`
	Registrations []Registration `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
}
