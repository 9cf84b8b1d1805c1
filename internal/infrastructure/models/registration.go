package models

import (
	"time"

	"github.com/google/uuid"
)

// Registration is the gorm model backing the registrations table. Rows are
// only removed by an explicit delete or by the event cascade; cancellation is
// a status change.
type Registration struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Surname   *string   `gorm:"type:varchar(255)"`
	Phone     string    `gorm:"type:varchar(64);not null"`
	Email     *string   `gorm:"type:varchar(255)"`
	Status    string    `gorm:"type:varchar(32);not null;default:waitlist"`
	EventID   uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Associations
	Event Event `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
}
