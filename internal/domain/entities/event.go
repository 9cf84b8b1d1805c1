package entities

import (
	"time"

	"github.com/google/uuid"
)

// Event represents an event organized by a user
type Event struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Date        time.Time `json:"date"`
	ShareUUID   uuid.UUID `json:"shareUuid"`
	IsPublic    bool      `json:"isPublic"`
	OrganizerID uuid.UUID `json:"organizerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateEventInput represents input for creating an event
type CreateEventInput struct {
	Title       string    `json:"title" binding:"required,min=1,max=200"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Date        time.Time `json:"date" binding:"required"`
	IsPublic    bool      `json:"isPublic"`
}

// UpdateEventInput represents a partial event update. Nil fields are left
// untouched.
type UpdateEventInput struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	Date        *time.Time `json:"date"`
	IsPublic    *bool      `json:"isPublic"`
}

// EventListFilter controls event listing
type EventListFilter struct {
	UpcomingOnly bool
	Skip         int
	Limit        int
}
