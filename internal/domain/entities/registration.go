package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// RegistrationStatus represents the lifecycle state of an event registration
type RegistrationStatus string

const (
	StatusWaitlist  RegistrationStatus = "waitlist"
	StatusAccepted  RegistrationStatus = "accepted"
	StatusRejected  RegistrationStatus = "rejected"
	StatusCancelled RegistrationStatus = "cancelled"
)

// Valid reports whether s is a known registration status.
func (s RegistrationStatus) Valid() bool {
	switch s {
	case StatusWaitlist, StatusAccepted, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// Registration represents a person registered for an event. The registrant
// does not need an account; contact fields are captured directly.
type Registration struct {
	ID        uuid.UUID          `json:"id"`
	Name      string             `json:"name"`
	Surname   null.String        `json:"surname,omitempty"`
	Phone     string             `json:"phone"`
	Email     null.String        `json:"email,omitempty"`
	Status    RegistrationStatus `json:"status"`
	EventID   uuid.UUID          `json:"eventId"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// CreateRegistrationInput represents input for registering for an event
type CreateRegistrationInput struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	Surname string `json:"surname"`
	Phone   string `json:"phone" binding:"required"`
	Email   string `json:"email" binding:"omitempty,email"`
}

// UpdateRegistrationInput carries the requested status transition
type UpdateRegistrationInput struct {
	Status RegistrationStatus `json:"status" binding:"required"`
}
