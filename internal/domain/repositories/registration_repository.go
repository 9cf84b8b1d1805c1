package repositories

import (
	"context"

	"github.com/google/uuid"

	"event-manager.backend/internal/domain/entities"
)

// RegistrationRepository defines registration data operations
type RegistrationRepository interface {
	Create(ctx context.Context, registration *entities.Registration) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Registration, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*entities.Registration, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.RegistrationStatus) (*entities.Registration, error)
}
