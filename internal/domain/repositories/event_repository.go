package repositories

import (
	"context"

	"github.com/google/uuid"

	"event-manager.backend/internal/domain/entities"
)

// EventRepository defines event data operations
type EventRepository interface {
	Create(ctx context.Context, event *entities.Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Event, error)
	List(ctx context.Context, filter entities.EventListFilter) ([]*entities.Event, error)
	ListByOrganizer(ctx context.Context, organizerID uuid.UUID, skip, limit int) ([]*entities.Event, error)
	Update(ctx context.Context, event *entities.Event) error
	Delete(ctx context.Context, id uuid.UUID) error
}
