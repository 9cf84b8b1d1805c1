package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"event-manager.backend/internal/domain/entities"
	domainerrors "event-manager.backend/internal/domain/errors"
	"event-manager.backend/internal/domain/repositories"
)

const (
	defaultEventListLimit = 10
	defaultMyEventsLimit  = 50
)

// EventUsecase handles event business logic
type EventUsecase struct {
	eventRepo repositories.EventRepository
	userRepo  repositories.UserRepository
}

// NewEventUsecase creates a new event usecase
func NewEventUsecase(eventRepo repositories.EventRepository, userRepo repositories.UserRepository) *EventUsecase {
	return &EventUsecase{
		eventRepo: eventRepo,
		userRepo:  userRepo,
	}
}

// Create creates an event. Only confirmed users may organize events.
func (u *EventUsecase) Create(ctx context.Context, organizerID uuid.UUID, input *entities.CreateEventInput) (*entities.Event, error) {
	organizer, err := u.userRepo.GetByID(ctx, organizerID)
	if err != nil {
		return nil, err
	}
	if !organizer.IsConfirmed {
		return nil, domainerrors.Forbidden("Only confirmed users can create events")
	}

	event := &entities.Event{
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		Date:        input.Date,
		IsPublic:    input.IsPublic,
		OrganizerID: organizerID,
	}

	if err := u.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// List lists events with pagination, by default only upcoming ones
func (u *EventUsecase) List(ctx context.Context, filter entities.EventListFilter) ([]*entities.Event, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultEventListLimit
	}
	return u.eventRepo.List(ctx, filter)
}

// ListMine lists the caller's own events
func (u *EventUsecase) ListMine(ctx context.Context, organizerID uuid.UUID, skip, limit int) ([]*entities.Event, error) {
	if limit <= 0 {
		limit = defaultMyEventsLimit
	}
	return u.eventRepo.ListByOrganizer(ctx, organizerID, skip, limit)
}

// Get gets an event by ID
func (u *EventUsecase) Get(ctx context.Context, id uuid.UUID) (*entities.Event, error) {
	event, err := u.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Event not found")
		}
		return nil, err
	}
	return event, nil
}

// Update applies a partial update to an event owned by the caller
func (u *EventUsecase) Update(ctx context.Context, id, actorID uuid.UUID, input *entities.UpdateEventInput) (*entities.Event, error) {
	event, err := u.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Event not found")
		}
		return nil, err
	}
	if event.OrganizerID != actorID {
		return nil, domainerrors.Forbidden("Not authorized")
	}

	if input.Title != nil {
		event.Title = *input.Title
	}
	if input.Description != nil {
		event.Description = *input.Description
	}
	if input.Location != nil {
		event.Location = *input.Location
	}
	if input.Date != nil {
		event.Date = *input.Date
	}
	if input.IsPublic != nil {
		event.IsPublic = *input.IsPublic
	}

	if err := u.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Delete removes an event owned by the caller. All its registrations are
// removed by the database cascade.
func (u *EventUsecase) Delete(ctx context.Context, id, actorID uuid.UUID) error {
	event, err := u.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("Event not found")
		}
		return err
	}
	if event.OrganizerID != actorID {
		return domainerrors.Forbidden("Not authorized")
	}

	return u.eventRepo.Delete(ctx, id)
}
