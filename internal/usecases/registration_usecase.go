package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"event-manager.backend/internal/domain/entities"
	domainerrors "event-manager.backend/internal/domain/errors"
	"event-manager.backend/internal/domain/repositories"
)

// RegistrationUsecase handles event registrations and their status
// lifecycle: waitlist -> accepted/rejected, with cancellation allowed from
// every state except rejected. Once rejected, a registration never changes
// state again.
type RegistrationUsecase struct {
	registrationRepo repositories.RegistrationRepository
	eventRepo        repositories.EventRepository
}

// NewRegistrationUsecase creates a new registration usecase
func NewRegistrationUsecase(
	registrationRepo repositories.RegistrationRepository,
	eventRepo repositories.EventRepository,
) *RegistrationUsecase {
	return &RegistrationUsecase{
		registrationRepo: registrationRepo,
		eventRepo:        eventRepo,
	}
}

// Register creates a registration for an event. New registrations always
// start on the waitlist.
func (u *RegistrationUsecase) Register(ctx context.Context, eventID uuid.UUID, input *entities.CreateRegistrationInput) (*entities.Registration, error) {
	if _, err := u.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Event not found")
		}
		return nil, err
	}

	registration := &entities.Registration{
		Name:    input.Name,
		Surname: null.NewString(input.Surname, input.Surname != ""),
		Phone:   input.Phone,
		Email:   null.NewString(input.Email, input.Email != ""),
		Status:  entities.StatusWaitlist,
		EventID: eventID,
	}

	if err := u.registrationRepo.Create(ctx, registration); err != nil {
		return nil, err
	}
	return registration, nil
}

// ListForEvent lists an event's registrations for its organizer
func (u *RegistrationUsecase) ListForEvent(ctx context.Context, eventID, actorID uuid.UUID) ([]*entities.Registration, error) {
	event, err := u.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Forbidden("Not authorized")
		}
		return nil, err
	}
	if event.OrganizerID != actorID {
		return nil, domainerrors.Forbidden("Not authorized")
	}

	return u.registrationRepo.ListByEvent(ctx, eventID)
}

// UpdateStatus applies a status transition requested by an authenticated
// caller. Accepting and rejecting require the caller to be the event's
// organizer; cancelling does not, but is blocked once the registration has
// been rejected. Any other requested status is invalid, which leaves no
// path back out of cancelled.
func (u *RegistrationUsecase) UpdateStatus(ctx context.Context, id uuid.UUID, requested entities.RegistrationStatus, actorID uuid.UUID) (*entities.Registration, error) {
	registration, err := u.registrationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Registration not found")
		}
		return nil, err
	}

	event, err := u.eventRepo.GetByID(ctx, registration.EventID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Event not found")
		}
		return nil, err
	}

	switch requested {
	case entities.StatusAccepted, entities.StatusRejected:
		if event.OrganizerID != actorID {
			return nil, domainerrors.Forbidden("Not authorized to accept/reject")
		}
	case entities.StatusCancelled:
		if registration.Status == entities.StatusRejected {
			return nil, domainerrors.Forbidden("Cannot cancel after rejection")
		}
	default:
		return nil, domainerrors.BadRequest("Invalid status update")
	}

	return u.registrationRepo.UpdateStatus(ctx, id, requested)
}

// Cancel cancels a registration without any caller authentication; it is
// reachable by anyone who knows the registration id and performs no
// ownership check. The rejected guard still applies and the row is kept.
func (u *RegistrationUsecase) Cancel(ctx context.Context, id uuid.UUID) (*entities.Registration, error) {
	registration, err := u.registrationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Registration not found")
		}
		return nil, err
	}

	if registration.Status == entities.StatusRejected {
		return nil, domainerrors.Forbidden("Cannot cancel a rejected registration")
	}

	return u.registrationRepo.UpdateStatus(ctx, id, entities.StatusCancelled)
}
