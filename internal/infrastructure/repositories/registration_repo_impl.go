package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"event-manager.backend/internal/domain/entities"
	domainerrors "event-manager.backend/internal/domain/errors"
	"event-manager.backend/internal/infrastructure/models"
)

// RegistrationRepository implements registration data operations
type RegistrationRepository struct {
	db *gorm.DB
}

// NewRegistrationRepository creates a new registration repository
func NewRegistrationRepository(db *gorm.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// Create creates a new registration
func (r *RegistrationRepository) Create(ctx context.Context, registration *entities.Registration) error {
	if registration.ID == uuid.Nil {
		registration.ID = uuid.New()
	}

	m := &models.Registration{
		ID:      registration.ID,
		Name:    registration.Name,
		Surname: registration.Surname.Ptr(),
		Phone:   registration.Phone,
		Email:   registration.Email.Ptr(),
		Status:  string(registration.Status),
		EventID: registration.EventID,
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}

	registration.CreatedAt = m.CreatedAt
	registration.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a registration by ID
func (r *RegistrationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Registration, error) {
	var m models.Registration
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return registrationToEntity(&m), nil
}

// ListByEvent lists all registrations for an event
func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*entities.Registration, error) {
	var registrationModels []models.Registration
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&registrationModels).Error; err != nil {
		return nil, err
	}

	registrations := make([]*entities.Registration, 0, len(registrationModels))
	for i := range registrationModels {
		registrations = append(registrations, registrationToEntity(&registrationModels[i]))
	}
	return registrations, nil
}

// UpdateStatus sets the registration status in a single row update and
// returns the updated entity. Last writer wins under concurrent updates.
func (r *RegistrationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.RegistrationStatus) (*entities.Registration, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Registration{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domainerrors.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

func registrationToEntity(m *models.Registration) *entities.Registration {
	return &entities.Registration{
		ID:        m.ID,
		Name:      m.Name,
		Surname:   null.StringFromPtr(m.Surname),
		Phone:     m.Phone,
		Email:     null.StringFromPtr(m.Email),
		Status:    entities.RegistrationStatus(m.Status),
		EventID:   m.EventID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
