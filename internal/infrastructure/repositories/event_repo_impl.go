package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"event-manager.backend/internal/domain/entities"
	domainerrors "event-manager.backend/internal/domain/errors"
	"event-manager.backend/internal/infrastructure/models"
)

// EventRepository implements event data operations
type EventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create creates a new event
func (r *EventRepository) Create(ctx context.Context, event *entities.Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.ShareUUID == uuid.Nil {
		event.ShareUUID = uuid.New()
	}

	m := &models.Event{
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		Location:    event.Location,
		Date:        event.Date,
		ShareUUID:   event.ShareUUID,
		IsPublic:    event.IsPublic,
		OrganizerID: event.OrganizerID,
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}

	event.CreatedAt = m.CreatedAt
	event.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets an event by ID
func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Event, error) {
	var m models.Event
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return eventToEntity(&m), nil
}

// List lists events ordered by date, optionally restricted to upcoming ones
func (r *EventRepository) List(ctx context.Context, filter entities.EventListFilter) ([]*entities.Event, error) {
	var eventModels []models.Event
	query := r.db.WithContext(ctx).Order("date ASC")

	if filter.UpcomingOnly {
		query = query.Where("date >= ?", time.Now())
	}
	if filter.Skip > 0 {
		query = query.Offset(filter.Skip)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	if err := query.Find(&eventModels).Error; err != nil {
		return nil, err
	}

	events := make([]*entities.Event, 0, len(eventModels))
	for i := range eventModels {
		events = append(events, eventToEntity(&eventModels[i]))
	}
	return events, nil
}

// ListByOrganizer lists events owned by an organizer
func (r *EventRepository) ListByOrganizer(ctx context.Context, organizerID uuid.UUID, skip, limit int) ([]*entities.Event, error) {
	var eventModels []models.Event
	query := r.db.WithContext(ctx).Where("organizer_id = ?", organizerID).Order("date ASC")

	if skip > 0 {
		query = query.Offset(skip)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&eventModels).Error; err != nil {
		return nil, err
	}

	events := make([]*entities.Event, 0, len(eventModels))
	for i := range eventModels {
		events = append(events, eventToEntity(&eventModels[i]))
	}
	return events, nil
}

// Update updates an event's mutable fields
func (r *EventRepository) Update(ctx context.Context, event *entities.Event) error {
	updates := map[string]interface{}{
		"title":       event.Title,
		"description": event.Description,
		"location":    event.Location,
		"date":        event.Date,
		"is_public":   event.IsPublic,
		"updated_at":  time.Now(),
	}

	result := r.db.WithContext(ctx).Model(&models.Event{}).Where("id = ?", event.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete removes an event. Registrations are removed by the FK cascade.
func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Event{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func eventToEntity(m *models.Event) *entities.Event {
	return &entities.Event{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Location:    m.Location,
		Date:        m.Date,
		ShareUUID:   m.ShareUUID,
		IsPublic:    m.IsPublic,
		OrganizerID: m.OrganizerID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
