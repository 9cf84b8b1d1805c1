package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"event-manager.backend/internal/domain/entities"
	domainerrors "event-manager.backend/internal/domain/errors"
	"event-manager.backend/internal/interfaces/http/middleware"
	"event-manager.backend/internal/interfaces/http/response"
	"event-manager.backend/internal/usecases"
)

// EventHandler handles event endpoints
type EventHandler struct {
	eventUsecase *usecases.EventUsecase
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventUsecase *usecases.EventUsecase) *EventHandler {
	return &EventHandler{
		eventUsecase: eventUsecase,
	}
}

// Create creates an event
// POST /api/v1/events
func (h *EventHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	var input entities.CreateEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	event, err := h.eventUsecase.Create(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, event)
}

// List lists events
// GET /api/v1/events
func (h *EventHandler) List(c *gin.Context) {
	filter := entities.EventListFilter{
		UpcomingOnly: parseBoolQuery(c, "upcoming_only", true),
		Skip:         parseIntQuery(c, "skip", 0),
		Limit:        parseIntQuery(c, "limit", 10),
	}

	events, err := h.eventUsecase.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, events)
}

// ListMine lists the caller's events
// GET /api/v1/events/my
func (h *EventHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	skip := parseIntQuery(c, "skip", 0)
	limit := parseIntQuery(c, "limit", 50)

	events, err := h.eventUsecase.ListMine(c.Request.Context(), userID, skip, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, events)
}

// Get gets a single event
// GET /api/v1/events/:id
func (h *EventHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid event ID"))
		return
	}

	event, err := h.eventUsecase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, event)
}

// Update updates an event
// PUT /api/v1/events/:id
func (h *EventHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid event ID"))
		return
	}

	var input entities.UpdateEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	event, err := h.eventUsecase.Update(c.Request.Context(), id, userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, event)
}

// Delete deletes an event and, via cascade, its registrations
// DELETE /api/v1/events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid event ID"))
		return
	}

	if err := h.eventUsecase.Delete(c.Request.Context(), id, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Event deleted"})
}

func parseIntQuery(c *gin.Context, key string, defaultValue int) int {
	if raw := c.Query(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			return v
		}
	}
	return defaultValue
}

func parseBoolQuery(c *gin.Context, key string, defaultValue bool) bool {
	if raw := c.Query(key); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			return v
		}
	}
	return defaultValue
}
