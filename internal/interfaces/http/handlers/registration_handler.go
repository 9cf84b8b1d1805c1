package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"event-manager.backend/internal/domain/entities"
	domainerrors "event-manager.backend/internal/domain/errors"
	"event-manager.backend/internal/interfaces/http/middleware"
	"event-manager.backend/internal/interfaces/http/response"
	"event-manager.backend/internal/usecases"
)

// RegistrationHandler handles registration endpoints
type RegistrationHandler struct {
	registrationUsecase *usecases.RegistrationUsecase
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(registrationUsecase *usecases.RegistrationUsecase) *RegistrationHandler {
	return &RegistrationHandler{
		registrationUsecase: registrationUsecase,
	}
}

// Register registers a person for an event (public, no account needed)
// POST /api/v1/events/:id/register
func (h *RegistrationHandler) Register(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid event ID"))
		return
	}

	var input entities.CreateRegistrationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	registration, err := h.registrationUsecase.Register(c.Request.Context(), eventID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, registration)
}

// ListForEvent lists an event's registrations for its organizer
// GET /api/v1/events/:id/registrations
func (h *RegistrationHandler) ListForEvent(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid event ID"))
		return
	}

	registrations, err := h.registrationUsecase.ListForEvent(c.Request.Context(), eventID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, registrations)
}

// UpdateStatus applies a status transition to a registration
// PUT /api/v1/registrations/:id
func (h *RegistrationHandler) UpdateStatus(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid registration ID"))
		return
	}

	var input entities.UpdateRegistrationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	registration, err := h.registrationUsecase.UpdateStatus(c.Request.Context(), id, input.Status, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, registration)
}

// Cancel cancels a registration without authentication
// DELETE /api/v1/registrations/:id
func (h *RegistrationHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid registration ID"))
		return
	}

	if _, err := h.registrationUsecase.Cancel(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Registration cancelled"})
}
