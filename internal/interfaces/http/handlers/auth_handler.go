package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"event-manager.backend/internal/domain/entities"
	domainerrors "event-manager.backend/internal/domain/errors"
	"event-manager.backend/internal/interfaces/http/middleware"
	"event-manager.backend/internal/interfaces/http/response"
	"event-manager.backend/internal/usecases"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authUsecase *usecases.AuthUsecase
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase *usecases.AuthUsecase) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
	}
}

// Register handles user registration
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input entities.RegisterInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	user, err := h.authUsecase.Register(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	message := fmt.Sprintf("Verification code sent to %s", user.Email)
	if user.IsAdmin {
		message = "First user registered as admin and confirmed"
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": message,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
		},
	})
}

// ResendCode re-issues a verification code for an unconfirmed user
// POST /api/v1/auth/resend-code
func (h *AuthHandler) ResendCode(c *gin.Context) {
	var input entities.ResendCodeInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	alreadyConfirmed, err := h.authUsecase.ResendCode(c.Request.Context(), input.Email)
	if err != nil {
		response.Error(c, err)
		return
	}

	if alreadyConfirmed {
		response.Success(c, http.StatusOK, gin.H{"message": "User already confirmed"})
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": fmt.Sprintf("New verification code sent to %s", input.Email),
	})
}

// VerifyCode confirms a user's email address with a submitted code
// POST /api/v1/auth/verify-code
func (h *AuthHandler) VerifyCode(c *gin.Context) {
	var input entities.VerifyCodeInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.authUsecase.ConfirmEmail(c.Request.Context(), input.Email, input.Code); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Email verified successfully"})
}

// Login handles user login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	authResponse, err := h.authUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		if err == domainerrors.ErrInvalidCredentials {
			response.Error(c, domainerrors.NewAppError(http.StatusUnauthorized, domainerrors.CodeInvalidCredentials, "Invalid email or password", err))
			return
		}
		if err == domainerrors.ErrEmailNotVerified {
			response.Error(c, domainerrors.Forbidden("Email not verified"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"accessToken":  authResponse.AccessToken,
		"refreshToken": authResponse.RefreshToken,
		"tokenType":    authResponse.TokenType,
		"user": gin.H{
			"id":          authResponse.User.ID,
			"email":       authResponse.User.Email,
			"isAdmin":     authResponse.User.IsAdmin,
			"isConfirmed": authResponse.User.IsConfirmed,
		},
	})
}

// RefreshToken handles token refresh
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Refresh token is required"))
		return
	}

	tokenPair, err := h.authUsecase.RefreshToken(c.Request.Context(), input.RefreshToken)
	if err != nil {
		response.Error(c, domainerrors.NewAppError(http.StatusUnauthorized, domainerrors.CodeUnauthorized, "Invalid or expired refresh token", err))
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"accessToken":  tokenPair.AccessToken,
		"refreshToken": tokenPair.RefreshToken,
	})
}

// GetMe returns current authenticated user details
// GET /api/v1/auth/me
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	user, err := h.authUsecase.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}

// DeleteMe removes the caller's account
// DELETE /api/v1/auth/me
func (h *AuthHandler) DeleteMe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	if err := h.authUsecase.DeleteAccount(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
