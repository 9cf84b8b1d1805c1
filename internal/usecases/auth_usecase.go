package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"event-manager.backend/internal/domain/entities"
	domainerrors "event-manager.backend/internal/domain/errors"
	"event-manager.backend/internal/domain/repositories"
	"event-manager.backend/pkg/crypto"
	"event-manager.backend/pkg/jwt"
	"event-manager.backend/pkg/logger"
)

// AuthUsecase handles account registration, login and email confirmation
type AuthUsecase struct {
	userRepo     repositories.UserRepository
	verification *VerificationUsecase
	jwtService   *jwt.JWTService
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	verification *VerificationUsecase,
	jwtService *jwt.JWTService,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:     userRepo,
		verification: verification,
		jwtService:   jwtService,
	}
}

// Register creates a new user. The very first user becomes admin and is
// automatically confirmed; everyone else receives an email verification
// code. If the code cannot be issued the speculatively created user row is
// rolled back and the failure surfaces with rate-limit semantics.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.User, error) {
	count, err := u.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	isFirstUser := count == 0

	_, err = u.userRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return nil, domainerrors.Conflict("User already exists")
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Email:        input.Email,
		PasswordHash: passwordHash,
		IsActive:     true,
		IsConfirmed:  isFirstUser,
		IsAdmin:      isFirstUser,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("User already exists")
		}
		return nil, err
	}

	if !isFirstUser {
		if _, err := u.verification.RequestCode(ctx, input.Email); err != nil {
			// Roll back the half-completed registration so the email can be
			// retried once the limit clears.
			if delErr := u.userRepo.Delete(ctx, user.ID); delErr != nil {
				logger.Error(ctx, "Failed to roll back user after code dispatch failure",
					zap.String("email", input.Email), zap.Error(delErr))
			}
			return nil, domainerrors.TooManyRequests("Please wait before requesting another code")
		}
	}

	return user, nil
}

// ResendCode issues a fresh verification code for an unconfirmed user.
// Returns true when the user is already confirmed and no code was sent.
func (u *AuthUsecase) ResendCode(ctx context.Context, email string) (bool, error) {
	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return false, domainerrors.NotFound("User not found")
		}
		return false, err
	}

	if user.IsConfirmed {
		return true, nil
	}

	if _, err := u.verification.RequestCode(ctx, email); err != nil {
		return false, domainerrors.TooManyRequests("Please wait before requesting another code")
	}

	return false, nil
}

// ConfirmEmail verifies a submitted code and marks the user confirmed
func (u *AuthUsecase) ConfirmEmail(ctx context.Context, email, code string) error {
	if err := u.verification.VerifyCode(ctx, email, code); err != nil {
		if errors.Is(err, domainerrors.ErrInvalidCode) {
			return domainerrors.BadRequest("Invalid or expired verification code")
		}
		return err
	}

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("User not found")
		}
		return err
	}

	return u.userRepo.SetConfirmed(ctx, user.ID)
}

// Login authenticates a user and returns a token pair. Unconfirmed users
// cannot log in.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	if !user.IsConfirmed {
		return nil, domainerrors.ErrEmailNotVerified
	}

	tokenPair, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		TokenType:    "bearer",
		User:         user,
	}, nil
}

// RefreshToken generates a new token pair from a refresh token
func (u *AuthUsecase) RefreshToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	claims, err := u.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	return u.jwtService.GenerateTokenPair(user.ID, user.Email, user.IsAdmin)
}

// GetUserByID gets a user by ID
func (u *AuthUsecase) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

// DeleteAccount removes the user's own account
func (u *AuthUsecase) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	return u.userRepo.Delete(ctx, id)
}
