package usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"event-manager.backend/internal/domain/entities"
	domainerrors "event-manager.backend/internal/domain/errors"
	"event-manager.backend/internal/usecases"
	"event-manager.backend/pkg/crypto"
	"event-manager.backend/pkg/jwt"
)

type authFixture struct {
	userRepo  *MockUserRepository
	codeRepo  *MockVerificationCodeRepository
	limitRepo *MockRateLimitRepository
	queue     *MockDeliveryQueue
	uc        *usecases.AuthUsecase
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		userRepo:  new(MockUserRepository),
		codeRepo:  new(MockVerificationCodeRepository),
		limitRepo: new(MockRateLimitRepository),
		queue:     new(MockDeliveryQueue),
	}
	verification := usecases.NewVerificationUsecase(f.codeRepo, f.limitRepo, f.queue, 6, 10*time.Minute)
	jwtService := jwt.NewJWTService("test-secret", 15*time.Minute, 7*24*time.Hour)
	f.uc = usecases.NewAuthUsecase(f.userRepo, verification, jwtService)
	return f
}

func TestAuthUsecase_Register_FirstUserIsAdminAndConfirmed(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	f.userRepo.On("Count", ctx).Return(int64(0), nil)
	f.userRepo.On("GetByEmail", ctx, "admin@mail.com").Return(nil, domainerrors.ErrNotFound)
	f.userRepo.On("Create", ctx, mock.AnythingOfType("*entities.User")).Return(nil)

	user, err := f.uc.Register(ctx, &entities.RegisterInput{Email: "admin@mail.com", Password: "password123"})
	require.NoError(t, err)
	assert.True(t, user.IsAdmin)
	assert.True(t, user.IsConfirmed)

	// No verification code is issued for the bootstrap admin.
	f.queue.AssertNotCalled(t, "EnqueueVerificationEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthUsecase_Register_SecondUserGetsVerificationCode(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	f.userRepo.On("Count", ctx).Return(int64(1), nil)
	f.userRepo.On("GetByEmail", ctx, "user@mail.com").Return(nil, domainerrors.ErrNotFound)
	f.userRepo.On("Create", ctx, mock.AnythingOfType("*entities.User")).Return(nil)
	f.limitRepo.On("IsLimited", ctx, "user@mail.com").Return(false, nil)
	f.codeRepo.On("StoreCode", ctx, "user@mail.com", mock.AnythingOfType("string"), 10*time.Minute).Return(nil)
	f.limitRepo.On("SetLimit", ctx, "user@mail.com", 10*time.Minute).Return(nil)
	f.queue.On("EnqueueVerificationEmail", ctx, "user@mail.com", mock.AnythingOfType("string")).Return(nil)

	user, err := f.uc.Register(ctx, &entities.RegisterInput{Email: "user@mail.com", Password: "password123"})
	require.NoError(t, err)
	assert.False(t, user.IsAdmin)
	assert.False(t, user.IsConfirmed)
	assert.True(t, user.IsActive)

	f.queue.AssertExpectations(t)
}

func TestAuthUsecase_Register_DuplicateEmail(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	existing := &entities.User{ID: uuid.New(), Email: "user@mail.com"}
	f.userRepo.On("Count", ctx).Return(int64(3), nil)
	f.userRepo.On("GetByEmail", ctx, "user@mail.com").Return(existing, nil)

	_, err := f.uc.Register(ctx, &entities.RegisterInput{Email: "user@mail.com", Password: "password123"})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)

	f.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthUsecase_Register_RollsBackUserWhenDispatchFails(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	var createdID uuid.UUID
	f.userRepo.On("Count", ctx).Return(int64(1), nil)
	f.userRepo.On("GetByEmail", ctx, "user@mail.com").Return(nil, domainerrors.ErrNotFound)
	f.userRepo.On("Create", ctx, mock.AnythingOfType("*entities.User")).
		Run(func(args mock.Arguments) {
			u := args.Get(1).(*entities.User)
			u.ID = uuid.New()
			createdID = u.ID
		}).
		Return(nil)
	f.limitRepo.On("IsLimited", ctx, "user@mail.com").Return(true, nil)
	f.userRepo.On("Delete", ctx, mock.AnythingOfType("uuid.UUID")).Return(nil)

	_, err := f.uc.Register(ctx, &entities.RegisterInput{Email: "user@mail.com", Password: "password123"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrRateLimited)

	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 429, appErr.Status)

	f.userRepo.AssertCalled(t, "Delete", ctx, createdID)
}

func TestAuthUsecase_ResendCode_AlreadyConfirmed(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	confirmed := &entities.User{ID: uuid.New(), Email: "user@mail.com", IsConfirmed: true}
	f.userRepo.On("GetByEmail", ctx, "user@mail.com").Return(confirmed, nil)

	alreadyConfirmed, err := f.uc.ResendCode(ctx, "user@mail.com")
	assert.NoError(t, err)
	assert.True(t, alreadyConfirmed)

	f.queue.AssertNotCalled(t, "EnqueueVerificationEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthUsecase_ResendCode_UnknownUser(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	f.userRepo.On("GetByEmail", ctx, "ghost@mail.com").Return(nil, domainerrors.ErrNotFound)

	_, err := f.uc.ResendCode(ctx, "ghost@mail.com")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestAuthUsecase_ResendCode_RateLimited(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	unconfirmed := &entities.User{ID: uuid.New(), Email: "user@mail.com"}
	f.userRepo.On("GetByEmail", ctx, "user@mail.com").Return(unconfirmed, nil)
	f.limitRepo.On("IsLimited", ctx, "user@mail.com").Return(true, nil)

	_, err := f.uc.ResendCode(ctx, "user@mail.com")
	assert.ErrorIs(t, err, domainerrors.ErrRateLimited)
}

func TestAuthUsecase_ConfirmEmail(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	user := &entities.User{ID: uuid.New(), Email: "user@mail.com"}
	f.codeRepo.On("RetrieveCode", ctx, "user@mail.com").Return("483920", nil)
	f.codeRepo.On("DeleteCode", ctx, "user@mail.com").Return(nil)
	f.limitRepo.On("ClearLimit", ctx, "user@mail.com").Return(nil)
	f.userRepo.On("GetByEmail", ctx, "user@mail.com").Return(user, nil)
	f.userRepo.On("SetConfirmed", ctx, user.ID).Return(nil)

	err := f.uc.ConfirmEmail(ctx, "user@mail.com", "483920")
	assert.NoError(t, err)

	f.userRepo.AssertExpectations(t)
}

func TestAuthUsecase_ConfirmEmail_WrongCode(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	f.codeRepo.On("RetrieveCode", ctx, "user@mail.com").Return("483920", nil)

	err := f.uc.ConfirmEmail(ctx, "user@mail.com", "111111")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)

	f.userRepo.AssertNotCalled(t, "SetConfirmed", mock.Anything, mock.Anything)
}

func TestAuthUsecase_Login(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	hash, err := crypto.HashPassword("password123")
	require.NoError(t, err)
	user := &entities.User{ID: uuid.New(), Email: "user@mail.com", PasswordHash: hash, IsConfirmed: true}
	f.userRepo.On("GetByEmail", ctx, "user@mail.com").Return(user, nil)

	resp, err := f.uc.Login(ctx, &entities.LoginInput{Email: "user@mail.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, user.ID, resp.User.ID)
}

func TestAuthUsecase_Login_WrongPassword(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	hash, err := crypto.HashPassword("password123")
	require.NoError(t, err)
	user := &entities.User{ID: uuid.New(), Email: "user@mail.com", PasswordHash: hash, IsConfirmed: true}
	f.userRepo.On("GetByEmail", ctx, "user@mail.com").Return(user, nil)

	_, err = f.uc.Login(ctx, &entities.LoginInput{Email: "user@mail.com", Password: "nope"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthUsecase_Login_UnknownEmail(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	f.userRepo.On("GetByEmail", ctx, "ghost@mail.com").Return(nil, domainerrors.ErrNotFound)

	_, err := f.uc.Login(ctx, &entities.LoginInput{Email: "ghost@mail.com", Password: "password123"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthUsecase_Login_UnconfirmedEmail(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	hash, err := crypto.HashPassword("password123")
	require.NoError(t, err)
	user := &entities.User{ID: uuid.New(), Email: "user@mail.com", PasswordHash: hash}
	f.userRepo.On("GetByEmail", ctx, "user@mail.com").Return(user, nil)

	_, err = f.uc.Login(ctx, &entities.LoginInput{Email: "user@mail.com", Password: "password123"})
	assert.ErrorIs(t, err, domainerrors.ErrEmailNotVerified)
}

func TestAuthUsecase_RefreshToken(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	hash, err := crypto.HashPassword("password123")
	require.NoError(t, err)
	user := &entities.User{ID: uuid.New(), Email: "user@mail.com", PasswordHash: hash, IsConfirmed: true}
	f.userRepo.On("GetByEmail", ctx, "user@mail.com").Return(user, nil)
	f.userRepo.On("GetByID", ctx, user.ID).Return(user, nil)

	resp, err := f.uc.Login(ctx, &entities.LoginInput{Email: "user@mail.com", Password: "password123"})
	require.NoError(t, err)

	pair, err := f.uc.RefreshToken(ctx, resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
}

func TestAuthUsecase_RefreshToken_Invalid(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	_, err := f.uc.RefreshToken(ctx, "not-a-token")
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}
