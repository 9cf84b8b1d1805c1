package usecases

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	domainerrors "event-manager.backend/internal/domain/errors"
	"event-manager.backend/internal/domain/repositories"
	"event-manager.backend/pkg/crypto"
	"event-manager.backend/pkg/logger"
)

// DeliveryQueue abstracts the durable queue used for verification email
// dispatch. Delivery itself is asynchronous; only the enqueue can fail here.
type DeliveryQueue interface {
	EnqueueVerificationEmail(ctx context.Context, to, code string) error
}

// VerificationUsecase orchestrates the email verification workflow:
// rate-limit check, code generation, storage, and delivery dispatch.
type VerificationUsecase struct {
	codeRepo   repositories.VerificationCodeRepository
	limitRepo  repositories.RateLimitRepository
	queue      DeliveryQueue
	codeLength int
	codeTTL    time.Duration
}

// NewVerificationUsecase creates a new verification usecase
func NewVerificationUsecase(
	codeRepo repositories.VerificationCodeRepository,
	limitRepo repositories.RateLimitRepository,
	queue DeliveryQueue,
	codeLength int,
	codeTTL time.Duration,
) *VerificationUsecase {
	return &VerificationUsecase{
		codeRepo:   codeRepo,
		limitRepo:  limitRepo,
		queue:      queue,
		codeLength: codeLength,
		codeTTL:    codeTTL,
	}
}

// RequestCode issues a new verification code for an email and enqueues its
// delivery. The returned code is for diagnostic/testing visibility only and
// must never reach the end user over the network.
//
// Two concurrent calls for the same email can both pass the limiter check;
// the cost is an extra generated code, and only the last stored one is valid.
func (u *VerificationUsecase) RequestCode(ctx context.Context, email string) (string, error) {
	limited, err := u.limitRepo.IsLimited(ctx, email)
	if err != nil {
		return "", err
	}
	if limited {
		return "", domainerrors.ErrRateLimited
	}

	code, err := crypto.GenerateVerificationCode(u.codeLength)
	if err != nil {
		return "", err
	}

	if err := u.codeRepo.StoreCode(ctx, email, code, u.codeTTL); err != nil {
		return "", err
	}
	if err := u.limitRepo.SetLimit(ctx, email, u.codeTTL); err != nil {
		return "", err
	}

	if err := u.queue.EnqueueVerificationEmail(ctx, email, code); err != nil {
		logger.Error(ctx, "Failed to enqueue verification email", zap.Error(err))
		return "", err
	}

	return code, nil
}

// VerifyCode checks a submitted code against the stored one. On success the
// code is consumed and the rate limit cleared so a confirmed user is not
// blocked from future actions. Absence and mismatch are indistinguishable to
// the caller.
func (u *VerificationUsecase) VerifyCode(ctx context.Context, email, submitted string) error {
	stored, err := u.codeRepo.RetrieveCode(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.ErrInvalidCode
		}
		return err
	}

	if stored != submitted {
		return domainerrors.ErrInvalidCode
	}

	if err := u.codeRepo.DeleteCode(ctx, email); err != nil {
		return err
	}
	if err := u.limitRepo.ClearLimit(ctx, email); err != nil {
		return err
	}

	return nil
}
