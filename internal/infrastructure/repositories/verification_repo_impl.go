package repositories

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	domainerrors "event-manager.backend/internal/domain/errors"
	"event-manager.backend/pkg/redis"
)

const (
	verificationPrefix = "email:verification:"
	rateLimitPrefix    = "email:rate_limit:"
)

// VerificationCodeRepository stores verification codes in Redis with TTL.
// SETEX overwrite semantics give the single-active-code-per-email invariant
// for free: a new code replaces the old one and restarts the countdown.
type VerificationCodeRepository struct{}

// NewVerificationCodeRepository creates a new verification code repository
func NewVerificationCodeRepository() *VerificationCodeRepository {
	return &VerificationCodeRepository{}
}

// StoreCode stores a code for an email, overwriting any previous one
func (r *VerificationCodeRepository) StoreCode(ctx context.Context, email, code string, ttl time.Duration) error {
	return redis.Set(ctx, verificationPrefix+email, code, ttl)
}

// RetrieveCode returns the current code for an email, or ErrNotFound
func (r *VerificationCodeRepository) RetrieveCode(ctx context.Context, email string) (string, error) {
	code, err := redis.Get(ctx, verificationPrefix+email)
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", domainerrors.ErrNotFound
		}
		return "", err
	}
	return code, nil
}

// DeleteCode removes the code for an email; absent keys are not an error
func (r *VerificationCodeRepository) DeleteCode(ctx context.Context, email string) error {
	return redis.Del(ctx, verificationPrefix+email)
}

// RateLimitRepository tracks code-issuance rate limits in Redis. The marker
// is a boolean-presence key with TTL; concurrent setters race with
// last-write-wins, which is acceptable for this limiter.
type RateLimitRepository struct{}

// NewRateLimitRepository creates a new rate limit repository
func NewRateLimitRepository() *RateLimitRepository {
	return &RateLimitRepository{}
}

// IsLimited reports whether a limit marker exists for an email
func (r *RateLimitRepository) IsLimited(ctx context.Context, email string) (bool, error) {
	return redis.Exists(ctx, rateLimitPrefix+email)
}

// SetLimit creates or refreshes the limit marker for an email
func (r *RateLimitRepository) SetLimit(ctx context.Context, email string, ttl time.Duration) error {
	return redis.Set(ctx, rateLimitPrefix+email, "1", ttl)
}

// ClearLimit removes the limit marker; absent keys are not an error
func (r *RateLimitRepository) ClearLimit(ctx context.Context, email string) error {
	return redis.Del(ctx, rateLimitPrefix+email)
}
