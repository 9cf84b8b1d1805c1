package repositories

import (
	"context"
	"time"
)

// VerificationCodeRepository stores the single currently-valid verification
// code per email. Storing a new code overwrites the previous one and restarts
// its TTL; codes self-expire.
type VerificationCodeRepository interface {
	StoreCode(ctx context.Context, email, code string, ttl time.Duration) error
	// RetrieveCode returns domain ErrNotFound when no code is stored.
	RetrieveCode(ctx context.Context, email string) (string, error)
	DeleteCode(ctx context.Context, email string) error
}

// RateLimitRepository tracks, per email, whether a new verification code may
// be issued. The marker self-expires after its TTL.
type RateLimitRepository interface {
	IsLimited(ctx context.Context, email string) (bool, error)
	SetLimit(ctx context.Context, email string, ttl time.Duration) error
	ClearLimit(ctx context.Context, email string) error
}
