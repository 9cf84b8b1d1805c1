package jobs

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/riverqueue/river"
	"go.uber.org/zap"

	"event-manager.backend/internal/infrastructure/email"
	"event-manager.backend/pkg/logger"
)

// VerificationEmailArgs carries a verification code delivery job. A stale
// job delivering a superseded code is harmless: verification only compares
// against the latest stored value.
type VerificationEmailArgs struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (VerificationEmailArgs) Kind() string { return JobKindVerificationEmail }

func (VerificationEmailArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		Queue:       QueueEmails,
		MaxAttempts: EmailMaxAttempts,
	}
}

// VerificationEmailWorker sends verification code emails. Failures are
// retried by River per the client retry policy; exhausted jobs stay visible
// in the discarded state for operators.
type VerificationEmailWorker struct {
	river.WorkerDefaults[VerificationEmailArgs]
	Sender email.Sender
}

func (VerificationEmailWorker) Kind() string { return JobKindVerificationEmail }

func (w VerificationEmailWorker) Work(ctx context.Context, job *river.Job[VerificationEmailArgs]) error {
	if w.Sender == nil {
		return fmt.Errorf("email sender not configured")
	}

	if err := w.Sender.SendVerificationCode(ctx, job.Args.Email, job.Args.Code); err != nil {
		logger.Warn(ctx, "Verification email delivery failed",
			zap.String("to", job.Args.Email),
			zap.Int("attempt", job.Attempt),
			zap.Error(err),
		)
		return err
	}

	return nil
}

// DeliveryQueue enqueues verification email jobs on the durable queue.
// Delivery is fire-and-forget from the caller's perspective; only the
// enqueue itself can fail synchronously.
type DeliveryQueue struct {
	client *river.Client[pgx.Tx]
}

// NewDeliveryQueue creates a new delivery queue over a River client
func NewDeliveryQueue(client *river.Client[pgx.Tx]) *DeliveryQueue {
	return &DeliveryQueue{client: client}
}

// EnqueueVerificationEmail inserts a delivery job for the given email/code
func (q *DeliveryQueue) EnqueueVerificationEmail(ctx context.Context, to, code string) error {
	_, err := q.client.Insert(ctx, VerificationEmailArgs{Email: to, Code: code}, nil)
	if err != nil {
		return fmt.Errorf("failed to enqueue verification email: %w", err)
	}
	return nil
}
