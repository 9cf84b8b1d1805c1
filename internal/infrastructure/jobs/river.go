package jobs

import (
	"math"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivertype"
)

const (
	// JobKindVerificationEmail identifies verification email delivery jobs
	JobKindVerificationEmail = "verification_email"

	// QueueEmails is the queue verification emails are routed to
	QueueEmails = "emails"
)

const (
	// EmailMaxAttempts is one initial attempt plus three retries
	EmailMaxAttempts = 4
	// EmailBaseRetryDelay is the delay before the first retry; subsequent
	// retries double it (60s, 120s, 240s).
	EmailBaseRetryDelay = time.Minute
)

// RetryPolicy implements River's ClientRetryPolicy with exponential backoff.
type RetryPolicy struct {
	BaseDelay time.Duration
}

// NewRetryPolicy returns the delivery retry policy.
func NewRetryPolicy() *RetryPolicy {
	return &RetryPolicy{BaseDelay: EmailBaseRetryDelay}
}

// NextRetry determines when a failed job runs again: base × 2^(attempt-1)
// after the failed attempt.
func (p *RetryPolicy) NextRetry(job *rivertype.JobRow) time.Time {
	attempt := job.Attempt
	if attempt < 1 {
		attempt = 1
	}

	delay := time.Duration(float64(p.BaseDelay) * math.Pow(2, float64(attempt-1)))

	if job.AttemptedAt != nil {
		return job.AttemptedAt.Add(delay)
	}
	return time.Now().Add(delay)
}

// NewClientConfig builds the River client configuration.
func NewClientConfig(workers *river.Workers) *river.Config {
	return &river.Config{
		Workers:     workers,
		RetryPolicy: NewRetryPolicy(),
		MaxAttempts: EmailMaxAttempts,
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 10},
			QueueEmails:        {MaxWorkers: 5},
		},
	}
}

// NewClient creates a River client using pgx v5.
func NewClient(pool *pgxpool.Pool, workers *river.Workers) (*river.Client[pgx.Tx], error) {
	return river.NewClient(riverpgxv5.New(pool), NewClientConfig(workers))
}
