package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"

	"event-manager.backend/pkg/logger"
)

// Sender delivers verification codes to an address. Implementations must be
// safe for concurrent use; the job runner calls them from worker goroutines.
type Sender interface {
	SendVerificationCode(ctx context.Context, to, code string) error
}

// ResendSender sends verification emails through the Resend API
type ResendSender struct {
	client     *resend.Client
	from       string
	senderName string
}

// NewResendSender creates a new Resend-backed sender
func NewResendSender(apiKey, from, senderName string) *ResendSender {
	return &ResendSender{
		client:     resend.NewClient(apiKey),
		from:       from,
		senderName: senderName,
	}
}

// SendVerificationCode sends the verification code email
func (s *ResendSender) SendVerificationCode(ctx context.Context, to, code string) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.senderName, s.from),
		To:      []string{to},
		Subject: "Your Verification Code",
		Text: fmt.Sprintf(
			"Hello,\n\nYour verification code is: %s\n\nThanks for registering with %s.",
			code, s.senderName,
		),
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	logger.Info(ctx, "Verification email sent",
		zap.String("email_id", sent.Id),
		zap.String("to", to),
	)
	return nil
}
