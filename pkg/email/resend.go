package email

import (
	"contact-form-relay/config"
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"
)

// ResendSender delivers messages through the Resend API client.
type ResendSender struct {
	client *resend.Client
}

func NewResendSender(cfg *config.Config) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(cfg.ResendAPIKey),
	}
}

func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	req := &resend.SendEmailRequest{
		From:    msg.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Text:    msg.Text,
	}
	if msg.ReplyTo != "" {
		req.ReplyTo = msg.ReplyTo
	}

	if _, err := s.client.Emails.SendWithContext(ctx, req); err != nil {
		return fmt.Errorf("failed to send via resend: %w", err)
	}

	return nil
}
