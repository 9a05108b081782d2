package usecase

import (
	"contact-form-relay/config"
	"contact-form-relay/internal/domain"
	"contact-form-relay/pkg/email"
	"contact-form-relay/pkg/logger"
	"context"
	"fmt"
	"strings"
	"time"
)

type relayUsecase struct {
	sender      email.Sender
	to          string
	from        string // fixed sender address; empty means use the submitter's
	sendTimeout time.Duration
}

// NewRelayUsecase creates a new relay usecase
func NewRelayUsecase(sender email.Sender, cfg *config.Config) domain.RelayUsecase {
	return &relayUsecase{
		sender:      sender,
		to:          cfg.ContactEmailTo,
		from:        cfg.ContactEmailFrom,
		sendTimeout: cfg.SendTimeout,
	}
}

// Relay validates the submission and forwards it as one email. Validation
// failures return before any network call is made.
func (uc *relayUsecase) Relay(ctx context.Context, sub *domain.Submission) error {
	if strings.TrimSpace(sub.FromName) == "" {
		return &domain.MissingFieldError{Field: "from_name"}
	}
	if strings.TrimSpace(sub.FromEmail) == "" {
		return &domain.MissingFieldError{Field: "from_email"}
	}
	if strings.TrimSpace(sub.Title) == "" {
		return &domain.MissingFieldError{Field: "title"}
	}
	if strings.TrimSpace(sub.Body) == "" {
		return &domain.MissingFieldError{Field: "body"}
	}

	name := strings.TrimSpace(sub.FromName)
	addr := strings.TrimSpace(sub.FromEmail)

	// The submitter's address goes in From unless a fixed sender is
	// configured for deliverability; Reply-To keeps them reachable either way.
	fromAddr := uc.from
	if fromAddr == "" {
		fromAddr = addr
	}

	msg := email.Message{
		From:    fmt.Sprintf("%s <%s>", name, fromAddr),
		To:      uc.to,
		ReplyTo: addr,
		Subject: strings.TrimSpace(sub.Title),
		Text:    fmt.Sprintf("From: %s <%s>\n\n%s", name, addr, strings.TrimSpace(sub.Body)),
	}

	ctx, cancel := context.WithTimeout(ctx, uc.sendTimeout)
	defer cancel()

	logger.Log.Debug("relaying submission", "from", msg.From, "to", uc.to)

	if err := uc.sender.Send(ctx, msg); err != nil {
		logger.Log.Error("failed to relay submission", "error", err, "from", addr)
		return err
	}

	logger.Log.Info("submission relayed", "from", addr, "subject", msg.Subject)
	return nil
}
