package email

import (
	"contact-form-relay/config"
	"context"
	"fmt"
)

// Message is one outbound email, already fully composed.
type Message struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	Text    string
}

// Sender delivers a composed message through a transactional email API.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// APIError is returned when the provider answered the request but rejected
// it. Message holds the provider's own explanation when one was given.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("email API returned %d: %s", e.StatusCode, e.Message)
}

// NewSender builds the Sender selected by EMAIL_PROVIDER.
func NewSender(cfg *config.Config) (Sender, error) {
	switch cfg.EmailProvider {
	case config.ProviderMailgun:
		return NewMailgunSender(cfg), nil
	case config.ProviderResend:
		return NewResendSender(cfg), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.EmailProvider)
	}
}
