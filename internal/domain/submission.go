package domain

import (
	"context"
	"fmt"
)

// Submission represents one contact form post. Required-ness is enforced in
// the usecase so every field can be reported with a stable message.
type Submission struct {
	FromName  string `form:"from_name"`
	FromEmail string `form:"from_email"`
	Title     string `form:"title"`
	Body      string `form:"body"`
}

// MissingFieldError reports the first required form field that was empty or
// contained only whitespace.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// RelayUsecase defines the interface for forwarding submissions by email.
type RelayUsecase interface {
	// Relay validates the submission and sends it to the configured mailbox.
	Relay(ctx context.Context, sub *Submission) error
}
