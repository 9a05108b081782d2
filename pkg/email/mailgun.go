package email

import (
	"contact-form-relay/config"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Responses are small; this only guards against a misbehaving endpoint.
const maxResponseBody = 64 << 10

// MailgunSender posts messages to the Mailgun v3 HTTP API.
type MailgunSender struct {
	apiBase string
	domain  string
	apiKey  string
	client  *http.Client
}

func NewMailgunSender(cfg *config.Config) *MailgunSender {
	return &MailgunSender{
		apiBase: strings.TrimRight(cfg.MailgunAPIBase, "/"),
		domain:  cfg.MailgunDomain,
		apiKey:  cfg.MailgunAPIKey,
		client:  &http.Client{Timeout: cfg.SendTimeout},
	}
}

// Send posts the message as a form to {base}/{domain}/messages with HTTP
// basic auth. Mailgun reports most failures as JSON with a "message" field,
// but auth failures come back as a bare string.
func (s *MailgunSender) Send(ctx context.Context, msg Message) error {
	form := url.Values{}
	form.Set("from", msg.From)
	form.Set("to", msg.To)
	form.Set("subject", msg.Subject)
	form.Set("text", msg.Text)
	if msg.ReplyTo != "" {
		form.Set("h:Reply-To", msg.ReplyTo)
	}

	endpoint := fmt.Sprintf("%s/%s/messages", s.apiBase, s.domain)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build mailgun request: %w", err)
	}
	req.SetBasicAuth("api", s.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach mailgun: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    apiMessage(resp.StatusCode, body),
	}
}

// apiMessage extracts the provider's explanation from an error response.
func apiMessage(status int, body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	if raw := strings.TrimSpace(string(body)); raw != "" {
		return raw
	}
	return fmt.Sprintf("email service returned status %d", status)
}
