package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	apperr "github.com/noorjahan04/City-Backend/internal/errors"
)

const sendGridURL = "https://api.sendgrid.com/v3/mail/send"

// Mailer delivers notifications as email through the SendGrid v3 API.
type Mailer struct {
	apiKey string
	from   string
	client *http.Client
}

var _ Notifier = (*Mailer)(nil)

// NewMailer creates a SendGrid-backed Notifier.
func NewMailer(apiKey, from string) *Mailer {
	return &Mailer{
		apiKey: apiKey,
		from:   from,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Send implements Notifier.
func (m *Mailer) Send(ctx context.Context, recipient string, kind Kind, data Payload) error {
	subject, body := renderTemplate(kind, data)

	payload := map[string]interface{}{
		"personalizations": []map[string]interface{}{
			{"to": []map[string]string{{"email": recipient}}},
		},
		"from":    map[string]string{"email": m.from},
		"subject": subject,
		"content": []map[string]string{
			{"type": "text/plain", "value": body},
		},
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal mail payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sendGridURL, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("build mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return apperr.WithMessage(apperr.ErrUpstreamFailure, fmt.Sprintf("send mail: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return apperr.WithMessage(apperr.ErrUpstreamFailure, fmt.Sprintf("send mail: provider returned %d", resp.StatusCode))
	}
	return nil
}

func renderTemplate(kind Kind, data Payload) (subject, body string) {
	switch kind {
	case KindOTP:
		subject = "Verify your Email - OTP"
		body = fmt.Sprintf("Your OTP is: %s", data["otp"])
	case KindStatusUpdate:
		subject = "Update: Your Complaint Status Changed"
		body = fmt.Sprintf(
			"Hello %s,\nThe status of your complaint %q has been updated to %q.\nAssigned to: %s\nThank you for using our service.",
			data["user_name"], data["problem"], data["status"], data["assigned_to"],
		)
	default:
		subject = "Notification"
		body = data["message"]
	}
	return subject, body
}
