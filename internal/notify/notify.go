// Package notify is the outbound notification boundary. Delivery is
// best-effort: callers on the complaint path log failures and move on, the
// complaint state transition is never rolled back because a message did not
// go out.
package notify

import "context"

// Kind selects the message template.
type Kind string

const (
	// KindOTP delivers a one-time verification code.
	KindOTP Kind = "otp"
	// KindStatusUpdate informs a complaint owner about a status transition.
	KindStatusUpdate Kind = "status_update"
)

// Payload carries template fields by name.
type Payload map[string]string

// Notifier delivers a templated message to a recipient out-of-band.
type Notifier interface {
	Send(ctx context.Context, recipient string, kind Kind, data Payload) error
}

// Noop is a Notifier that drops everything. Used when no provider is
// configured.
type Noop struct{}

// Send implements Notifier.
func (Noop) Send(ctx context.Context, recipient string, kind Kind, data Payload) error {
	return nil
}
