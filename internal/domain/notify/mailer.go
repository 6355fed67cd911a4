package notify

import "context"

// Mailer delivers out-of-band notifications. Callers dispatch it from a
// background goroutine; a delivery failure never fails the triggering request.
type Mailer interface {
	SendVerification(ctx context.Context, to, username, host, token string) error

	SendPasswordReset(ctx context.Context, to, username, host, token string) error
}
