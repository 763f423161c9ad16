package service

import "context"

// Mailer delivers a composed message. Callers decide whether a failure is
// fatal (registration path) or best-effort (admin alerts).
type Mailer interface {
	Send(ctx context.Context, subject string, to []string, htmlBody string) error
}
