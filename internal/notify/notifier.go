package notify

import (
	"context"
	"log/slog"

	"eshop/internal/domain"
	"eshop/internal/observability/metrics"
	"eshop/internal/service"
)

// Notifier delivers admin alerts to the fixed operator address. Alerts are
// best-effort: a transport failure is logged and reported as false, never
// propagated to the request that triggered it.
type Notifier struct {
	mailer     service.Mailer
	adminEmail string
}

func NewNotifier(mailer service.Mailer, adminEmail string) *Notifier {
	return &Notifier{mailer: mailer, adminEmail: adminEmail}
}

// NewUserAlert reports whether the alert was delivered.
func (n *Notifier) NewUserAlert(ctx context.Context, u *domain.User) bool {
	subject, body := ComposeNewUserAlert(u)
	if err := n.mailer.Send(ctx, subject, []string{n.adminEmail}, body); err != nil {
		slog.Error("sending new user alert", "error", err, "user_id", u.ID)
		metrics.EmailsSentTotal.WithLabelValues("new_user_alert", "failure").Inc()
		return false
	}
	metrics.EmailsSentTotal.WithLabelValues("new_user_alert", "success").Inc()
	return true
}

// NewOrderAlert reports whether the alert was delivered.
func (n *Notifier) NewOrderAlert(ctx context.Context, username string, o *domain.Order) bool {
	subject, body := ComposeNewOrderAlert(username, o)
	if err := n.mailer.Send(ctx, subject, []string{n.adminEmail}, body); err != nil {
		slog.Error("sending new order alert", "error", err, "order_id", o.ID)
		metrics.EmailsSentTotal.WithLabelValues("new_order_alert", "failure").Inc()
		return false
	}
	metrics.EmailsSentTotal.WithLabelValues("new_order_alert", "success").Inc()
	return true
}
