package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/search-team-api/internal/logger"
	"github.com/search-team-api/internal/metrics"
	"github.com/sirupsen/logrus"
)

// Gateway delivers a message to one or more addresses.
type Gateway interface {
	Send(ctx context.Context, to []string, subject, body string) error
}

// ErrTimeout is returned when the gateway does not answer within the
// dispatcher's deadline.
var ErrTimeout = errors.New("notification timed out")

// Dispatcher bounds every gateway call with a timeout. A gateway that
// ignores its context does not hold up the caller past the deadline.
type Dispatcher struct {
	gateway Gateway
	timeout time.Duration
}

func NewDispatcher(gateway Gateway, timeout time.Duration) *Dispatcher {
	return &Dispatcher{gateway: gateway, timeout: timeout}
}

func (d *Dispatcher) Send(ctx context.Context, to []string, subject, body string) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- d.gateway.Send(ctx, to, subject, body) }()

	entry := logger.Log.WithFields(logrus.Fields{"to": to, "subject": subject})
	select {
	case err := <-done:
		if err != nil {
			metrics.NotificationsTotal.WithLabelValues("failed").Inc()
			entry.WithError(err).Warn("notification failed")
			return fmt.Errorf("send notification: %w", err)
		}
		metrics.NotificationsTotal.WithLabelValues("sent").Inc()
		entry.Debug("notification sent")
		return nil
	case <-ctx.Done():
		metrics.NotificationsTotal.WithLabelValues("timeout").Inc()
		entry.WithField("timeout", d.timeout.String()).Warn("notification timed out")
		return fmt.Errorf("%w after %s", ErrTimeout, d.timeout)
	}
}

// LogGateway writes messages to the application log instead of sending them.
// Used in development.
type LogGateway struct{}

func (LogGateway) Send(_ context.Context, to []string, subject, body string) error {
	logger.Log.WithFields(logrus.Fields{
		"to":      to,
		"subject": subject,
		"body":    body,
	}).Info("notification (log gateway)")
	return nil
}
