// Package notify delivers best-effort alerts to the offline side of a
// conversation after a message lands. Every transport here is
// fire-and-forget from the sender's point of view: failures are logged
// by the caller and never surface to the message-send response.
package notify

import (
	"context"
	"errors"
)

type Notification struct {
	RecipientID      string
	RecipientEmail   string
	RecipientName    string
	CounterpartyName string
	Preview          string
	DeepLink         string
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Multi fans one notification out to several transports. All transports
// are attempted; errors are joined.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, n Notification) error {
	var errs []error
	for _, notifier := range m {
		if err := notifier.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
