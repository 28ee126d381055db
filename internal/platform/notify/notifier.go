package notify

import "context"

// Notifier delivers short out-of-band messages to users. Delivery is
// best-effort: callers log failures but never roll back on them.
type Notifier interface {
	Notify(ctx context.Context, recipientID string, text string) error
}

// Noop is used when no delivery channel is configured.
type Noop struct{}

func (Noop) Notify(ctx context.Context, recipientID string, text string) error {
	return nil
}
