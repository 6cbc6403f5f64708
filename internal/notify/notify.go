package notify

import "context"

// Notifier delivers a short out-of-band message about a finished run.
// Sends are best-effort; the run result never depends on one.
type Notifier interface {
	Send(ctx context.Context, title, text string) error
}
