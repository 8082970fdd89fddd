package ports

import "context"

// Notifier delivers a one-time code to an email address. Implementations
// apply a bounded timeout; a failed send is recoverable and the voter may
// retry from the verification step.
type Notifier interface {
	Send(ctx context.Context, to, code string) error
}
