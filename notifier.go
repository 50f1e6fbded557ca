package commentmod

import (
	"context"
)

// Interface for a type that can deliver operator notifications about newly
// posted comments. Delivery failures are reported back to the pipeline but
// never retried by the engine.
type Notifier interface {
	Send(ctx context.Context, cmt *Comment, target Target) error
}
