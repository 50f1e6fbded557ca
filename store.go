package commentmod

import (
	"context"
)

// The narrow slice of the caller's persistence layer the engine needs: the
// ability to discard a comment that was rejected during pre-persist checks.
// The commentstore package provides reference implementations.
type CommentStore interface {
	Delete(ctx context.Context, cmt *Comment) error
}
