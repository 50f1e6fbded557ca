package commentmod

import (
	"context"
)

// Interface for tracking which submitters have previously had a comment
// approved for public display. Used by FirstTimerPolicy; submitters are
// identified by Submitter.ID.
type SubmitterHistory interface {
	HasPriorPublicComment(ctx context.Context, submitterID string) (bool, error)
	RecordPublicComment(ctx context.Context, submitterID string) error
}
