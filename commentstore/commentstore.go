// Package commentstore provides reference persistence for comments.
//
// The moderation engine itself only needs the narrow deletion interface
// defined in the root package; these stores add the plumbing an application
// wrapped around the engine typically wants: adding and fetching comments,
// per-target listings and counts, and batch cleanup of hidden comments.
// MemStore keeps everything in process memory; GormStore persists to sqlite
// or postgres.
package commentstore

import (
	"context"
	"errors"
	"time"

	"github.com/commentmod/commentmod"
)

var ErrCommentNotFound = errors.New("comment not found")

// Store is the full persistence interface for comments. It includes the
// engine's CommentStore and SubmitterHistory interfaces, so a single Store
// can be wired into an Engine as both collaborators.
type Store interface {
	commentmod.CommentStore
	commentmod.SubmitterHistory

	// Add persists a new comment. If the comment has no ID yet, the store
	// assigns one and writes it back to the struct. Adding an ID that is
	// already stored is an error.
	Add(ctx context.Context, cmt *commentmod.Comment) error

	// Get fetches a single comment by ID, or ErrCommentNotFound.
	Get(ctx context.Context, id string) (*commentmod.Comment, error)

	// ListForTarget returns the comments attached to one target, oldest
	// first. Hidden comments (held for moderation or removed) are excluded
	// unless includeHidden is set.
	ListForTarget(ctx context.Context, ref commentmod.TargetRef, includeHidden bool) ([]*commentmod.Comment, error)

	// CountForTarget returns the number of publicly visible comments on one
	// target.
	CountForTarget(ctx context.Context, ref commentmod.TargetRef) (int64, error)

	// MostCommented returns up to n target keys of the given kind, ordered
	// by descending public comment count.
	MostCommented(ctx context.Context, kind string, n int) ([]TargetCount, error)

	// PurgeHidden deletes hidden comments created before the cutoff and
	// returns how many were removed.
	PurgeHidden(ctx context.Context, before time.Time) (int64, error)
}

// TargetCount pairs a target key with its public comment count.
type TargetCount struct {
	Key   string
	Count int64
}

// A comment counts as publicly visible when it was approved for display and
// has not been removed since.
func visible(cmt *commentmod.Comment) bool {
	return cmt.IsPublic && !cmt.IsRemoved
}
