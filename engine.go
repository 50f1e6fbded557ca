package commentmod

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Runtime for evaluating moderation policies against incoming comments and
// recording the outcomes. The two entry points bracket the caller's own
// persistence step: PrePersist before the comment is stored, PostPersist
// after.
//
// Logger and Registry may be left nil (slog.Default() and DefaultRegistry are
// used). The collaborator fields are optional; each is only required by the
// policies that reach for it.
type Engine struct {
	Logger   *slog.Logger
	Registry *Registry
	// consulted by policies with SpamCheck set
	Checker SpamChecker
	// delivers operator notifications for kept comments
	Notifier Notifier
	// consulted by FirstTimerPolicy, and updated for kept public comments
	History SubmitterHistory
	// used to discard rejected comments during post-persist processing
	Store CommentStore
}

func (eng *Engine) logger() *slog.Logger {
	if eng.Logger == nil {
		return slog.Default()
	}
	return eng.Logger
}

func (eng *Engine) registry() *Registry {
	if eng.Registry == nil {
		return DefaultRegistry
	}
	return eng.Registry
}

// Evaluates the registered policy for a new comment, before it is persisted.
// Mutates cmt.IsPublic when the policy holds the comment back. The returned
// Decision must be carried by the caller and handed to PostPersist once the
// comment has (or has not) been stored.
//
// A target kind with no registered policy yields the zero Decision: the
// comment is allowed, public, and silent. A non-nil error reports collaborator
// failures; the Decision returned alongside it is still valid, and reflects
// the documented fallback behavior of the failed check.
func (eng *Engine) PrePersist(ctx context.Context, cmt *Comment, target Target) (dec Decision, outErr error) {
	// similar to an HTTP server, we want to recover any panics from policy execution
	defer func() {
		if r := recover(); r != nil {
			eng.logger().Error("comment policy execution exception", "err", r, "target", target.Ref())
			eventErrorCount.WithLabelValues("pre-persist").Inc()
			dec = Decision{}
			outErr = fmt.Errorf("panic during policy execution: %v", r)
		}
	}()

	start := time.Now()
	defer func() {
		duration := time.Since(start)
		eventProcessDuration.WithLabelValues("pre-persist").Observe(duration.Seconds())
	}()

	policy := eng.registry().PolicyFor(target.Ref().Kind)
	if policy == nil {
		return Decision{}, nil
	}

	c := NewCheckContext(ctx, eng, cmt, target)
	if !policy.Allow(&c) {
		c.decision.Reject = true
	} else if policy.Moderate(&c) {
		c.decision.Moderated = true
		cmt.IsPublic = false
	}

	eng.canonicalLogLine(&c, "pre-persist")
	eventProcessCount.WithLabelValues("pre-persist").Inc()
	if c.Err != nil {
		eventErrorCount.WithLabelValues("pre-persist").Inc()
	}
	for _, val := range c.decision.Reasons {
		if c.decision.Reject {
			commentRejectedCount.WithLabelValues(val).Inc()
		} else if c.decision.Moderated {
			commentModeratedCount.WithLabelValues(val).Inc()
		}
	}
	return *c.decision, c.Err
}

// Completes the pipeline for a comment after the caller's persistence step,
// using the Decision from PrePersist. Rejected comments are marked removed and
// deleted from the engine's Store; kept comments trigger the policy's Notify
// hook and, when public and from an identified submitter, a history update.
// Deletion and notification are mutually exclusive.
//
// Deletion does not consult the registry, so a rejected comment is still
// discarded if its policy was unregistered between the two phases.
func (eng *Engine) PostPersist(ctx context.Context, cmt *Comment, target Target, dec Decision) (outErr error) {
	// similar to an HTTP server, we want to recover any panics from policy execution
	defer func() {
		if r := recover(); r != nil {
			eng.logger().Error("comment policy execution exception", "err", r, "target", target.Ref())
			eventErrorCount.WithLabelValues("post-persist").Inc()
			outErr = fmt.Errorf("panic during policy execution: %v", r)
		}
	}()

	start := time.Now()
	defer func() {
		duration := time.Since(start)
		eventProcessDuration.WithLabelValues("post-persist").Observe(duration.Seconds())
	}()

	c := NewCheckContext(ctx, eng, cmt, target)
	c.decision = &dec

	if dec.Reject {
		cmt.IsRemoved = true
		if eng.Store == nil {
			return ErrNoStore
		}
		if err := eng.Store.Delete(ctx, cmt); err != nil {
			eventErrorCount.WithLabelValues("post-persist").Inc()
			return fmt.Errorf("deleting rejected comment: %w", err)
		}
		commentDeletedCount.Inc()
		eng.canonicalLogLine(&c, "post-persist")
		eventProcessCount.WithLabelValues("post-persist").Inc()
		return nil
	}

	if policy := eng.registry().PolicyFor(target.Ref().Kind); policy != nil {
		policy.Notify(&c)
	}
	if cmt.IsPublic && cmt.Submitter.ID != "" && eng.History != nil {
		if err := eng.History.RecordPublicComment(ctx, cmt.Submitter.ID); err != nil {
			c.Logger.Error("recording submitter history failed", "err", err)
			if nil == c.Err {
				c.Err = err
			}
		}
	}

	eng.canonicalLogLine(&c, "post-persist")
	eventProcessCount.WithLabelValues("post-persist").Inc()
	if c.Err != nil {
		eventErrorCount.WithLabelValues("post-persist").Inc()
	}
	return c.Err
}

func (eng *Engine) canonicalLogLine(c *CheckContext, phase string) {
	c.Logger.Info("canonical-event-line",
		"phase", phase,
		"reject", c.decision.Reject,
		"moderated", c.decision.Moderated,
		"reasons", c.decision.Reasons,
		"removed", c.Comment.IsRemoved,
	)
}
