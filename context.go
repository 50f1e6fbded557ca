package commentmod

import (
	"context"
	"log/slog"
)

// The primary interface exposed to policies. One CheckContext is built per
// pipeline phase and discarded afterwards.
type CheckContext struct {
	// Actual golang "context.Context", if needed for timeouts etc
	Ctx context.Context
	// Any errors encountered while processing methods on this struct get rolled up in this nullable field
	Err error
	// slog logger handle, with comment-specific structured fields pre-populated. Pointer, but expected to never be nil.
	Logger *slog.Logger

	// The comment under evaluation. Policies must not mutate it; visibility
	// changes are applied by the engine from the Decision.
	Comment *Comment
	// The parent content item the comment is attached to.
	Target Target

	engine   *Engine // NOTE: pointer, but expected never to be nil
	decision *Decision
}

func NewCheckContext(ctx context.Context, eng *Engine, cmt *Comment, target Target) CheckContext {
	ref := target.Ref()
	return CheckContext{
		Ctx: ctx,
		Err: nil,
		Logger: eng.logger().With(
			"kind", ref.Kind,
			"key", ref.Key,
			"submitter", cmt.Submitter.ID,
		),
		Comment:  cmt,
		Target:   target,
		engine:   eng,
		decision: &Decision{},
	}
}

// request external state via engine (indirect)

// Consults the engine's spam checker about the comment under evaluation.
// Failures (including a missing checker) fail open: the comment counts as
// ham, and the error is rolled up on the context.
func (c *CheckContext) IsSpam() bool {
	if c.engine.Checker == nil {
		if nil == c.Err {
			c.Err = ErrNoSpamChecker
		}
		return false
	}
	spam, err := c.engine.Checker.IsSpam(c.Ctx, c.Comment, c.Target)
	if err != nil {
		if nil == c.Err {
			c.Err = err
		}
		return false
	}
	return spam
}

// Whether the submitter has previously had a comment approved for public
// display. Anonymous submitters (empty Submitter.ID) never do. Failures
// (including a missing history collaborator) fail closed: the submitter
// counts as a first-timer, and the error is rolled up on the context.
func (c *CheckContext) HasPriorPublicComment() bool {
	if c.Comment.Submitter.ID == "" {
		return false
	}
	if c.engine.History == nil {
		if nil == c.Err {
			c.Err = ErrNoHistory
		}
		return false
	}
	prior, err := c.engine.History.HasPriorPublicComment(c.Ctx, c.Comment.Submitter.ID)
	if err != nil {
		if nil == c.Err {
			c.Err = err
		}
		return false
	}
	return prior
}

// Delivers an operator notification about the comment under evaluation via
// the engine's notifier. Delivery failure is logged and rolled up on the
// context; it is never retried and never blocks the pipeline outcome.
func (c *CheckContext) SendNotification() {
	if c.engine.Notifier == nil {
		c.Logger.Debug("skipping notification, no notifier configured")
		return
	}
	if err := c.engine.Notifier.Send(c.Ctx, c.Comment, c.Target); err != nil {
		c.Logger.Error("sending comment notification failed", "err", err)
		notificationCount.WithLabelValues("error").Inc()
		if nil == c.Err {
			c.Err = err
		}
		return
	}
	notificationCount.WithLabelValues("sent").Inc()
}

// update decision (indirect) ======

func (c *CheckContext) AddReason(val string) {
	c.decision.AddReason(val)
}

// Returns a pointer to the underlying engine. This usually should NOT be used in policies.
func (c *CheckContext) InternalEngine() *Engine {
	return c.engine
}
