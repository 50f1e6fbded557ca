package commentmod

import (
	"fmt"
	"time"
)

// Decides the fate of new comments for the content kinds it is registered
// against. Policies are evaluated synchronously in the request path; they
// reach collaborators (spam checker, submitter history, notifier) indirectly
// through the CheckContext.
type Policy interface {
	// Whether the comment may be persisted at all. Returning false rejects the
	// comment outright; Moderate and Notify are never called for it.
	Allow(c *CheckContext) bool
	// Whether a persisted comment should be held back from public display.
	Moderate(c *CheckContext) bool
	// Operator notification hook. Called during post-persist processing, only
	// for comments which were kept.
	Notify(c *CheckContext)
}

// Config-driven Policy covering the common moderation rules. The zero value
// does nothing: every comment is allowed, public, and silent. Most
// deployments should use this type (or one of the variants embedding it)
// rather than implementing Policy from scratch.
//
// Target field access goes through the typed accessor funcs below. An
// accessor left nil disables its rule.
type PolicyConfig struct {
	// Consult the engine's spam checker during Moderate. Checker failures
	// fail open: the comment is treated as ham and the error is reported
	// through the pipeline's error return.
	SpamCheck bool

	// Reads the target's "comments enabled" flag. When set and false for a
	// given target, all new comments on it are rejected.
	EnableField func(Target) bool

	// Reads the target date that the auto-close window counts from (eg, a
	// publication date). Comments are rejected once the window has passed.
	AutoCloseField func(Target) time.Time
	// Length of the auto-close window in days. Zero closes comments starting
	// the moment of the field date itself.
	CloseAfterDays int

	// Same shape as the auto-close pair, but expiry hides new comments
	// instead of rejecting them.
	AutoModerateField func(Target) time.Time
	ModerateAfterDays int

	// Send an operator notification for every comment that is kept.
	NotifyNew bool
}

var _ Policy = (*PolicyConfig)(nil)

// Checks that the day counts and accessor funcs are coherent. Called by
// Registry.Register; all failures wrap ErrInvalidPolicy.
func (p *PolicyConfig) Validate() error {
	if p.CloseAfterDays < 0 {
		return fmt.Errorf("%w: negative auto-close day count (%d)", ErrInvalidPolicy, p.CloseAfterDays)
	}
	if p.CloseAfterDays > 0 && p.AutoCloseField == nil {
		return fmt.Errorf("%w: auto-close day count set without an accessor func", ErrInvalidPolicy)
	}
	if p.ModerateAfterDays < 0 {
		return fmt.Errorf("%w: negative auto-moderate day count (%d)", ErrInvalidPolicy, p.ModerateAfterDays)
	}
	if p.ModerateAfterDays > 0 && p.AutoModerateField == nil {
		return fmt.Errorf("%w: auto-moderate day count set without an accessor func", ErrInvalidPolicy)
	}
	return nil
}

// Whether the window starting at the accessor's date, lasting the given
// number of days, has strictly passed. A comment arriving exactly at the
// cutoff instant is still inside the window.
func windowExpired(field func(Target) time.Time, days int, target Target) bool {
	if field == nil {
		return false
	}
	cutoff := field(target).Add(time.Duration(days) * 24 * time.Hour)
	return time.Now().After(cutoff)
}

func (p *PolicyConfig) Allow(c *CheckContext) bool {
	if p.EnableField != nil && !p.EnableField(c.Target) {
		c.AddReason(ReasonDisabled)
		return false
	}
	if windowExpired(p.AutoCloseField, p.CloseAfterDays, c.Target) {
		c.AddReason(ReasonClosed)
		return false
	}
	return true
}

func (p *PolicyConfig) Moderate(c *CheckContext) bool {
	if windowExpired(p.AutoModerateField, p.ModerateAfterDays, c.Target) {
		c.AddReason(ReasonAutoModerated)
		return true
	}
	// the spam check runs last, so an expired moderation window never costs
	// an external API call
	if p.SpamCheck && c.IsSpam() {
		c.AddReason(ReasonSpam)
		return true
	}
	return false
}

func (p *PolicyConfig) Notify(c *CheckContext) {
	if !p.NotifyNew {
		return
	}
	c.SendNotification()
}
