package commentmod

// Reason strings recorded on a Decision as rules fire.
const (
	ReasonDisabled       = "comments-disabled"
	ReasonClosed         = "closed-window"
	ReasonAutoModerated  = "auto-moderated"
	ReasonSpam           = "spam"
	ReasonFirstTimer     = "first-timer"
	ReasonAlwaysModerate = "always-moderate"
)

// Outcome of pre-persist policy evaluation for a single comment. The caller
// holds on to the Decision between the two pipeline phases and hands it back
// to PostPersist after the comment has (or has not) been stored.
type Decision struct {
	// The comment must not be persisted. If it was stored anyway, post-persist
	// processing deletes it.
	Reject bool
	// The comment was held back from public display (IsPublic forced false).
	Moderated bool
	// Reason strings recorded by policy rules, in the order they fired.
	Reasons []string
}

// Records a reason string for the current outcome.
func (d *Decision) AddReason(val string) {
	d.Reasons = append(d.Reasons, val)
}
