package commentmod

// Policy variant which holds back every comment for manual review, regardless
// of any other rule outcome. The embedded config's Allow gates and NotifyNew
// flag still apply.
type AlwaysModeratePolicy struct {
	PolicyConfig
}

var _ Policy = (*AlwaysModeratePolicy)(nil)

func (p *AlwaysModeratePolicy) Moderate(c *CheckContext) bool {
	c.AddReason(ReasonAlwaysModerate)
	return true
}

// Policy variant which additionally holds back comments from anyone who has
// never had a comment approved for public display before. Requires the engine
// to have a SubmitterHistory configured; anonymous submitters always count as
// first-timers.
//
// History lookup failures fail closed: the comment is held back and the error
// is reported through the pipeline's error return.
type FirstTimerPolicy struct {
	PolicyConfig
}

var _ Policy = (*FirstTimerPolicy)(nil)

func (p *FirstTimerPolicy) Moderate(c *CheckContext) bool {
	if p.PolicyConfig.Moderate(c) {
		return true
	}
	if !c.HasPriorPublicComment() {
		c.AddReason(ReasonFirstTimer)
		return true
	}
	return false
}

// Convenience constructor for a policy which only runs the spam check.
func SpamOnlyPolicy() *PolicyConfig {
	return &PolicyConfig{
		SpamCheck: true,
	}
}
