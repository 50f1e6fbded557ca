// Moderation policy engine for user-submitted comments.
//
// This package (`github.com/commentmod/commentmod`) decides, for each new comment on a content item, whether the comment may be persisted at all, whether it should be hidden from public display pending review, and whether an operator should be notified. It sits between a comment submission path and a persistence layer it does not own: the application calls Engine.PrePersist before storing a comment and Engine.PostPersist after, carrying the Decision between the two calls. Policies are looked up in a Registry by content kind; the config-driven PolicyConfig covers time-window closing, comment disabling, spam checking, and notification, while variants add blanket and first-time-submitter moderation.
//
// Subpackages provide pluggable collaborators: spam checkers (`akismet`, `keyword`), verdict caching (`cachestore`), submitter history (`histstore`), reference persistence (`commentstore`), and notification delivery (`notify`). See `cmd/commentmod` for a CLI built on this package.
package commentmod
