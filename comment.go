package commentmod

import (
	"fmt"
	"time"
)

// Reference to the parent content item a comment is attached to. Kind is the
// policy registry key (eg, "blog.entry"); Key identifies the individual item
// within that kind.
type TargetRef struct {
	Kind string
	Key  string
}

func (ref TargetRef) String() string {
	return ref.Kind + "/" + ref.Key
}

// The parent content item a comment is attached to. The engine never inspects
// targets beyond this interface; any per-field access a policy needs is wired
// up through typed accessor funcs on PolicyConfig.
//
// If a target also implements fmt.Stringer, notifiers use String() as the
// display title.
type Target interface {
	Ref() TargetRef
	Permalink() string
}

// Identity of the person who submitted a comment. ID is a stable identity key;
// empty means the submitter is anonymous. IPAddress and UserAgent are passed
// through to spam checkers which want them (eg, Akismet).
type Submitter struct {
	ID        string
	Name      string
	Email     string
	IPAddress string
	UserAgent string
}

// A single user comment, as handed to the moderation pipeline. The engine
// mutates only IsPublic (during pre-persist) and IsRemoved (during
// post-persist); everything else is owned by the caller and its persistence
// layer.
type Comment struct {
	// assigned by the persistence layer; empty before the comment is persisted
	ID        string
	Target    TargetRef
	Submitter Submitter
	Body      string
	CreatedAt time.Time

	// visibility flag: false means the comment is held back from public display
	IsPublic bool
	// deletion marker, set when post-persist processing discards the comment
	IsRemoved bool
}

// Short display title for a target, for log lines and notifications.
func TargetTitle(target Target) string {
	if s, ok := target.(fmt.Stringer); ok {
		return s.String()
	}
	return target.Ref().String()
}
