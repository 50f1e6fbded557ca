package commentmod

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/commentmod/commentmod/cachestore"
	"github.com/commentmod/commentmod/histstore"

	"github.com/brianvoe/gofakeit/v6"
)

// Minimal Target implementation for tests and development tooling.
type MockTarget struct {
	Kind      string
	Key       string
	Title     string
	URL       string
	Enabled   bool
	Published time.Time
}

func (t *MockTarget) Ref() TargetRef {
	return TargetRef{Kind: t.Kind, Key: t.Key}
}

func (t *MockTarget) Permalink() string {
	return t.URL
}

func (t *MockTarget) String() string {
	return t.Title
}

// CommentStore which records deletions in memory.
type MockStore struct {
	Deleted []*Comment
}

func NewMockStore() *MockStore {
	return &MockStore{}
}

func (s *MockStore) Delete(ctx context.Context, cmt *Comment) error {
	s.Deleted = append(s.Deleted, cmt)
	return nil
}

// Notifier which records sent comments in memory. Set Err to simulate
// delivery failure.
type MockNotifier struct {
	Sent []*Comment
	Err  error
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (n *MockNotifier) Send(ctx context.Context, cmt *Comment, target Target) error {
	if n.Err != nil {
		return n.Err
	}
	n.Sent = append(n.Sent, cmt)
	return nil
}

// The test string Akismet documents as always flagged as spam, useful as a
// canary in fixtures.
var SpamCanaryString = "viagra-test-123"

var _ SpamChecker = SpamCheckerFunc(canarySpamChecker)

func canarySpamChecker(ctx context.Context, cmt *Comment, target Target) (bool, error) {
	return strings.Contains(cmt.Body, SpamCanaryString), nil
}

// Returns an engine wired up with in-memory collaborators and a spam-checking,
// notifying policy registered for the "blog.entry" kind. Intentionally
// exported, for use in other packages.
func EngineTestFixture() Engine {
	reg := NewRegistry()
	if err := reg.Register(&PolicyConfig{SpamCheck: true, NotifyNew: true}, "blog.entry"); err != nil {
		panic(err)
	}
	engine := Engine{
		Logger:   slog.Default(),
		Registry: reg,
		Checker: &CachedChecker{
			Inner: SpamCheckerFunc(canarySpamChecker),
			Cache: cachestore.NewMemCacheStore(100, time.Hour),
		},
		Notifier: NewMockNotifier(),
		History:  histstore.NewMemHistStore(),
		Store:    NewMockStore(),
	}
	return engine
}

// Generates a plausible public comment for tests and development tooling.
func FakeComment(ref TargetRef) *Comment {
	return &Comment{
		Target: ref,
		Submitter: Submitter{
			ID:        gofakeit.Username(),
			Name:      gofakeit.Name(),
			Email:     gofakeit.Email(),
			IPAddress: gofakeit.IPv4Address(),
			UserAgent: gofakeit.UserAgent(),
		},
		Body:      gofakeit.Paragraph(1, 3, 12, " "),
		CreatedAt: time.Now(),
		IsPublic:  true,
	}
}

// Helper to access the private decision field from a context. Intended for use in test code, *not* from policies.
func ExtractDecision(c *CheckContext) Decision {
	return *c.decision
}
