package commentmod

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type failingHistory struct{}

func (failingHistory) HasPriorPublicComment(ctx context.Context, submitterID string) (bool, error) {
	return false, errors.New("history backend down")
}

func (failingHistory) RecordPublicComment(ctx context.Context, submitterID string) error {
	return errors.New("history backend down")
}

func TestAlwaysModeratePolicy(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng := EngineTestFixture()
	p := &AlwaysModeratePolicy{}

	target := &MockTarget{Kind: "blog.entry", Key: "e1", Enabled: true, Published: time.Now()}
	cmt := FakeComment(target.Ref())
	cmt.Body = "perfectly fine comment"

	c := NewCheckContext(ctx, &eng, cmt, target)
	assert.True(p.Allow(&c))
	assert.True(p.Moderate(&c))
	assert.Equal([]string{ReasonAlwaysModerate}, ExtractDecision(&c).Reasons)

	// embedded Allow gates still apply
	p2 := &AlwaysModeratePolicy{PolicyConfig: PolicyConfig{EnableField: enabledAccessor}}
	target.Enabled = false
	c = NewCheckContext(ctx, &eng, cmt, target)
	assert.False(p2.Allow(&c))
}

func TestFirstTimerPolicy(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng := EngineTestFixture()
	p := &FirstTimerPolicy{}

	target := &MockTarget{Kind: "blog.entry", Key: "e1", Published: time.Now()}
	cmt := FakeComment(target.Ref())
	cmt.Submitter.ID = "alice"

	// no prior public comment: held for review
	c := NewCheckContext(ctx, &eng, cmt, target)
	assert.True(p.Moderate(&c))
	assert.Equal([]string{ReasonFirstTimer}, ExtractDecision(&c).Reasons)
	assert.NoError(c.Err)

	// once a comment has been approved, the submitter passes
	assert.NoError(eng.History.RecordPublicComment(ctx, "alice"))
	c = NewCheckContext(ctx, &eng, cmt, target)
	assert.False(p.Moderate(&c))
}

func TestFirstTimerPolicyAnonymous(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng := EngineTestFixture()
	p := &FirstTimerPolicy{}

	target := &MockTarget{Kind: "blog.entry", Key: "e1", Published: time.Now()}
	cmt := FakeComment(target.Ref())
	cmt.Submitter.ID = ""

	// anonymous submitters always count as first-timers
	c := NewCheckContext(ctx, &eng, cmt, target)
	assert.True(p.Moderate(&c))
	assert.NoError(c.Err)
}

func TestFirstTimerPolicyHistoryFailure(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng := EngineTestFixture()
	eng.History = failingHistory{}
	p := &FirstTimerPolicy{}

	target := &MockTarget{Kind: "blog.entry", Key: "e1", Published: time.Now()}
	cmt := FakeComment(target.Ref())
	cmt.Submitter.ID = "alice"

	// lookup failure holds the comment back and reports the error
	c := NewCheckContext(ctx, &eng, cmt, target)
	assert.True(p.Moderate(&c))
	assert.Error(c.Err)
}

func TestFirstTimerPolicyNoHistory(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng := EngineTestFixture()
	eng.History = nil
	p := &FirstTimerPolicy{}

	target := &MockTarget{Kind: "blog.entry", Key: "e1", Published: time.Now()}
	cmt := FakeComment(target.Ref())
	cmt.Submitter.ID = "alice"

	c := NewCheckContext(ctx, &eng, cmt, target)
	assert.True(p.Moderate(&c))
	assert.ErrorIs(c.Err, ErrNoHistory)
}

func TestFirstTimerPolicyBaseRulesFirst(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng := EngineTestFixture()
	eng.History = failingHistory{}
	p := &FirstTimerPolicy{PolicyConfig: PolicyConfig{
		AutoModerateField: publishedAccessor,
		ModerateAfterDays: 7,
	}}

	// expired window moderates before history is ever consulted
	target := &MockTarget{Kind: "blog.entry", Key: "e1", Published: time.Now().Add(-30 * 24 * time.Hour)}
	cmt := FakeComment(target.Ref())
	cmt.Submitter.ID = "alice"

	c := NewCheckContext(ctx, &eng, cmt, target)
	assert.True(p.Moderate(&c))
	assert.Equal([]string{ReasonAutoModerated}, ExtractDecision(&c).Reasons)
	assert.NoError(c.Err)
}
