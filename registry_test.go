package commentmod

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryBasics(t *testing.T) {
	assert := assert.New(t)

	reg := NewRegistry()
	assert.Nil(reg.PolicyFor("blog.entry"))

	p := &PolicyConfig{SpamCheck: true}
	assert.NoError(reg.Register(p, "blog.entry"))
	assert.Same(p, reg.PolicyFor("blog.entry"))

	// second registration for the same kind fails, entry unchanged
	p2 := &AlwaysModeratePolicy{}
	err := reg.Register(p2, "blog.entry")
	assert.ErrorIs(err, ErrAlreadyModerated)
	assert.Same(p, reg.PolicyFor("blog.entry"))

	assert.NoError(reg.Unregister("blog.entry"))
	assert.Nil(reg.PolicyFor("blog.entry"))

	err = reg.Unregister("blog.entry")
	assert.ErrorIs(err, ErrNotModerated)
}

func TestRegistryBatchShared(t *testing.T) {
	assert := assert.New(t)

	reg := NewRegistry()
	p := &PolicyConfig{NotifyNew: true}
	assert.NoError(reg.Register(p, "blog.entry", "news.article", "photo.album"))

	// one policy value shared across every kind of the batch
	assert.Same(p, reg.PolicyFor("blog.entry"))
	assert.Same(p, reg.PolicyFor("news.article"))
	assert.Same(p, reg.PolicyFor("photo.album"))

	assert.NoError(reg.Unregister("news.article", "photo.album"))
	assert.Nil(reg.PolicyFor("news.article"))
	assert.Same(p, reg.PolicyFor("blog.entry"))
}

func TestRegistryAtomicBatches(t *testing.T) {
	assert := assert.New(t)

	reg := NewRegistry()
	p := &PolicyConfig{}
	assert.NoError(reg.Register(p, "blog.entry"))

	// conflicting batch registers nothing
	p2 := &PolicyConfig{SpamCheck: true}
	err := reg.Register(p2, "news.article", "blog.entry", "photo.album")
	assert.ErrorIs(err, ErrAlreadyModerated)
	assert.Nil(reg.PolicyFor("news.article"))
	assert.Nil(reg.PolicyFor("photo.album"))
	assert.Same(p, reg.PolicyFor("blog.entry"))

	// a kind repeated within one batch is also a duplicate
	err = reg.Register(p2, "forum.thread", "forum.thread")
	assert.ErrorIs(err, ErrAlreadyModerated)
	assert.Nil(reg.PolicyFor("forum.thread"))

	// failed unregister batch removes nothing
	err = reg.Unregister("blog.entry", "news.article")
	assert.ErrorIs(err, ErrNotModerated)
	assert.Same(p, reg.PolicyFor("blog.entry"))
}

func TestRegistryValidation(t *testing.T) {
	assert := assert.New(t)

	reg := NewRegistry()

	err := reg.Register(&PolicyConfig{CloseAfterDays: -1}, "blog.entry")
	assert.ErrorIs(err, ErrInvalidPolicy)
	assert.Nil(reg.PolicyFor("blog.entry"))

	err = reg.Register(&PolicyConfig{CloseAfterDays: 7}, "blog.entry")
	assert.ErrorIs(err, ErrInvalidPolicy)

	err = reg.Register(&PolicyConfig{ModerateAfterDays: -3}, "blog.entry")
	assert.ErrorIs(err, ErrInvalidPolicy)

	err = reg.Register(&PolicyConfig{ModerateAfterDays: 30}, "blog.entry")
	assert.ErrorIs(err, ErrInvalidPolicy)

	// variants inherit config validation through embedding
	err = reg.Register(&AlwaysModeratePolicy{PolicyConfig: PolicyConfig{CloseAfterDays: -1}}, "blog.entry")
	assert.ErrorIs(err, ErrInvalidPolicy)

	assert.NoError(reg.Register(SpamOnlyPolicy(), "blog.entry"))
}
