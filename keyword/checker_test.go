package keyword

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/commentmod/commentmod"

	"github.com/stretchr/testify/assert"
)

func TestCheckerBasics(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	checker := NewChecker("viagra", "casino")
	target := &commentmod.MockTarget{Kind: "blog.entry", Key: "e1", Published: time.Now()}

	cmt := commentmod.FakeComment(target.Ref())
	cmt.Body = "I really enjoyed this article, thanks"
	cmt.Submitter.Name = "Alice"
	spam, err := checker.IsSpam(ctx, cmt, target)
	assert.NoError(err)
	assert.False(spam)

	cmt.Body = "cheap VIAGRA overnight"
	spam, err = checker.IsSpam(ctx, cmt, target)
	assert.NoError(err)
	assert.True(spam)

	// unicode folding catches censor-dodging variants
	cmt.Body = "cheap vïagra overnight"
	spam, err = checker.IsSpam(ctx, cmt, target)
	assert.NoError(err)
	assert.True(spam)

	// submitter name is scanned too
	cmt.Body = "nice post"
	cmt.Submitter.Name = "Online Casino"
	spam, err = checker.IsSpam(ctx, cmt, target)
	assert.NoError(err)
	assert.True(spam)
}

func TestCheckerGtube(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	// empty blocklist still catches the canary
	checker := NewChecker()
	target := &commentmod.MockTarget{Kind: "blog.entry", Key: "e1", Published: time.Now()}

	cmt := commentmod.FakeComment(target.Ref())
	cmt.Body = "XJS*C4JDBQADN1.NSBN3*2IDNEN*GTUBE-STANDARD-ANTI-UBE-TEST-EMAIL*C.34X"
	spam, err := checker.IsSpam(ctx, cmt, target)
	assert.NoError(err)
	assert.True(spam)
}

func TestCheckerLoadFromFileJSON(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	p := filepath.Join(t.TempDir(), "blocklist.json")
	assert.NoError(os.WriteFile(p, []byte(`["rolex", "lottery"]`), 0644))

	checker := NewChecker()
	assert.NoError(checker.LoadFromFileJSON(p))

	target := &commentmod.MockTarget{Kind: "blog.entry", Key: "e1", Published: time.Now()}
	cmt := commentmod.FakeComment(target.Ref())
	cmt.Body = "genuine Rolex watches"
	spam, err := checker.IsSpam(ctx, cmt, target)
	assert.NoError(err)
	assert.True(spam)

	assert.Error(checker.LoadFromFileJSON(filepath.Join(t.TempDir(), "missing.json")))
}
