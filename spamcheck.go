package commentmod

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/commentmod/commentmod/cachestore"
)

// Interface for a type that can classify a comment as spam. Implementations
// may call out to external services (eg, Akismet) or run local heuristics; the
// engine treats them as a black box.
type SpamChecker interface {
	IsSpam(ctx context.Context, cmt *Comment, target Target) (bool, error)
}

// Adapter to allow plain functions as spam checkers.
type SpamCheckerFunc func(ctx context.Context, cmt *Comment, target Target) (bool, error)

func (f SpamCheckerFunc) IsSpam(ctx context.Context, cmt *Comment, target Target) (bool, error) {
	return f(ctx, cmt, target)
}

// Wraps another SpamChecker with a verdict cache, so that re-submissions of
// the same comment (same body, submitter, and target) don't hit the inner
// checker again. Verdicts are keyed by content hash, not comment ID, since
// comments have no ID before they are persisted.
type CachedChecker struct {
	Inner SpamChecker
	Cache cachestore.CacheStore
}

var _ SpamChecker = (*CachedChecker)(nil)

func verdictCacheKey(cmt *Comment, target Target) string {
	h := sha256.New()
	h.Write([]byte(cmt.Body))
	h.Write([]byte{0x00})
	h.Write([]byte(cmt.Submitter.ID))
	h.Write([]byte{0x00})
	h.Write([]byte(cmt.Submitter.Email))
	h.Write([]byte{0x00})
	h.Write([]byte(target.Ref().String()))
	return hex.EncodeToString(h.Sum(nil))
}

func (c *CachedChecker) IsSpam(ctx context.Context, cmt *Comment, target Target) (bool, error) {
	key := verdictCacheKey(cmt, target)
	existing, err := c.Cache.Get(ctx, "spam-verdict", key)
	if err != nil {
		return false, fmt.Errorf("failed checking spam verdict cache: %w", err)
	}
	switch existing {
	case "spam":
		return true, nil
	case "ham":
		return false, nil
	}

	spam, err := c.Inner.IsSpam(ctx, cmt, target)
	if err != nil {
		return spam, err
	}

	verdict := "ham"
	if spam {
		verdict = "spam"
	}
	if err := c.Cache.Set(ctx, "spam-verdict", key, verdict); err != nil {
		slog.Error("writing to spam verdict cache failed", "err", err)
	}
	return spam, nil
}
