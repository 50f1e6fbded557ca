// Implementations of the moderation engine's SubmitterHistory interface, which
// tracks whether a submitter has previously had a comment approved for public
// display.
//
// Counters are keyed by submitter identity. The commentstore package offers an
// alternative that derives history from the persisted comments themselves.
package histstore

import (
	"context"
)

// In-memory approval counter per submitter. Not safe for concurrent use;
// intended for tests and single-process tools.
type MemHistStore struct {
	Counts map[string]int
}

func NewMemHistStore() *MemHistStore {
	return &MemHistStore{
		Counts: make(map[string]int),
	}
}

func (s *MemHistStore) HasPriorPublicComment(ctx context.Context, submitterID string) (bool, error) {
	return s.Counts[submitterID] > 0, nil
}

func (s *MemHistStore) RecordPublicComment(ctx context.Context, submitterID string) error {
	s.Counts[submitterID] = s.Counts[submitterID] + 1
	return nil
}
