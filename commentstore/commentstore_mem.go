package commentstore

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/commentmod/commentmod"
)

// MemStore is a simple in-memory implementation of the Store interface, for
// tests and small tools. Comments are copied on write and read; the store
// never aliases caller memory.
type MemStore struct {
	lk       sync.RWMutex
	comments map[string]*commentmod.Comment
	nextID   uint64
}

var _ Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{
		comments: make(map[string]*commentmod.Comment),
	}
}

func (s *MemStore) Add(ctx context.Context, cmt *commentmod.Comment) error {
	s.lk.Lock()
	defer s.lk.Unlock()

	if cmt.ID == "" {
		s.nextID++
		cmt.ID = strconv.FormatUint(s.nextID, 10)
	} else if _, ok := s.comments[cmt.ID]; ok {
		return fmt.Errorf("comment already stored: %s", cmt.ID)
	} else if n, err := strconv.ParseUint(cmt.ID, 10, 64); err == nil && n > s.nextID {
		// keep assigned IDs ahead of any caller-chosen numeric ID
		s.nextID = n
	}
	if cmt.CreatedAt.IsZero() {
		cmt.CreatedAt = time.Now()
	}

	cp := *cmt
	s.comments[cmt.ID] = &cp
	return nil
}

func (s *MemStore) Get(ctx context.Context, id string) (*commentmod.Comment, error) {
	s.lk.RLock()
	defer s.lk.RUnlock()

	cmt, ok := s.comments[id]
	if !ok {
		return nil, ErrCommentNotFound
	}
	cp := *cmt
	return &cp, nil
}

// Delete discards a stored comment. Deleting a comment that is not present
// is not an error.
func (s *MemStore) Delete(ctx context.Context, cmt *commentmod.Comment) error {
	s.lk.Lock()
	defer s.lk.Unlock()

	delete(s.comments, cmt.ID)
	return nil
}

func (s *MemStore) ListForTarget(ctx context.Context, ref commentmod.TargetRef, includeHidden bool) ([]*commentmod.Comment, error) {
	s.lk.RLock()
	defer s.lk.RUnlock()

	var out []*commentmod.Comment
	for _, cmt := range s.comments {
		if cmt.Target != ref {
			continue
		}
		if !includeHidden && !visible(cmt) {
			continue
		}
		cp := *cmt
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemStore) CountForTarget(ctx context.Context, ref commentmod.TargetRef) (int64, error) {
	s.lk.RLock()
	defer s.lk.RUnlock()

	var count int64
	for _, cmt := range s.comments {
		if cmt.Target == ref && visible(cmt) {
			count++
		}
	}
	return count, nil
}

func (s *MemStore) MostCommented(ctx context.Context, kind string, n int) ([]TargetCount, error) {
	if n <= 0 {
		return nil, nil
	}

	s.lk.RLock()
	defer s.lk.RUnlock()

	counts := make(map[string]int64)
	for _, cmt := range s.comments {
		if cmt.Target.Kind == kind && visible(cmt) {
			counts[cmt.Target.Key]++
		}
	}

	out := make([]TargetCount, 0, len(counts))
	for key, count := range counts {
		out = append(out, TargetCount{Key: key, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (s *MemStore) PurgeHidden(ctx context.Context, before time.Time) (int64, error) {
	s.lk.Lock()
	defer s.lk.Unlock()

	var purged int64
	for id, cmt := range s.comments {
		if !visible(cmt) && cmt.CreatedAt.Before(before) {
			delete(s.comments, id)
			purged++
		}
	}
	return purged, nil
}

func (s *MemStore) HasPriorPublicComment(ctx context.Context, submitterID string) (bool, error) {
	s.lk.RLock()
	defer s.lk.RUnlock()

	for _, cmt := range s.comments {
		if cmt.Submitter.ID == submitterID && visible(cmt) {
			return true, nil
		}
	}
	return false, nil
}

// RecordPublicComment is a no-op: the store derives submitter history from
// the comment rows themselves.
func (s *MemStore) RecordPublicComment(ctx context.Context, submitterID string) error {
	return nil
}
