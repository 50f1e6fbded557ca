package commentmod

import (
	"fmt"
)

// Maps content kinds to moderation policies, with at most one policy per
// kind. Register and Unregister are batch operations and atomic: a failed
// call leaves the registry exactly as it was.
//
// The registry does no internal locking. Populate it during application
// startup, before the engine starts evaluating comments; mutating it
// concurrently with evaluation is a data race.
type Registry struct {
	policies map[string]Policy
}

func NewRegistry() *Registry {
	return &Registry{
		policies: make(map[string]Policy),
	}
}

// Package-level registry for applications which only need one. Engines with a
// nil Registry field fall back to this.
var DefaultRegistry = NewRegistry()

// Registers a policy for one or more content kinds. The single policy value
// is shared across every kind in the batch.
//
// If the policy implements interface{ Validate() error } (PolicyConfig and
// its variants do), it is validated first and any failure is returned before
// the registry is touched. Registering a kind twice, in one batch or across
// calls, fails with ErrAlreadyModerated.
func (r *Registry) Register(p Policy, kinds ...string) error {
	if v, ok := p.(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	seen := make(map[string]bool, len(kinds))
	for _, kind := range kinds {
		if _, ok := r.policies[kind]; ok {
			return fmt.Errorf("%w: %s", ErrAlreadyModerated, kind)
		}
		if seen[kind] {
			return fmt.Errorf("%w: %s", ErrAlreadyModerated, kind)
		}
		seen[kind] = true
	}
	for _, kind := range kinds {
		r.policies[kind] = p
	}
	return nil
}

// Removes the policies registered for the given kinds. If any of the kinds
// has no policy, fails with ErrNotModerated and removes nothing.
func (r *Registry) Unregister(kinds ...string) error {
	for _, kind := range kinds {
		if _, ok := r.policies[kind]; !ok {
			return fmt.Errorf("%w: %s", ErrNotModerated, kind)
		}
	}
	for _, kind := range kinds {
		delete(r.policies, kind)
	}
	return nil
}

// Returns the policy registered for a kind, or nil when there is none.
func (r *Registry) PolicyFor(kind string) Policy {
	return r.policies[kind]
}
