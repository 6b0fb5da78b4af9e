package order

import (
	"sync"

	"storefront/internal/pkg/errs"
)

// Registry owns the live drafts, keyed by their generated ids. Callers pass
// draft ids between screens and resolve them here, so a stale or re-entered
// screen holds a reference to a well-defined draft instead of a snapshot.
type Registry struct {
	mu     sync.Mutex
	drafts map[string]*Draft
}

// NewRegistry returns an empty draft registry.
func NewRegistry() *Registry {
	return &Registry{drafts: make(map[string]*Draft)}
}

// Create validates the selection, registers a new draft, and returns it.
func (r *Registry) Create(sel Selection) (*Draft, error) {
	draft, err := NewDraft(sel)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.drafts[draft.id] = draft
	r.mu.Unlock()
	return draft, nil
}

// Get resolves a draft id.
func (r *Registry) Get(id string) (*Draft, error) {
	r.mu.Lock()
	draft, ok := r.drafts[id]
	r.mu.Unlock()

	if !ok {
		return nil, errs.NewError(errs.ErrDraftNotFound, id)
	}
	return draft, nil
}

// Remove drops a draft, typically after a successful submission or an
// abandoned flow.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.drafts, id)
	r.mu.Unlock()
}
