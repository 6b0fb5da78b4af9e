/*
Package session maintains the client's login state.

This file implements the Synchronizer: a single source of truth for "is a
session currently active", kept consistent across all interested parts of the
application. Mutators (Login, Logout) notify listeners directly; a polling
loop covers writes made by other processes sharing the same file store, since
those produce no in-process notification. Storage failures are not
distinguished from an absent token: both read as logged out.
*/
package session

import (
	"context"
	"strconv"
	"sync"
	"time"

	"storefront/internal/pkg/logx"
)

// DefaultPollInterval is how often the fallback poll re-checks storage when
// no explicit interval is configured.
const DefaultPollInterval = 100 * time.Millisecond

// Listener is invoked on every broadcast with the current login flag.
type Listener func(loggedIn bool)

// Synchronizer caches the login flag derived from the token slot and fans out
// change notifications to subscribed listeners.
type Synchronizer struct {
	store    Store
	interval time.Duration

	mu        sync.Mutex
	loggedIn  bool
	listeners map[int]Listener
	nextID    int
}

// NewSynchronizer builds a Synchronizer over the given store. pollInterval
// controls the fallback poll in Run; zero or negative disables polling.
// The cached flag is primed from the store immediately.
func NewSynchronizer(store Store, pollInterval time.Duration) *Synchronizer {
	s := &Synchronizer{
		store:     store,
		interval:  pollInterval,
		listeners: make(map[int]Listener),
	}
	s.loggedIn = s.readFlag()
	return s
}

// readFlag re-derives the login flag from storage. Any storage failure
// collapses to "logged out".
func (s *Synchronizer) readFlag() bool {
	token, err := s.store.Get(KeyUserToken)
	if err != nil {
		logx.Warn("Session storage read failed; treating as logged out", "error", err.Error())
		return false
	}
	return token != ""
}

// Token returns the stored bearer token, or an empty string when absent or
// unreadable. It satisfies the API client's TokenSource.
func (s *Synchronizer) Token() string {
	token, err := s.store.Get(KeyUserToken)
	if err != nil {
		return ""
	}
	return token
}

// IsLoggedIn reports the cached login flag.
func (s *Synchronizer) IsLoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loggedIn
}

// Refresh re-reads the token slot, updates the cached flag, and broadcasts to
// every listener exactly once, whether or not the value changed.
func (s *Synchronizer) Refresh() {
	current := s.readFlag()

	s.mu.Lock()
	s.loggedIn = current
	callbacks := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		callbacks = append(callbacks, l)
	}
	s.mu.Unlock()

	// Listeners run outside the lock so they may subscribe or unsubscribe.
	for _, l := range callbacks {
		l(current)
	}
}

// Subscribe registers a listener for every broadcast and returns its
// deregistration function.
func (s *Synchronizer) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Run polls storage until ctx is cancelled, refreshing whenever the stored
// flag diverges from the cache. It covers token writes by external processes;
// in-process mutators notify directly and do not rely on it. Run returns
// immediately when polling is disabled.
func (s *Synchronizer) Run(ctx context.Context) {
	if s.interval <= 0 {
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.readFlag() != s.IsLoggedIn() {
				logx.Debug("Session poll detected an external login-state change")
				s.Refresh()
			}
		}
	}
}

// Login stores the session credential fields and broadcasts the new state.
func (s *Synchronizer) Login(token string, userID int64, userType int) error {
	if err := s.store.Set(KeyUserToken, token); err != nil {
		return err
	}
	if err := s.store.Set(KeyUserID, strconv.FormatInt(userID, 10)); err != nil {
		return err
	}
	if err := s.store.Set(KeyUserType, strconv.Itoa(userType)); err != nil {
		return err
	}

	s.Refresh()
	return nil
}

// Logout clears the token and the auxiliary identity fields together, then
// broadcasts. Deletion failures are logged but the broadcast still happens so
// the UI falls back to the logged-out screen either way.
func (s *Synchronizer) Logout() {
	for _, key := range []string{KeyUserToken, KeyUserID, KeyUserType} {
		if err := s.store.Delete(key); err != nil {
			logx.Warn("Failed to clear session slot", "key", key, "error", err.Error())
		}
	}
	s.Refresh()
}
