// Package session holds the shell's authentication state: the current
// identity (or its absence) and an observer contract for everything that
// re-renders when it changes. It is a pure in-memory register, no network
// access, no persistence.
package session

import (
	"sync"

	"github.com/noteloft/noteloft/pkg/domain"
)

// State is the store's three-valued presence flag. The store starts Unknown
// until the first startup resolution against the remote service completes.
type State int

const (
	StateUnknown State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Listener observes session changes. Listeners are invoked synchronously,
// in subscription order, on every mutation; they must not mutate the store
// from inside the callback.
type Listener func(domain.Session, State)

type entry struct {
	id int
	fn Listener
}

// Store owns the single active session. A successful sign-in fully replaces
// any prior session; there is never more than one.
type Store struct {
	mu        sync.Mutex
	state     State
	session   domain.Session
	listeners []entry
	nextID    int
}

// NewStore returns a store in the Unknown state.
func NewStore() *Store {
	return &Store{state: StateUnknown}
}

// Current returns the active session and presence state. The session value
// is only meaningful when the state is StateAuthenticated.
func (s *Store) Current() (domain.Session, State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session, s.state
}

// Set installs sess as the one active session, or clears it when nil.
// All listeners are notified before Set returns.
func (s *Store) Set(sess *domain.Session) {
	s.apply(sess)
}

// Clear drops the active session, leaving the store anonymous.
func (s *Store) Clear() {
	s.apply(nil)
}

// Resolve records the outcome of the startup token check, moving the store
// out of Unknown. Calling it after the store is already resolved behaves
// like Set.
func (s *Store) Resolve(sess *domain.Session) {
	s.apply(sess)
}

func (s *Store) apply(sess *domain.Session) {
	s.mu.Lock()
	if sess != nil {
		s.session = *sess
		s.state = StateAuthenticated
	} else {
		s.session = domain.Session{}
		s.state = StateAnonymous
	}
	notify := make([]entry, len(s.listeners))
	copy(notify, s.listeners)
	cur, state := s.session, s.state
	s.mu.Unlock()

	for _, e := range notify {
		e.fn(cur, state)
	}
}

// OnChange registers a listener and returns its unsubscribe function.
// Unsubscribing twice is harmless.
func (s *Store) OnChange(fn Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, entry{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, e := range s.listeners {
			if e.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}
