package state

import (
	"sync"
	"time"
)

// Registry keeps one AppState per browser session.
type Registry struct {
	quiet time.Duration

	mu     sync.Mutex
	states map[string]*AppState
}

func NewRegistry(quiet time.Duration) *Registry {
	return &Registry{
		quiet:  quiet,
		states: make(map[string]*AppState),
	}
}

// Get returns the state for key, creating it on first use. created reports
// whether it was just made, in which case the caller should Restore it.
func (r *Registry) Get(key string) (s *AppState, created bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.states[key]; ok {
		return s, false
	}
	s = New(r.quiet)
	r.states[key] = s
	return s, true
}

// Drop forgets the state for key.
func (r *Registry) Drop(key string) {
	r.mu.Lock()
	s, ok := r.states[key]
	delete(r.states, key)
	r.mu.Unlock()

	if ok {
		s.Close()
	}
}

// Evict drops every state for which keep returns false and reports how many
// were dropped.
func (r *Registry) Evict(keep func(key string) bool) int {
	r.mu.Lock()
	var dropped []*AppState
	for key, s := range r.states {
		if !keep(key) {
			dropped = append(dropped, s)
			delete(r.states, key)
		}
	}
	r.mu.Unlock()

	for _, s := range dropped {
		s.Close()
	}
	return len(dropped)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.states)
}
