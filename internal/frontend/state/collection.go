package state

import (
	"errors"
	"slices"
	"sync"

	"github.com/aussiebroadwan/leadcapture/pkg/leadsdk"
)

// ErrDuplicateLead is returned by Add when a lead with the same id is present.
var ErrDuplicateLead = errors.New("state: duplicate lead id")

// Collection is the ordered set of leads last fetched from the API. Every
// mutation replaces the backing slice, readers always get a copy.
type Collection struct {
	mu        sync.RWMutex
	leads     []leadsdk.Lead
	listeners []func()
}

// OnChange registers fn to run after every mutation, outside the lock.
func (c *Collection) OnChange(fn func()) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

// Replace swaps in a new list. When ids repeat, the first occurrence wins.
func (c *Collection) Replace(leads []leadsdk.Lead) {
	seen := make(map[string]struct{}, len(leads))
	next := make([]leadsdk.Lead, 0, len(leads))
	for _, l := range leads {
		if l.HasID() {
			if _, dup := seen[l.ID]; dup {
				continue
			}
			seen[l.ID] = struct{}{}
		}
		next = append(next, l)
	}

	c.mu.Lock()
	c.leads = next
	c.mu.Unlock()

	c.notify()
}

// Add appends one lead.
func (c *Collection) Add(lead leadsdk.Lead) error {
	c.mu.Lock()
	if lead.HasID() && slices.ContainsFunc(c.leads, func(l leadsdk.Lead) bool { return l.ID == lead.ID }) {
		c.mu.Unlock()
		return ErrDuplicateLead
	}
	next := make([]leadsdk.Lead, 0, len(c.leads)+1)
	next = append(next, c.leads...)
	c.leads = append(next, lead)
	c.mu.Unlock()

	c.notify()
	return nil
}

// Remove drops every lead whose id is in ids. Unknown ids are ignored.
func (c *Collection) Remove(ids []string) {
	if len(ids) == 0 {
		return
	}

	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	c.mu.Lock()
	next := make([]leadsdk.Lead, 0, len(c.leads))
	for _, l := range c.leads {
		if _, ok := drop[l.ID]; ok && l.HasID() {
			continue
		}
		next = append(next, l)
	}
	c.leads = next
	c.mu.Unlock()

	c.notify()
}

// All returns a copy of the leads in order.
func (c *Collection) All() []leadsdk.Lead {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.leads)
}

func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.leads)
}

// Get returns the lead with id.
func (c *Collection) Get(id string) (leadsdk.Lead, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i := slices.IndexFunc(c.leads, func(l leadsdk.Lead) bool { return l.ID == id })
	if id == "" || i < 0 {
		return leadsdk.Lead{}, false
	}
	return c.leads[i], true
}

func (c *Collection) notify() {
	c.mu.RLock()
	listeners := slices.Clone(c.listeners)
	c.mu.RUnlock()

	for _, fn := range listeners {
		fn()
	}
}
