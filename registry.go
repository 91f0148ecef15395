package interview_coach

import (
	"sync"
)

// Registry maps session ids to their live relays. It does not own the
// relays; each relay registers itself on start and removes itself during
// teardown.
type Registry struct {
	mu     sync.RWMutex
	relays map[string]*Relay
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{relays: make(map[string]*Relay)}
}

// Register adds r under id. It fails with ErrSessionActive if another relay
// holds the id.
func (reg *Registry) Register(id string, r *Relay) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if cur, ok := reg.relays[id]; ok && cur != r {
		return ErrSessionActive
	}
	reg.relays[id] = r
	return nil
}

// Lookup returns the relay live under id.
func (reg *Registry) Lookup(id string) (*Relay, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	r, ok := reg.relays[id]
	return r, ok
}

// Remove deletes id if it is still held by r. Removing an absent entry is a
// no-op, so teardown can call it unconditionally.
func (reg *Registry) Remove(id string, r *Relay) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if cur, ok := reg.relays[id]; ok && cur == r {
		delete(reg.relays, id)
	}
}

// Len returns the number of live sessions.
func (reg *Registry) Len() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.relays)
}
