package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when no prepared descriptor exists for an id,
// including ids that were already consumed.
var ErrSessionNotFound = errors.New("session not found")

// rememberedIDs is how many consumed ids are kept to refuse reuse.
const rememberedIDs = 4096

// PendingStore holds prepared descriptors until a connection claims them.
// Every descriptor can be popped exactly once.
type PendingStore struct {
	mu       sync.Mutex
	sessions map[string]*Descriptor

	// used holds the ids of pending sessions and of the last remember
	// consumed ones. order lists the consumed ids, oldest first.
	used     map[string]struct{}
	order    []string
	remember int

	newID func() string
}

// NewPendingStore returns an empty store generating random UUIDs.
func NewPendingStore() *PendingStore {
	return &PendingStore{
		sessions: make(map[string]*Descriptor),
		used:     make(map[string]struct{}),
		remember: rememberedIDs,
		newID:    uuid.NewString,
	}
}

// Prepare assigns a fresh id to d and parks it until Pop.
func (p *PendingStore) Prepare(d *Descriptor) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.newID()
	for {
		if _, taken := p.used[id]; !taken {
			break
		}
		id = p.newID()
	}
	p.used[id] = struct{}{}
	d.ID = id
	p.sessions[id] = d
	return id
}

// forget drops the oldest consumed ids beyond the remembered window.
// p.mu must be held.
func (p *PendingStore) forget() {
	for len(p.order) > p.remember {
		delete(p.used, p.order[0])
		p.order[0] = ""
		p.order = p.order[1:]
	}
}

// Pop removes and returns the descriptor prepared under id.
func (p *PendingStore) Pop(id string) (*Descriptor, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	d, ok := p.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	delete(p.sessions, id)
	p.order = append(p.order, id)
	p.forget()
	return d, nil
}

// Len returns the number of sessions waiting for a connection.
func (p *PendingStore) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sessions)
}
