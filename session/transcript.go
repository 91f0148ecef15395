package session

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Role tags the speaker of a transcript entry.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Entry is one finalized utterance.
type Entry struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
	// Interrupted is set on assistant entries whose response was cancelled
	// by the candidate speaking over it.
	Interrupted bool      `json:"interrupted,omitempty"`
	At          time.Time `json:"at"`
}

// Transcript is the ordered log of a session's utterances. Fragments can be
// accumulated under a key while a turn is in flight; only committed entries
// are visible, and they appear in commit order unless a slot was reserved
// for them earlier.
type Transcript struct {
	mu      sync.RWMutex
	entries []Entry
	pending map[string]*pendingEntry
	// reserved maps a key to the index of its empty slot in entries.
	reserved map[string]int
	now      func() time.Time
}

type pendingEntry struct {
	role Role
	buf  strings.Builder
}

// NewTranscript returns an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{
		pending:  make(map[string]*pendingEntry),
		reserved: make(map[string]int),
		now:      time.Now,
	}
}

// Append commits a complete utterance.
func (t *Transcript) Append(role Role, content string) {
	if content == "" {
		return
	}
	t.mu.Lock()
	t.entries = append(t.entries, Entry{Role: role, Content: content, At: t.now()})
	t.mu.Unlock()
}

// Reserve holds the current position for an utterance under key whose text
// is not known yet. The slot stays hidden until Fill gives it content.
func (t *Transcript) Reserve(key string, role Role) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.reserved[key]; ok {
		return
	}
	t.reserved[key] = len(t.entries)
	t.entries = append(t.entries, Entry{Role: role, At: t.now()})
}

// Fill completes the slot reserved under key, or appends when there is none.
func (t *Transcript) Fill(key string, role Role, content string) (Entry, bool) {
	if content == "" {
		return Entry{}, false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if i, ok := t.reserved[key]; ok {
		delete(t.reserved, key)
		t.entries[i].Content = content
		return t.entries[i], true
	}
	e := Entry{Role: role, Content: content, At: t.now()}
	t.entries = append(t.entries, e)
	return e, true
}

// Accumulate appends a fragment to the open turn identified by key, opening
// it if needed. Fragments are applied in call order.
func (t *Transcript) Accumulate(key string, role Role, fragment string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.pending[key]
	if !ok {
		p = &pendingEntry{role: role}
		t.pending[key] = p
	}
	p.buf.WriteString(fragment)
}

// Commit freezes the open turn identified by key and appends it. A non-empty
// final replaces the accumulated fragments. The committed entry is returned;
// ok is false if nothing was appended.
func (t *Transcript) Commit(key string, role Role, final string, interrupted bool) (Entry, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	content := final
	if p, found := t.pending[key]; found {
		delete(t.pending, key)
		if content == "" {
			content = p.buf.String()
		}
		role = p.role
	}
	if content == "" {
		return Entry{}, false
	}
	e := Entry{Role: role, Content: content, Interrupted: interrupted, At: t.now()}
	t.entries = append(t.entries, e)
	return e, true
}

// Entries returns a copy of the committed entries.
func (t *Transcript) Entries() []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Entry, 0, len(t.entries)-len(t.reserved))
	for _, e := range t.entries {
		if e.Content != "" {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of committed entries.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries) - len(t.reserved)
}

// Text renders the transcript for reading, labelling the coach and the
// candidate.
func (t *Transcript) Text() string {
	entries := t.Entries()
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		label := "Vous"
		if e.Role == RoleAssistant {
			label = "Coach"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", label, e.Content))
	}
	return strings.Join(lines, "\n\n")
}

// InFlight returns the text accumulated so far for the open turn under key.
func (t *Transcript) InFlight(key string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	p, ok := t.pending[key]
	if !ok {
		return "", false
	}
	return p.buf.String(), true
}
