package main

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// MessageBuffer remembers the last few printed lines so near repeats, such
// as the same transcript reported twice or a burst of identical errors, are
// shown once.
type MessageBuffer struct {
	messages []string
	head     int
	size     int
	capacity int
	mu       sync.RWMutex
}

// NewMessageBuffer returns a buffer holding capacity lines, at least one.
func NewMessageBuffer(capacity int) *MessageBuffer {
	if capacity <= 0 {
		capacity = 1
	}
	return &MessageBuffer{
		messages: make([]string, capacity),
		capacity: capacity,
	}
}

// Add records message, evicting the oldest line when full.
func (mb *MessageBuffer) Add(message string) {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	mb.messages[mb.head] = normalizeMessage(message)
	mb.head = (mb.head + 1) % mb.capacity
	if mb.size < mb.capacity {
		mb.size++
	}
}

// IsSimilar reports whether message is within threshold similarity of any
// remembered line. threshold is between 0 and 1.
func (mb *MessageBuffer) IsSimilar(message string, threshold float64) bool {
	mb.mu.RLock()
	defer mb.mu.RUnlock()

	msg := normalizeMessage(message)
	for i := 0; i < mb.size; i++ {
		if isSimilarMessage(msg, mb.messages[i], threshold) {
			return true
		}
	}
	return false
}

// Seen is IsSimilar followed by Add for unseen messages.
func (mb *MessageBuffer) Seen(message string, threshold float64) bool {
	if mb.IsSimilar(message, threshold) {
		return true
	}
	mb.Add(message)
	return false
}

// normalizeMessage lowercases, drops punctuation and collapses spaces so
// "Bonjour !" and "bonjour" compare equal.
func normalizeMessage(msg string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(msg) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// isSimilarMessage compares normalized lines by edit distance relative to
// the longer one, counted in runes.
func isSimilarMessage(msg1, msg2 string, threshold float64) bool {
	if msg1 == msg2 {
		return true
	}
	if msg1 == "" || msg2 == "" {
		return false
	}

	distance := levenshtein.ComputeDistance(msg1, msg2)
	maxLen := max(utf8.RuneCountInString(msg1), utf8.RuneCountInString(msg2))
	return 1.0-float64(distance)/float64(maxLen) >= threshold
}
