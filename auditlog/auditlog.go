// Package auditlog records recent application events in a fixed-capacity
// ring buffer. The buffer is an explicitly-owned collaborator injected into
// whatever needs it; once full, each new entry evicts the oldest one.
package auditlog

import (
	"sync"
	"time"
)

type Entry struct {
	Time    time.Time         `json:"time"`
	Event   string            `json:"event"`
	Details map[string]string `json:"details,omitempty"`
}

type Log struct {
	mu      sync.Mutex
	entries []Entry
	next    int
	full    bool
}

// New returns a Log that retains at most capacity entries. Capacity must be
// positive.
func New(capacity int) *Log {
	if capacity <= 0 {
		capacity = 1
	}
	return &Log{entries: make([]Entry, capacity)}
}

// Record appends an event, evicting the oldest entry when the buffer is full.
func (l *Log) Record(event string, details map[string]string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries[l.next] = Entry{Time: time.Now(), Event: event, Details: details}
	l.next++
	if l.next == len(l.entries) {
		l.next = 0
		l.full = true
	}
}

// Entries returns the retained events, oldest first.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.full {
		out := make([]Entry, l.next)
		copy(out, l.entries[:l.next])
		return out
	}

	out := make([]Entry, 0, len(l.entries))
	out = append(out, l.entries[l.next:]...)
	out = append(out, l.entries[:l.next]...)
	return out
}

// Len reports how many entries are currently retained.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.full {
		return len(l.entries)
	}
	return l.next
}
