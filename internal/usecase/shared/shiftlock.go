package shared

import (
	"sync"

	"github.com/google/uuid"
)

// ShiftLocks is the per-shift mutual exclusion scope. Every lifecycle
// transition for a shift runs under its lock, so transitions on one shift are
// totally ordered while unrelated shifts proceed concurrently. Entries are
// refcounted and removed once the last holder releases, keeping the map
// bounded by the number of shifts currently in contention.
type ShiftLocks struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func NewShiftLocks() *ShiftLocks {
	return &ShiftLocks{
		entries: make(map[uuid.UUID]*lockEntry),
	}
}

// Lock blocks until the shift's scope is held and returns the release func.
// Hold it for guard-check-and-commit only, never across a payment call.
func (l *ShiftLocks) Lock(shiftID uuid.UUID) func() {
	l.mu.Lock()
	entry, ok := l.entries[shiftID]
	if !ok {
		entry = &lockEntry{}
		l.entries[shiftID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			entry.mu.Unlock()

			l.mu.Lock()
			entry.refs--
			if entry.refs == 0 {
				delete(l.entries, shiftID)
			}
			l.mu.Unlock()
		})
	}
}
