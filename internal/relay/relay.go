// Package relay maintains the mapping between messages forwarded to the
// operator and the users who originally sent them, so a later operator reply
// can be routed back to the right person.
package relay

import (
	"sync"
	"time"
)

const (
	// DefaultMaxEntries bounds the table when no capacity is configured.
	DefaultMaxEntries = 1000
	// DefaultTTL is how long an entry stays resolvable when no TTL is configured.
	DefaultTTL = 72 * time.Hour
)

type entry struct {
	originUserID int64
	insertedAt   time.Time
}

// Table is a bounded, TTL-evicting map from relay message ID to the origin
// user ID. Insert and Lookup are safe for concurrent use; a lookup
// immediately after an insert on the same key always succeeds until the
// entry is evicted by capacity or age.
type Table struct {
	mu         sync.Mutex
	entries    map[int]entry
	order      []int // insertion order, oldest first
	maxEntries int
	ttl        time.Duration
	now        func() time.Time
}

// NewTable creates a relay table with the given capacity and entry TTL.
// Non-positive values fall back to the package defaults.
func NewTable(maxEntries int, ttl time.Duration) *Table {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Table{
		entries:    make(map[int]entry),
		maxEntries: maxEntries,
		ttl:        ttl,
		now:        time.Now,
	}
}

// Insert records the origin user for a relay message. Entries are never
// updated in place; inserting an already-present key is a no-op. When the
// table is at capacity the oldest entry is evicted first.
func (t *Table) Insert(relayMessageID int, originUserID int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.entries[relayMessageID]; exists {
		return
	}

	for len(t.entries) >= t.maxEntries && len(t.order) > 0 {
		oldest := t.order[0]
		copy(t.order, t.order[1:])
		t.order = t.order[:len(t.order)-1]
		delete(t.entries, oldest)
	}

	t.entries[relayMessageID] = entry{originUserID: originUserID, insertedAt: t.now()}
	t.order = append(t.order, relayMessageID)
}

// Lookup resolves a relay message ID to the origin user ID. The second
// return value is false when the ID is unknown or the entry has expired.
func (t *Table) Lookup(relayMessageID int) (int64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[relayMessageID]
	if !ok {
		return 0, false
	}
	if t.now().Sub(e.insertedAt) > t.ttl {
		delete(t.entries, relayMessageID)
		t.removeFromOrder(relayMessageID)
		return 0, false
	}
	return e.originUserID, true
}

// removeFromOrder drops one ID from the insertion-order slice, shifting in
// place so the table's memory stays bounded by its capacity.
func (t *Table) removeFromOrder(relayMessageID int) {
	for i, id := range t.order {
		if id == relayMessageID {
			copy(t.order[i:], t.order[i+1:])
			t.order = t.order[:len(t.order)-1]
			return
		}
	}
}

// Len reports the number of live entries, counting expired entries that have
// not yet been reaped.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
