package relay

import (
	"testing"
	"time"
)

// White-box checks that the insertion-order slice tracks the entry map
// exactly, so memory stays bounded by capacity under TTL churn.

func newClockedTable(t *testing.T, maxEntries int, ttl time.Duration) (*Table, *time.Time) {
	t.Helper()
	now := time.Unix(1_000_000, 0)
	table := NewTable(maxEntries, ttl)
	table.now = func() time.Time { return now }
	return table, &now
}

func TestExpiredLookupReapsOrderEntry(t *testing.T) {
	t.Parallel()

	table, now := newClockedTable(t, 10, time.Minute)
	table.Insert(1, 100)
	table.Insert(2, 200)

	*now = now.Add(2 * time.Minute)
	if _, ok := table.Lookup(1); ok {
		t.Fatal("Lookup(1) succeeded past the TTL")
	}

	if len(table.order) != len(table.entries) {
		t.Errorf("order holds %d IDs for %d entries after expiry", len(table.order), len(table.entries))
	}
}

func TestOrderStaysBoundedUnderChurn(t *testing.T) {
	t.Parallel()

	table, now := newClockedTable(t, 5, time.Minute)

	// Repeatedly insert, expire, and reap; without reaping order on expiry
	// the slice would grow past capacity here.
	for i := 0; i < 50; i++ {
		table.Insert(i, int64(i))
		*now = now.Add(2 * time.Minute)
		if _, ok := table.Lookup(i); ok {
			t.Fatalf("Lookup(%d) succeeded past the TTL", i)
		}
	}

	if len(table.order) != 0 || len(table.entries) != 0 {
		t.Errorf("table retains %d order IDs and %d entries after full churn, want 0 and 0",
			len(table.order), len(table.entries))
	}
}

func TestCapacityEvictionKeepsOrderInSync(t *testing.T) {
	t.Parallel()

	table, _ := newClockedTable(t, 3, time.Hour)
	for i := 0; i < 10; i++ {
		table.Insert(i, int64(i))
	}

	if len(table.entries) != 3 {
		t.Fatalf("table holds %d entries, want capacity 3", len(table.entries))
	}
	if len(table.order) != 3 {
		t.Errorf("order holds %d IDs, want 3", len(table.order))
	}
	for _, id := range table.order {
		if _, ok := table.entries[id]; !ok {
			t.Errorf("order references evicted entry %d", id)
		}
	}
}
