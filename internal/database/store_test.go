package database_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/ldmoreira/stewardbot/internal/database"
)

func newTestStore(t *testing.T) database.Store {
	t.Helper()

	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDB failed: %v", err)
	}
	t.Cleanup(func() { database.CloseDB(db) })

	return database.NewStore(db, nil)
}

func TestSaveAndListAnnouncements(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	for i, body := range []string{"first", "second", "third"} {
		a := &database.Announcement{
			Body:     body,
			Source:   database.SourceOperator,
			PostedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := store.SaveAnnouncement(ctx, a); err != nil {
			t.Fatalf("SaveAnnouncement(%q) failed: %v", body, err)
		}
		if a.ID == 0 {
			t.Errorf("SaveAnnouncement(%q) did not set ID", body)
		}
	}

	got, err := store.RecentAnnouncements(ctx, 2)
	if err != nil {
		t.Fatalf("RecentAnnouncements failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("RecentAnnouncements returned %d rows, want 2", len(got))
	}
	if got[0].Body != "third" || got[1].Body != "second" {
		t.Errorf("RecentAnnouncements order = [%s, %s], want [third, second]", got[0].Body, got[1].Body)
	}
}

func TestSaveAnnouncementRejectsBadInput(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SaveAnnouncement(ctx, nil); err == nil {
		t.Error("SaveAnnouncement(nil) succeeded, want error")
	}
	if err := store.SaveAnnouncement(ctx, &database.Announcement{Source: database.SourceOperator}); err == nil {
		t.Error("SaveAnnouncement with empty body succeeded, want error")
	}
	if err := store.SaveAnnouncement(ctx, &database.Announcement{Body: "x", Source: "nope"}); err == nil {
		t.Error("SaveAnnouncement with unknown source succeeded, want error")
	}
}

func TestRelayLogAndMemberJoin(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	err := store.SaveRelayLog(ctx, &database.RelayLog{RelayMessageID: 42, OriginUserID: 555})
	if err != nil {
		t.Errorf("SaveRelayLog failed: %v", err)
	}
	if err := store.SaveRelayLog(ctx, &database.RelayLog{RelayMessageID: 42}); err == nil {
		t.Error("SaveRelayLog without origin user succeeded, want error")
	}

	err = store.SaveMemberJoin(ctx, &database.MemberJoin{UserID: 7, UserName: "@newcomer"})
	if err != nil {
		t.Errorf("SaveMemberJoin failed: %v", err)
	}
}

func TestPruneHistory(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	old := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Now().UTC()

	for _, a := range []*database.Announcement{
		{Body: "stale", Source: database.SourceScheduled, PostedAt: old},
		{Body: "fresh", Source: database.SourceScheduled, PostedAt: recent},
	} {
		if err := store.SaveAnnouncement(ctx, a); err != nil {
			t.Fatalf("SaveAnnouncement failed: %v", err)
		}
	}
	if err := store.SaveRelayLog(ctx, &database.RelayLog{RelayMessageID: 1, OriginUserID: 2, CreatedAt: old}); err != nil {
		t.Fatalf("SaveRelayLog failed: %v", err)
	}

	pruned, err := store.PruneHistory(ctx, recent.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("PruneHistory failed: %v", err)
	}
	if pruned != 2 {
		t.Errorf("PruneHistory removed %d rows, want 2", pruned)
	}

	got, err := store.RecentAnnouncements(ctx, 10)
	if err != nil {
		t.Fatalf("RecentAnnouncements failed: %v", err)
	}
	if len(got) != 1 || got[0].Body != "fresh" {
		t.Errorf("after prune got %d announcements, want only the fresh one", len(got))
	}

	if err := store.RunMaintenance(ctx); err != nil {
		t.Errorf("RunMaintenance failed: %v", err)
	}
}
