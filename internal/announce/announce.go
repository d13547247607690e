// Package announce posts formatted broadcasts to the announcement channel
// and records them in the audit history. It is the shared sink of the
// dispatch router and the scheduler.
package announce

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ldmoreira/stewardbot/internal/chat"
	"github.com/ldmoreira/stewardbot/internal/database"
)

// Announcer broadcasts announcement bodies to a fixed channel.
type Announcer struct {
	messenger chat.Messenger
	store     database.Store
	logger    *slog.Logger
	chatID    int64
}

// New creates an Announcer targeting the given announcement chat.
func New(messenger chat.Messenger, store database.Store, logger *slog.Logger, announcementChatID int64) *Announcer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Announcer{
		messenger: messenger,
		store:     store,
		logger:    logger.With("component", "announcer"),
		chatID:    announcementChatID,
	}
}

// Post formats and broadcasts the body, then records it in the history with
// the given source. A history write failure is logged but does not undo or
// fail the broadcast.
func (a *Announcer) Post(ctx context.Context, body, source string) error {
	if _, err := a.messenger.SendMessage(ctx, a.chatID, Format(body)); err != nil {
		return fmt.Errorf("failed to broadcast announcement: %w", err)
	}

	record := &database.Announcement{
		Body:     body,
		Source:   source,
		PostedAt: time.Now().UTC(),
	}
	if err := a.store.SaveAnnouncement(ctx, record); err != nil {
		a.logger.ErrorContext(ctx, "Announcement broadcast but history write failed",
			"source", source, "error", err)
	}
	return nil
}

// Format renders an announcement body as posted to the channel.
func Format(body string) string {
	return "📣 " + body
}
