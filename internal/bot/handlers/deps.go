package handlers

import (
	"log/slog"
	"time"

	"github.com/ldmoreira/stewardbot/internal/announce"
	"github.com/ldmoreira/stewardbot/internal/chat"
	"github.com/ldmoreira/stewardbot/internal/config"
	"github.com/ldmoreira/stewardbot/internal/database"
	"github.com/ldmoreira/stewardbot/internal/relay"
)

// AnnouncementScheduler registers a one-shot broadcast at the next local
// occurrence of hour:minute and returns the absolute fire time.
type AnnouncementScheduler interface {
	ScheduleAnnouncement(hour, minute int, body string) (time.Time, error)
}

// HandlerDeps provides dependencies for the dispatch router and command handlers.
type HandlerDeps struct {
	Logger    *slog.Logger
	Config    *config.Config
	Store     database.Store
	Messenger chat.Messenger
	Relay     *relay.Table
	Announcer *announce.Announcer
	Scheduler AnnouncementScheduler
}
