// Package tasks implements the recurring background tasks driven by the
// scheduler: presence rotation and audit history maintenance.
package tasks

import (
	"log/slog"

	"github.com/ldmoreira/stewardbot/internal/chat"
	"github.com/ldmoreira/stewardbot/internal/config"
	"github.com/ldmoreira/stewardbot/internal/database"
)

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger    *slog.Logger
	Config    *config.Config
	Store     database.Store
	Messenger chat.Messenger
}
