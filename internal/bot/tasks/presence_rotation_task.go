package tasks

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/ldmoreira/stewardbot/internal/daypart"
)

// newPresenceRotationTask creates the task that periodically recomputes the
// day/night window and pushes a fresh status string. A failed update is not
// retried; the next tick replaces it anyway.
func newPresenceRotationTask(deps TaskDeps) TaskFunc {
	log := deps.Logger.With("task", PresenceRotation)

	return func(ctx context.Context) error {
		hour := daypart.LocalHour(time.Now(), deps.Config.Bot.UTCOffsetHours)
		window := daypart.WindowOf(hour)

		pool := deps.Config.Presence.DayStatuses
		if window == daypart.Night {
			pool = deps.Config.Presence.NightStatuses
		}
		if len(pool) == 0 {
			return fmt.Errorf("no presence statuses configured for %s window", window)
		}

		status := pool[rand.IntN(len(pool))]
		if err := deps.Messenger.SetStatus(ctx, status); err != nil {
			return fmt.Errorf("failed to rotate presence status: %w", err)
		}

		log.DebugContext(ctx, "Rotated presence status", "window", window.String(), "status", status)
		return nil
	}
}
