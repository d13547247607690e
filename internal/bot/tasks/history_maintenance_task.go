package tasks

import (
	"context"
	"fmt"
	"time"
)

// newHistoryMaintenanceTask creates the task that prunes audit rows past the
// configured retention and reclaims database space.
func newHistoryMaintenanceTask(deps TaskDeps) TaskFunc {
	log := deps.Logger.With("task", HistoryMaintenance)

	return func(ctx context.Context) error {
		cutoff := time.Now().UTC().Add(-deps.Config.Scheduler.HistoryRetention)

		pruned, err := deps.Store.PruneHistory(ctx, cutoff)
		if err != nil {
			return fmt.Errorf("history pruning failed: %w", err)
		}

		if err := deps.Store.RunMaintenance(ctx); err != nil {
			return fmt.Errorf("database maintenance failed: %w", err)
		}

		log.InfoContext(ctx, "History maintenance completed", "rows_pruned", pruned, "cutoff", cutoff)
		return nil
	}
}
