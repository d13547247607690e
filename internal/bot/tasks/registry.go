package tasks

import "context"

// Task names used by the scheduler to attach cadences from configuration.
const (
	PresenceRotation   = "presence_rotation"
	HistoryMaintenance = "history_maintenance"
)

// TaskFunc defines the standard signature for all scheduled tasks.
// The context provided by the scheduler should be respected for cancellation.
type TaskFunc func(ctx context.Context) error

// RegisterAllTasks initializes and returns a map of all recurring tasks,
// keyed by the names the scheduler resolves cadences for.
func RegisterAllTasks(deps TaskDeps) map[string]TaskFunc {
	tasks := map[string]TaskFunc{
		PresenceRotation:   newPresenceRotationTask(deps),
		HistoryMaintenance: newHistoryMaintenanceTask(deps),
	}

	deps.Logger.Info("Initialized scheduled tasks", "count", len(tasks))
	return tasks
}
