package bot

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/ldmoreira/stewardbot/internal/announce"
	"github.com/ldmoreira/stewardbot/internal/bot/tasks"
	"github.com/ldmoreira/stewardbot/internal/config"
	"github.com/ldmoreira/stewardbot/internal/database"
)

// Scheduler manages scheduled work using the gocron library: the recurring
// tasks from the registry plus one-shot announcement jobs registered at
// runtime by the dispatch router. One-shot jobs are fire-and-forget; there is
// no cancellation API.
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    *slog.Logger
	cfg       *config.Config
	announcer *announce.Announcer
	taskMap   map[string]tasks.TaskFunc
	mu        sync.Mutex
	running   bool
}

// NewScheduler creates a new scheduler instance using gocron.
func NewScheduler(logger *slog.Logger, cfg *config.Config, announcer *announce.Announcer, taskMap map[string]tasks.TaskFunc) (*Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "scheduler")

	s, err := gocron.NewScheduler()
	if err != nil {
		log.Error("Failed to create gocron scheduler", "error", err)
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	return &Scheduler{
		scheduler: s,
		logger:    log,
		cfg:       cfg,
		announcer: announcer,
		taskMap:   taskMap,
	}, nil
}

// Start registers the recurring tasks and starts the scheduler's internal ticking.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler is already running")
	}

	for taskName, definition := range map[string]gocron.JobDefinition{
		tasks.PresenceRotation:   gocron.DurationJob(s.cfg.Presence.Interval),
		tasks.HistoryMaintenance: gocron.CronJob(s.cfg.Scheduler.MaintenanceSchedule, false),
	} {
		taskFunc, exists := s.taskMap[taskName]
		if !exists {
			s.logger.Warn("Recurring task not found in registry, skipping", "task_name", taskName)
			continue
		}

		_, err := s.scheduler.NewJob(
			definition,
			gocron.NewTask(s.wrapTask(taskName, taskFunc), context.Background()),
			gocron.WithName(taskName),
		)
		if err != nil {
			return fmt.Errorf("failed to schedule task %s: %w", taskName, err)
		}
		s.logger.Info("Scheduled recurring task", "task_name", taskName)
	}

	s.scheduler.Start()
	s.running = true
	s.logger.Info("Scheduler started")
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs to complete.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		s.logger.Info("Scheduler is not running, nothing to stop.")
		return nil
	}

	s.logger.Debug("Stopping scheduler gracefully (waiting for jobs)...")
	err := s.scheduler.Shutdown()
	if err != nil {
		s.logger.Error("Error during scheduler shutdown", "error", err)
	} else {
		s.logger.Info("Scheduler stopped gracefully.")
	}

	s.running = false
	return err
}

// ScheduleAnnouncement registers a one-shot broadcast of body at the next
// local occurrence of hour:minute and returns the absolute fire time. A send
// failure at fire time is logged, never retried, and never affects other jobs.
func (s *Scheduler) ScheduleAnnouncement(hour, minute int, body string) (time.Time, error) {
	fireAt := NextOccurrence(time.Now(), hour, minute, s.cfg.Bot.UTCOffsetHours)

	_, err := s.scheduler.NewJob(
		gocron.OneTimeJob(gocron.OneTimeJobStartDateTime(fireAt)),
		gocron.NewTask(func(ctx context.Context) {
			if postErr := s.announcer.Post(ctx, body, database.SourceScheduled); postErr != nil {
				s.logger.ErrorContext(ctx, "Scheduled announcement failed",
					"fire_at", fireAt, "error", postErr)
				return
			}
			s.logger.InfoContext(ctx, "Scheduled announcement posted", "fire_at", fireAt)
		}, context.Background()),
		gocron.WithName("announcement"),
	)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to register announcement job: %w", err)
	}

	s.logger.Info("Announcement scheduled", "fire_at", fireAt)
	return fireAt, nil
}

func (s *Scheduler) wrapTask(name string, taskFunc tasks.TaskFunc) func(ctx context.Context) {
	return func(ctx context.Context) {
		startTime := time.Now()
		if taskErr := taskFunc(ctx); taskErr != nil {
			s.logger.ErrorContext(ctx, "Scheduled task failed", "task_name", name, "error", taskErr)
		}
		s.logger.DebugContext(ctx, "Finished scheduled task", "task_name", name, "duration", time.Since(startTime))
	}
}

// NextOccurrence computes the next instant whose local wall clock (shifted by
// offsetHours from UTC) reads hour:minute, strictly after now. A target that
// already passed today rolls forward by one day.
func NextOccurrence(now time.Time, hour, minute, offsetHours int) time.Time {
	loc := time.FixedZone("offset", offsetHours*3600)
	local := now.In(loc)

	target := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, loc)
	if !target.After(local) {
		target = target.Add(24 * time.Hour)
	}
	return target
}
