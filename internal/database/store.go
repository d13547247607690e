package database

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store defines the interface for the bot's audit history.
// Methods accept context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// SaveAnnouncement inserts a broadcast history record.
	SaveAnnouncement(ctx context.Context, a *Announcement) error

	// RecentAnnouncements retrieves the most recent 'limit' announcements, newest first.
	RecentAnnouncements(ctx context.Context, limit int) ([]Announcement, error)

	// SaveRelayLog inserts a relay audit record.
	SaveRelayLog(ctx context.Context, r *RelayLog) error

	// SaveMemberJoin inserts a member arrival record.
	SaveMemberJoin(ctx context.Context, j *MemberJoin) error

	// PruneHistory deletes audit rows older than the cutoff and returns the
	// number of rows removed.
	PruneHistory(ctx context.Context, olderThan time.Time) (int64, error)

	// RunMaintenance performs database maintenance tasks like VACUUM.
	RunMaintenance(ctx context.Context) error
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store implementation backed by sqlx.
// It requires a connected sqlx.DB instance and a logger.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

// Ping checks the database connection.
func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// SaveAnnouncement inserts a broadcast history record.
func (s *sqlxStore) SaveAnnouncement(ctx context.Context, a *Announcement) error {
	if a == nil {
		return fmt.Errorf("cannot save nil announcement")
	}
	if a.Body == "" {
		return fmt.Errorf("announcement must have a non-empty body")
	}
	switch a.Source {
	case SourceOperator, SourceChannel, SourceScheduled:
	default:
		return fmt.Errorf("unknown announcement source %q", a.Source)
	}
	if a.PostedAt.IsZero() {
		a.PostedAt = time.Now().UTC()
	}

	res, err := s.db.NamedExecContext(ctx,
		`INSERT INTO announcements (body, source, posted_at)
		 VALUES (:body, :source, :posted_at)`, a)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to save announcement", "source", a.Source, "error", err)
		return fmt.Errorf("failed to save announcement: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		a.ID = uint(id)
	}
	return nil
}

// RecentAnnouncements retrieves the most recent 'limit' announcements, newest first.
func (s *sqlxStore) RecentAnnouncements(ctx context.Context, limit int) ([]Announcement, error) {
	if limit <= 0 {
		limit = 10
	}

	var out []Announcement
	err := s.db.SelectContext(ctx, &out,
		`SELECT id, body, source, posted_at
		 FROM announcements
		 ORDER BY posted_at DESC, id DESC
		 LIMIT ?`, limit)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to load recent announcements", "limit", limit, "error", err)
		return nil, fmt.Errorf("failed to load recent announcements: %w", err)
	}
	return out, nil
}

// SaveRelayLog inserts a relay audit record.
func (s *sqlxStore) SaveRelayLog(ctx context.Context, r *RelayLog) error {
	if r == nil {
		return fmt.Errorf("cannot save nil relay log entry")
	}
	if r.RelayMessageID == 0 || r.OriginUserID == 0 {
		return fmt.Errorf("relay log entry must have relay message and origin user IDs")
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.NamedExecContext(ctx,
		`INSERT INTO relay_log (relay_message_id, origin_user_id, created_at)
		 VALUES (:relay_message_id, :origin_user_id, :created_at)`, r)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to save relay log entry",
			"relay_message_id", r.RelayMessageID, "error", err)
		return fmt.Errorf("failed to save relay log entry: %w", err)
	}
	return nil
}

// SaveMemberJoin inserts a member arrival record.
func (s *sqlxStore) SaveMemberJoin(ctx context.Context, j *MemberJoin) error {
	if j == nil {
		return fmt.Errorf("cannot save nil member join")
	}
	if j.UserID == 0 {
		return fmt.Errorf("member join must have a non-zero user_id")
	}
	if j.JoinedAt.IsZero() {
		j.JoinedAt = time.Now().UTC()
	}

	_, err := s.db.NamedExecContext(ctx,
		`INSERT INTO member_joins (user_id, user_name, joined_at)
		 VALUES (:user_id, :user_name, :joined_at)`, j)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to save member join", "user_id", j.UserID, "error", err)
		return fmt.Errorf("failed to save member join: %w", err)
	}
	return nil
}

// PruneHistory deletes audit rows older than the cutoff across all history tables.
func (s *sqlxStore) PruneHistory(ctx context.Context, olderThan time.Time) (int64, error) {
	var total int64

	for _, q := range []string{
		`DELETE FROM announcements WHERE posted_at < ?`,
		`DELETE FROM relay_log WHERE created_at < ?`,
		`DELETE FROM member_joins WHERE joined_at < ?`,
	} {
		res, err := s.db.ExecContext(ctx, q, olderThan)
		if err != nil {
			s.logger.ErrorContext(ctx, "Failed to prune history", "query", q, "error", err)
			return total, fmt.Errorf("failed to prune history: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil {
			total += n
		}
	}

	s.logger.InfoContext(ctx, "Pruned audit history", "rows", total, "older_than", olderThan)
	return total, nil
}

// RunMaintenance reclaims space after pruning.
func (s *sqlxStore) RunMaintenance(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "VACUUM"); err != nil {
		return fmt.Errorf("failed to vacuum database: %w", err)
	}
	return nil
}
