package database

import "time"

// Announcement source values.
const (
	SourceOperator  = "operator"  // operator !announce in private chat
	SourceChannel   = "channel"   // admin !announce in the announcement channel
	SourceScheduled = "scheduled" // fired by a !program job
)

// Announcement is one broadcast posted to the announcement channel,
// recorded for operational history.
type Announcement struct {
	ID       uint      `db:"id"`
	Body     string    `db:"body"`
	Source   string    `db:"source"`
	PostedAt time.Time `db:"posted_at"`
}

// RelayLog records that a private message was forwarded to the operator.
// It is an audit row only; reply routing uses the in-memory relay table.
type RelayLog struct {
	ID             uint      `db:"id"`
	RelayMessageID int       `db:"relay_message_id"`
	OriginUserID   int64     `db:"origin_user_id"`
	CreatedAt      time.Time `db:"created_at"`
}

// MemberJoin records one member arrival in the community chat.
type MemberJoin struct {
	ID       uint      `db:"id"`
	UserID   int64     `db:"user_id"`
	UserName string    `db:"user_name"`
	JoinedAt time.Time `db:"joined_at"`
}
