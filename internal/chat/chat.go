// Package chat defines the transport capability consumed by the bot core.
// Components receive a Messenger instead of touching the platform client
// directly, which keeps handlers, scheduled jobs, and tests decoupled from
// the Telegram API.
package chat

import (
	"context"
	"errors"
)

// ErrDelivery indicates a send, delete, or status update was refused by the
// platform or the recipient is unreachable.
var ErrDelivery = errors.New("delivery failed")

// ErrLookup indicates an unknown user or chat member identity.
var ErrLookup = errors.New("lookup failed")

// Messenger is the narrow platform capability shared by the dispatch router,
// the scheduler, and the presence rotator.
type Messenger interface {
	// SendMessage posts text to a chat and returns the platform-assigned
	// message ID.
	SendMessage(ctx context.Context, chatID int64, text string) (int, error)

	// SendReply posts text to a chat as a reply to an existing message.
	SendReply(ctx context.Context, chatID int64, replyToID int, text string) (int, error)

	// DeleteMessage removes a message from a chat.
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error

	// IsAdministrator reports whether the user holds administrative
	// capability in the given chat.
	IsAdministrator(ctx context.Context, chatID, userID int64) (bool, error)

	// FetchUserName resolves a chat member to a display name.
	FetchUserName(ctx context.Context, chatID, userID int64) (string, error)

	// SetStatus updates the bot's visible presence text.
	SetStatus(ctx context.Context, text string) error

	// AssignRole grants the member role with the given visible title.
	AssignRole(ctx context.Context, chatID, userID int64, title string) error
}
