// Package telegram adapts the go-telegram/bot client to the chat.Messenger
// capability consumed by the bot core.
package telegram

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/ldmoreira/stewardbot/internal/chat"
)

// NewTelegramBot creates a new Telegram bot instance using the go-telegram/bot library.
func NewTelegramBot(token string, logger *slog.Logger, opts ...bot.Option) (*bot.Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "telegram_bot")

	b, err := bot.New(token, opts...)
	if err != nil {
		log.Error("Failed to create Telegram bot instance", "error", err)
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	log.Info("Telegram bot instance created successfully")
	return b, nil
}

// Messenger implements chat.Messenger on top of a *bot.Bot.
type Messenger struct {
	bot    *bot.Bot
	logger *slog.Logger
}

// NewMessenger wraps a Telegram bot instance as a chat.Messenger.
func NewMessenger(b *bot.Bot, logger *slog.Logger) *Messenger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Messenger{bot: b, logger: logger.With("component", "messenger")}
}

var _ chat.Messenger = (*Messenger)(nil)

// SendMessage posts text to a chat and returns the assigned message ID.
func (m *Messenger) SendMessage(ctx context.Context, chatID int64, text string) (int, error) {
	sent, err := m.bot.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text})
	if err != nil {
		return 0, fmt.Errorf("%w: send to chat %d: %v", chat.ErrDelivery, chatID, err)
	}
	return sent.ID, nil
}

// SendReply posts text to a chat as a reply to an existing message.
func (m *Messenger) SendReply(ctx context.Context, chatID int64, replyToID int, text string) (int, error) {
	sent, err := m.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:          chatID,
		Text:            text,
		ReplyParameters: &models.ReplyParameters{MessageID: replyToID},
	})
	if err != nil {
		return 0, fmt.Errorf("%w: reply in chat %d: %v", chat.ErrDelivery, chatID, err)
	}
	return sent.ID, nil
}

// DeleteMessage removes a message from a chat.
func (m *Messenger) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	ok, err := m.bot.DeleteMessage(ctx, &bot.DeleteMessageParams{ChatID: chatID, MessageID: messageID})
	if err != nil {
		return fmt.Errorf("%w: delete message %d in chat %d: %v", chat.ErrDelivery, messageID, chatID, err)
	}
	if !ok {
		return fmt.Errorf("%w: delete message %d in chat %d refused", chat.ErrDelivery, messageID, chatID)
	}
	return nil
}

// IsAdministrator reports whether the user is an owner or administrator of the chat.
func (m *Messenger) IsAdministrator(ctx context.Context, chatID, userID int64) (bool, error) {
	member, err := m.bot.GetChatMember(ctx, &bot.GetChatMemberParams{ChatID: chatID, UserID: userID})
	if err != nil {
		return false, fmt.Errorf("%w: chat member %d in chat %d: %v", chat.ErrLookup, userID, chatID, err)
	}
	switch member.Type {
	case models.ChatMemberTypeOwner, models.ChatMemberTypeAdministrator:
		return true, nil
	default:
		return false, nil
	}
}

// FetchUserName resolves a chat member to a display name, preferring the
// username over the first name.
func (m *Messenger) FetchUserName(ctx context.Context, chatID, userID int64) (string, error) {
	member, err := m.bot.GetChatMember(ctx, &bot.GetChatMemberParams{ChatID: chatID, UserID: userID})
	if err != nil {
		return "", fmt.Errorf("%w: chat member %d in chat %d: %v", chat.ErrLookup, userID, chatID, err)
	}

	user := memberUser(member)
	if user == nil {
		return "", fmt.Errorf("%w: chat member %d in chat %d has no user info", chat.ErrLookup, userID, chatID)
	}
	if user.Username != "" {
		return "@" + user.Username, nil
	}
	return user.FirstName, nil
}

// SetStatus publishes the presence text as the bot's short description.
func (m *Messenger) SetStatus(ctx context.Context, text string) error {
	ok, err := m.bot.SetMyShortDescription(ctx, &bot.SetMyShortDescriptionParams{ShortDescription: text})
	if err != nil {
		return fmt.Errorf("%w: set status: %v", chat.ErrDelivery, err)
	}
	if !ok {
		return fmt.Errorf("%w: set status refused", chat.ErrDelivery)
	}
	return nil
}

// AssignRole grants the member a minimal administrator promotion carrying the
// configured role title. Telegram has no first-class member roles; a custom
// administrator title is the conventional stand-in.
func (m *Messenger) AssignRole(ctx context.Context, chatID, userID int64, title string) error {
	ok, err := m.bot.PromoteChatMember(ctx, &bot.PromoteChatMemberParams{
		ChatID:         chatID,
		UserID:         userID,
		CanInviteUsers: true,
	})
	if err != nil {
		return fmt.Errorf("%w: promote member %d in chat %d: %v", chat.ErrDelivery, userID, chatID, err)
	}
	if !ok {
		return fmt.Errorf("%w: promote member %d in chat %d refused", chat.ErrDelivery, userID, chatID)
	}

	if _, err := m.bot.SetChatAdministratorCustomTitle(ctx, &bot.SetChatAdministratorCustomTitleParams{
		ChatID:      chatID,
		UserID:      userID,
		CustomTitle: title,
	}); err != nil {
		return fmt.Errorf("%w: set role title for member %d in chat %d: %v", chat.ErrDelivery, userID, chatID, err)
	}
	return nil
}

func memberUser(member *models.ChatMember) *models.User {
	if member == nil {
		return nil
	}
	switch {
	case member.Owner != nil:
		return member.Owner.User
	case member.Administrator != nil:
		return &member.Administrator.User
	case member.Member != nil:
		return member.Member.User
	case member.Restricted != nil:
		return member.Restricted.User
	case member.Left != nil:
		return member.Left.User
	case member.Banned != nil:
		return member.Banned.User
	default:
		return nil
	}
}
