package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/ldmoreira/stewardbot/internal/command"
	"github.com/ldmoreira/stewardbot/internal/database"
)

type dispatchHandler struct {
	deps    HandlerDeps
	greeter greeter
}

// NewDispatchHandler creates the default handler for every inbound message
// that is not a registered slash command. It classifies the message and
// routes it: private messages are relayed or parsed as operator commands,
// public !announce requests are broadcast, and operator replies threading a
// relayed message are forwarded back to the original sender. Evaluation is
// top-to-bottom, first match wins.
func NewDispatchHandler(deps HandlerDeps) bot.HandlerFunc {
	return dispatchHandler{deps: deps, greeter: greeter{deps}}.Handle
}

func (h dispatchHandler) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	deps := h.deps
	log := deps.Logger.With("handler", "dispatch")

	msg := update.Message
	if msg == nil {
		return
	}

	// Arrival service messages carry no text payload and never reach the
	// classification chain below.
	if len(msg.NewChatMembers) > 0 && msg.Chat.ID == deps.Config.Bot.CommunityChatID {
		h.greeter.HandleArrivals(ctx, msg)
		return
	}

	if msg.From == nil {
		log.DebugContext(ctx, "Ignoring message without sender", "update_id", update.ID)
		return
	}

	// Own messages are discarded before any other classification.
	if deps.Config.Telegram.BotInfo != nil && msg.From.ID == deps.Config.Telegram.BotInfo.ID {
		return
	}

	text := msg.Text
	if text == "" {
		text = msg.Caption
	}

	if msg.Chat.Type == models.ChatTypePrivate {
		if msg.From.ID != deps.Config.Bot.OperatorID {
			h.relayInbound(ctx, msg, text)
		} else {
			h.runOperatorCommand(ctx, msg, text)
		}
		// Operator private messages are never also treated as public commands.
		return
	}

	if msg.Chat.ID == deps.Config.Bot.AnnouncementChatID && strings.HasPrefix(text, "!announce") {
		h.channelAnnounce(ctx, msg, text)
		return
	}

	// Relay entries are keyed by message IDs assigned in the operator chat,
	// and Telegram message IDs are only unique per chat. Replies elsewhere
	// must never consult the table or a colliding ID would misroute.
	if msg.Chat.ID == deps.Config.Bot.OperatorChatID &&
		msg.From.ID == deps.Config.Bot.OperatorID && msg.ReplyToMessage != nil {
		if originUserID, ok := deps.Relay.Lookup(msg.ReplyToMessage.ID); ok {
			h.forwardReply(ctx, msg, text, originUserID)
		}
	}
}

// relayInbound forwards a non-operator private message to the operator chat
// and records the mapping needed to route a later reply back.
func (h dispatchHandler) relayInbound(ctx context.Context, msg *models.Message, text string) {
	deps := h.deps
	log := deps.Logger.With("handler", "dispatch")

	if strings.TrimSpace(text) == "" {
		log.DebugContext(ctx, "Ignoring private message without text content", "user_id", msg.From.ID)
		return
	}

	summary := fmt.Sprintf("📨 From %s (ID %d):\n%s", senderName(msg.From), msg.From.ID, text)
	relayMessageID, err := deps.Messenger.SendMessage(ctx, deps.Config.Bot.OperatorChatID, summary)
	if err != nil {
		log.ErrorContext(ctx, "Failed to relay private message to operator", "error", err, "user_id", msg.From.ID)
		if _, notifyErr := deps.Messenger.SendMessage(ctx, msg.Chat.ID, deps.Config.Messages.GeneralError); notifyErr != nil {
			log.ErrorContext(ctx, "Failed to notify sender about relay failure", "error", notifyErr, "user_id", msg.From.ID)
		}
		return
	}

	deps.Relay.Insert(relayMessageID, msg.From.ID)
	log.InfoContext(ctx, "Relayed private message", "relay_message_id", relayMessageID, "origin_user_id", msg.From.ID)

	if err := deps.Store.SaveRelayLog(ctx, &database.RelayLog{
		RelayMessageID: relayMessageID,
		OriginUserID:   msg.From.ID,
		CreatedAt:      time.Now().UTC(),
	}); err != nil {
		log.ErrorContext(ctx, "Failed to write relay audit entry", "error", err, "relay_message_id", relayMessageID)
	}
}

// runOperatorCommand parses operator private input and executes the result.
// Unrecognized text is operator chatter and is silently ignored.
func (h dispatchHandler) runOperatorCommand(ctx context.Context, msg *models.Message, text string) {
	deps := h.deps
	log := deps.Logger.With("handler", "dispatch")

	cmd := command.Parse(text)
	switch cmd.Kind {
	case command.DirectReply:
		if _, err := deps.Messenger.SendMessage(ctx, cmd.UserID, cmd.Body); err != nil {
			log.WarnContext(ctx, "Direct reply delivery failed", "target_user_id", cmd.UserID, "error", err)
			h.sendNotice(ctx, msg.Chat.ID, fmt.Sprintf(deps.Config.Messages.RelayFailed, err))
			return
		}
		h.sendNotice(ctx, msg.Chat.ID, fmt.Sprintf(deps.Config.Messages.RelayDelivered, fmt.Sprintf("user %d", cmd.UserID)))

	case command.Announce:
		if err := deps.Announcer.Post(ctx, cmd.Body, database.SourceOperator); err != nil {
			log.ErrorContext(ctx, "Operator announcement failed", "error", err)
			h.sendNotice(ctx, msg.Chat.ID, deps.Config.Messages.GeneralError)
		}

	case command.ScheduleAnnounce:
		fireAt, err := deps.Scheduler.ScheduleAnnouncement(cmd.Hour, cmd.Minute, cmd.Body)
		if err != nil {
			log.ErrorContext(ctx, "Failed to schedule announcement", "error", err)
			h.sendNotice(ctx, msg.Chat.ID, deps.Config.Messages.GeneralError)
			return
		}
		h.sendNotice(ctx, msg.Chat.ID, fmt.Sprintf("Scheduled for %s.", fireAt.Format("Mon 15:04")))

	case command.Invalid:
		h.sendNotice(ctx, msg.Chat.ID, cmd.Reason)

	case command.None:
		log.DebugContext(ctx, "Operator private message is not a command, ignoring")
	}
}

// channelAnnounce handles !announce posted in the announcement channel by a
// sender with administrative capability.
func (h dispatchHandler) channelAnnounce(ctx context.Context, msg *models.Message, text string) {
	deps := h.deps
	log := deps.Logger.With("handler", "dispatch")
	chatID := msg.Chat.ID

	isAdmin, err := deps.Messenger.IsAdministrator(ctx, chatID, msg.From.ID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to check administrative capability", "error", err, "user_id", msg.From.ID)
		h.sendNotice(ctx, chatID, deps.Config.Messages.GeneralError)
		return
	}
	if !isAdmin {
		h.sendNotice(ctx, chatID, deps.Config.Messages.PermissionDenied)
		return
	}

	body := strings.TrimSpace(strings.TrimPrefix(text, "!announce"))
	if body == "" {
		h.sendNotice(ctx, chatID, deps.Config.Messages.AnnounceUsage)
		return
	}

	if err := deps.Announcer.Post(ctx, body, database.SourceChannel); err != nil {
		log.ErrorContext(ctx, "Channel announcement failed", "error", err)
		h.sendNotice(ctx, chatID, deps.Config.Messages.GeneralError)
		return
	}

	if err := deps.Messenger.DeleteMessage(ctx, chatID, msg.ID); err != nil {
		log.WarnContext(ctx, "Failed to delete announcement trigger message", "error", err, "message_id", msg.ID)
	}
}

// forwardReply routes an operator reply on a relayed message back to its
// original private sender and reports the outcome to the operator.
func (h dispatchHandler) forwardReply(ctx context.Context, msg *models.Message, text string, originUserID int64) {
	deps := h.deps
	log := deps.Logger.With("handler", "dispatch")

	if _, err := deps.Messenger.SendMessage(ctx, originUserID, text); err != nil {
		log.WarnContext(ctx, "Failed to forward operator reply", "origin_user_id", originUserID, "error", err)
		if _, sendErr := deps.Messenger.SendReply(ctx, msg.Chat.ID, msg.ID,
			fmt.Sprintf(deps.Config.Messages.RelayFailed, err)); sendErr != nil {
			log.ErrorContext(ctx, "Failed to report forward failure", "error", sendErr)
		}
		return
	}

	name, err := deps.Messenger.FetchUserName(ctx, deps.Config.Bot.CommunityChatID, originUserID)
	if err != nil {
		name = fmt.Sprintf("user %d", originUserID)
	}
	if _, err := deps.Messenger.SendReply(ctx, msg.Chat.ID, msg.ID,
		fmt.Sprintf(deps.Config.Messages.RelayDelivered, name)); err != nil {
		log.ErrorContext(ctx, "Failed to confirm forwarded reply", "error", err)
	}
}

func (h dispatchHandler) sendNotice(ctx context.Context, chatID int64, text string) {
	if _, err := h.deps.Messenger.SendMessage(ctx, chatID, text); err != nil {
		h.deps.Logger.ErrorContext(ctx, "Failed to send notice", "error", err, "chat_id", chatID)
	}
}

func senderName(user *models.User) string {
	if user == nil {
		return "unknown"
	}
	if user.Username != "" {
		return "@" + user.Username
	}
	return user.FirstName
}
