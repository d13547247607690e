package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-telegram/bot/models"

	"github.com/ldmoreira/stewardbot/internal/chat"
	"github.com/ldmoreira/stewardbot/internal/database"
	"github.com/ldmoreira/stewardbot/internal/daypart"
)

// greeter runs the member-arrival flow: a public welcome, a rules DM, the
// member role, and a join audit row. Every side effect is best-effort and
// independent of the others.
type greeter struct {
	deps HandlerDeps
}

func (g greeter) HandleArrivals(ctx context.Context, msg *models.Message) {
	for i := range msg.NewChatMembers {
		g.greet(ctx, &msg.NewChatMembers[i])
	}
}

func (g greeter) greet(ctx context.Context, member *models.User) {
	deps := g.deps
	log := deps.Logger.With("handler", "greet", "user_id", member.ID)

	if member.IsBot {
		log.DebugContext(ctx, "Skipping greeting for bot account")
		return
	}

	salutation := daypart.Greeting(daypart.LocalHour(time.Now(), deps.Config.Bot.UTCOffsetHours))
	welcome := fmt.Sprintf("%s! %s", salutation, fmt.Sprintf(deps.Config.Messages.Welcome, senderName(member)))

	if _, err := deps.Messenger.SendMessage(ctx, deps.Config.Bot.WelcomeChatID, welcome); err != nil {
		log.ErrorContext(ctx, "Failed to post welcome message", "error", err)
	}

	if _, err := deps.Messenger.SendMessage(ctx, member.ID, deps.Config.Messages.Rules); err != nil {
		// Members who never opened a chat with the bot can't be DMed.
		if errors.Is(err, chat.ErrDelivery) {
			log.InfoContext(ctx, "Could not DM rules, member has no private chat with the bot")
		} else {
			log.ErrorContext(ctx, "Failed to DM rules", "error", err)
		}
	}

	if err := deps.Messenger.AssignRole(ctx, deps.Config.Bot.CommunityChatID, member.ID, deps.Config.Bot.RoleTitle); err != nil {
		log.ErrorContext(ctx, "Failed to assign member role", "error", err, "role", deps.Config.Bot.RoleTitle)
	} else {
		log.InfoContext(ctx, "Assigned member role", "role", deps.Config.Bot.RoleTitle)
	}

	if err := deps.Store.SaveMemberJoin(ctx, &database.MemberJoin{
		UserID:   member.ID,
		UserName: senderName(member),
		JoinedAt: time.Now().UTC(),
	}); err != nil {
		log.ErrorContext(ctx, "Failed to record member join", "error", err)
	}
}
