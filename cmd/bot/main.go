// Package main contains the entrypoint for the community steward bot.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/ldmoreira/stewardbot/internal/announce"
	"github.com/ldmoreira/stewardbot/internal/bot"
	"github.com/ldmoreira/stewardbot/internal/bot/handlers"
	"github.com/ldmoreira/stewardbot/internal/bot/tasks"
	"github.com/ldmoreira/stewardbot/internal/config"
	"github.com/ldmoreira/stewardbot/internal/database"
	"github.com/ldmoreira/stewardbot/internal/logger"
	"github.com/ldmoreira/stewardbot/internal/relay"
	"github.com/ldmoreira/stewardbot/internal/telegram"

	_ "modernc.org/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run initializes and starts all application components (config, logger, db,
// transport, scheduler, handlers), handles graceful shutdown, and returns an
// exit code (0 for success, 1 for failure).
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Logger.Level, cfg.Logger.JSON)
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON)

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.Error("Failed to connect to database", "path", cfg.Database.Path, "error", err)
		return 1
	}
	defer database.CloseDB(db)
	store := database.NewStore(db, log)

	relayTable := relay.NewTable(cfg.Relay.MaxEntries, cfg.Relay.TTL)

	hDeps := handlers.HandlerDeps{
		Logger: log,
		Config: cfg,
		Store:  store,
		Relay:  relayTable,
	}

	// The dispatch handler is assembled after the transport exists; the
	// indirection lets the bot option reference it before then. Updates only
	// flow once the listener starts.
	var dispatch tgbot.HandlerFunc
	botOpts := []tgbot.Option{
		tgbot.WithMiddlewares(logger.Middleware(log)),
		tgbot.WithDefaultHandler(func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
			dispatch(ctx, b, update)
		}),
	}
	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log, botOpts...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}

	messenger := telegram.NewMessenger(tg, log)
	hDeps.Messenger = messenger
	hDeps.Announcer = announce.New(messenger, store, log, cfg.Bot.AnnouncementChatID)

	// Bot info identifies the bot's own messages in the dispatch router.
	cfg.Telegram.BotInfo, err = tg.GetMe(ctx)
	if err != nil {
		log.Error("Failed to get bot info", "error", err)
		return 1
	}
	log.Info("Retrieved bot info", "bot_id", cfg.Telegram.BotInfo.ID, "bot_username", cfg.Telegram.BotInfo.Username)

	tDeps := tasks.TaskDeps{
		Logger:    log,
		Config:    cfg,
		Store:     store,
		Messenger: messenger,
	}
	sched, err := bot.NewScheduler(log, cfg, hDeps.Announcer, tasks.RegisterAllTasks(tDeps))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}
	hDeps.Scheduler = sched
	dispatch = handlers.NewDispatchHandler(hDeps)

	cmdHandlers := handlers.RegisterAllCommands(hDeps)
	if err := telegram.RegisterHandlers(tg, log, cmdHandlers); err != nil {
		log.Error("Failed to register Telegram handlers", "error", err)
		return 1
	}

	app := bot.NewBot(log, cfg, db, store, tg, sched)

	log.Info("Starting bot...")
	runErr := app.Run(ctx)
	log.Info("Bot run loop finished. Initiating shutdown...")

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	time.Sleep(time.Second)
	return 0
}
