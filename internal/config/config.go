// Package config provides configuration loading, validation, and defaults
// for the steward bot. Values come from a YAML file with BOT_* environment
// variable overrides.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-telegram/bot/models"
	"github.com/spf13/viper"
)

// Config defines the application configuration for all bot components.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Bot       BotConfig       `mapstructure:"bot"`
	Relay     RelayConfig     `mapstructure:"relay"`
	Presence  PresenceConfig  `mapstructure:"presence"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Messages  MessagesConfig  `mapstructure:"messages"`
}

// LoggerConfig controls log level and output format.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds the bot credentials. BotInfo is populated at startup
// from GetMe, not from the config file.
type TelegramConfig struct {
	Token   string       `mapstructure:"token" validate:"required"`
	BotInfo *models.User `mapstructure:"-"`
}

// BotConfig identifies the operator and the chats the bot works in.
type BotConfig struct {
	// OperatorID is the single privileged user authorized to issue commands
	// and receive relayed private messages.
	OperatorID int64 `mapstructure:"operator_id" validate:"required,gt=0"`
	// OperatorChatID is where relay summaries are posted. It may be the
	// operator's private chat or a staff group.
	OperatorChatID int64 `mapstructure:"operator_chat_id" validate:"required"`
	// CommunityChatID is the group watched for member arrivals.
	CommunityChatID int64 `mapstructure:"community_chat_id" validate:"required"`
	// AnnouncementChatID is the channel announcements are broadcast to.
	AnnouncementChatID int64 `mapstructure:"announcement_chat_id" validate:"required"`
	// WelcomeChatID is where arrival greetings are posted.
	WelcomeChatID int64 `mapstructure:"welcome_chat_id" validate:"required"`
	// RoleTitle is the visible role title assigned to arriving members.
	RoleTitle string `mapstructure:"role_title"`
	// UTCOffsetHours shifts scheduling and time-of-day classification from UTC.
	UTCOffsetHours int `mapstructure:"utc_offset_hours" validate:"min=-12,max=14"`
	// HistoryLimit caps the /history listing.
	HistoryLimit int `mapstructure:"history_limit" validate:"gt=0"`
}

// RelayConfig bounds the in-memory relay table.
type RelayConfig struct {
	MaxEntries int           `mapstructure:"max_entries" validate:"gt=0"`
	TTL        time.Duration `mapstructure:"ttl" validate:"gt=0"`
}

// PresenceConfig drives the status rotation loop.
type PresenceConfig struct {
	Interval      time.Duration `mapstructure:"interval" validate:"min=10s"`
	DayStatuses   []string      `mapstructure:"day_statuses" validate:"min=1"`
	NightStatuses []string      `mapstructure:"night_statuses" validate:"min=1"`
}

// SchedulerConfig configures the recurring maintenance job.
type SchedulerConfig struct {
	// MaintenanceSchedule is a cron expression for audit pruning.
	MaintenanceSchedule string        `mapstructure:"maintenance_schedule" validate:"required"`
	HistoryRetention    time.Duration `mapstructure:"history_retention" validate:"gt=0"`
}

// DatabaseConfig locates the SQLite audit database.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// MessagesConfig holds the user-facing message templates.
type MessagesConfig struct {
	Welcome          string `mapstructure:"welcome"`
	Rules            string `mapstructure:"rules"`
	StartReply       string `mapstructure:"start_reply"`
	PermissionDenied string `mapstructure:"permission_denied"`
	AnnounceUsage    string `mapstructure:"announce_usage"`
	RelayDelivered   string `mapstructure:"relay_delivered"`
	RelayFailed      string `mapstructure:"relay_failed"`
	GeneralError     string `mapstructure:"general_error"`
}

// LoadConfig reads configuration from the given YAML file, applies defaults
// and BOT_* environment overrides, and validates the result. A missing config
// file is allowed as long as the required values arrive via environment.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		slog.Info("Configuration file not found, using defaults and environment", "path", path)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.json", true)

	v.SetDefault("bot.role_title", "Member")
	v.SetDefault("bot.utc_offset_hours", 0)
	v.SetDefault("bot.history_limit", 10)

	v.SetDefault("relay.max_entries", 1000)
	v.SetDefault("relay.ttl", "72h")

	v.SetDefault("presence.interval", "10m")
	v.SetDefault("presence.day_statuses", []string{
		"☀️ Around and watching the halls",
		"📨 DM me and I'll pass it on",
		"🛡️ Keeping the community tidy",
	})
	v.SetDefault("presence.night_statuses", []string{
		"🌙 Quiet hours, still listening",
		"💤 The halls are asleep, DMs are open",
	})

	v.SetDefault("scheduler.maintenance_schedule", "0 4 * * *")
	v.SetDefault("scheduler.history_retention", "2160h") // 90 days

	v.SetDefault("database.path", "steward.db")

	v.SetDefault("messages.welcome", "🎉 Welcome, %s! Feel free to introduce yourself.")
	v.SetDefault("messages.rules", "👋 Welcome!\n\nHere are the rules:\n1️⃣ Be respectful\n2️⃣ No harassment or bad behaviour is tolerated\n3️⃣ Have fun!\n\nYou can message me here any time and I'll pass it on to the operator.")
	v.SetDefault("messages.start_reply", "Hello! Send me a message and I'll relay it to the operator.")
	v.SetDefault("messages.permission_denied", "You don't have permission to make announcements.")
	v.SetDefault("messages.announce_usage", "Usage: !announce <message>")
	v.SetDefault("messages.relay_delivered", "Delivered to %s.")
	v.SetDefault("messages.relay_failed", "Could not deliver the reply: %s")
	v.SetDefault("messages.general_error", "An error occurred. Please try again later.")
}
