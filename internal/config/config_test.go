package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ldmoreira/stewardbot/internal/config"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

const minimalConfig = `
telegram:
  token: "test-token"
bot:
  operator_id: 99
  operator_chat_id: -100
  community_chat_id: -300
  announcement_chat_id: -200
  welcome_chat_id: -400
`

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, minimalConfig)

	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Telegram.Token != "test-token" {
		t.Errorf("Telegram.Token = %q, want %q", cfg.Telegram.Token, "test-token")
	}
	if cfg.Logger.Level != "info" {
		t.Errorf("Logger.Level = %q, want default %q", cfg.Logger.Level, "info")
	}
	if cfg.Relay.MaxEntries != 1000 {
		t.Errorf("Relay.MaxEntries = %d, want default 1000", cfg.Relay.MaxEntries)
	}
	if cfg.Relay.TTL != 72*time.Hour {
		t.Errorf("Relay.TTL = %v, want default 72h", cfg.Relay.TTL)
	}
	if len(cfg.Presence.DayStatuses) == 0 || len(cfg.Presence.NightStatuses) == 0 {
		t.Error("default presence status pools must not be empty")
	}
	if cfg.Scheduler.MaintenanceSchedule == "" {
		t.Error("default maintenance schedule must not be empty")
	}
	if cfg.Messages.Welcome == "" || cfg.Messages.Rules == "" {
		t.Error("default message templates must not be empty")
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
telegram:
  token: "test-token"
logger:
  level: debug
relay:
  max_entries: 5
  ttl: 1h
bot:
  operator_id: 99
  operator_chat_id: -100
  community_chat_id: -300
  announcement_chat_id: -200
  welcome_chat_id: -400
  utc_offset_hours: -3
`)

	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Logger.Level != "debug" {
		t.Errorf("Logger.Level = %q, want %q", cfg.Logger.Level, "debug")
	}
	if cfg.Relay.MaxEntries != 5 || cfg.Relay.TTL != time.Hour {
		t.Errorf("Relay = %+v, want max_entries 5 and ttl 1h", cfg.Relay)
	}
	if cfg.Bot.UTCOffsetHours != -3 {
		t.Errorf("Bot.UTCOffsetHours = %d, want -3", cfg.Bot.UTCOffsetHours)
	}
}

func TestLoadConfigRejectsMissingToken(t *testing.T) {
	path := writeConfigFile(t, `
bot:
  operator_id: 99
  operator_chat_id: -100
  community_chat_id: -300
  announcement_chat_id: -200
  welcome_chat_id: -400
`)

	if _, err := config.LoadConfig(path); err == nil {
		t.Error("LoadConfig() with missing telegram token succeeded, want validation error")
	}
}

func TestLoadConfigRejectsBadOffset(t *testing.T) {
	path := writeConfigFile(t, `
telegram:
  token: "test-token"
bot:
  operator_id: 99
  operator_chat_id: -100
  community_chat_id: -300
  announcement_chat_id: -200
  welcome_chat_id: -400
  utc_offset_hours: 30
`)

	if _, err := config.LoadConfig(path); err == nil {
		t.Error("LoadConfig() with out-of-range utc offset succeeded, want validation error")
	}
}
