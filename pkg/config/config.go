package config

import (
	"fmt"

	"github.com/spf13/viper"
)

const envPrefix = "F1API"

// Config holds every knob the process reads. It is loaded once at startup;
// nothing re-reads the environment afterwards.
type Config struct {
	BindHost           string
	Port               int
	DefaultYear        int
	DefaultEvent       string
	DefaultSessionKind string
	ProviderURL        string
	CacheEnabled       bool
	CachePath          string
	TelegramToken      string
	TelegramChatID     int64
	LiveFeedURL        string
}

func Load() Config {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault("bind_host", "0.0.0.0")
	v.SetDefault("port", 5000)
	v.SetDefault("default_year", 2024)
	v.SetDefault("default_event", "Abu Dhabi")
	v.SetDefault("default_session_kind", "R")
	v.SetDefault("provider_url", "http://localhost:8000")
	v.SetDefault("cache_enabled", false)
	v.SetDefault("cache_path", "./fastf1-cache.db")
	v.SetDefault("telegram_token", "")
	v.SetDefault("telegram_chat_id", 0)
	v.SetDefault("live_feed_url", "")

	return Config{
		BindHost:           v.GetString("bind_host"),
		Port:               v.GetInt("port"),
		DefaultYear:        v.GetInt("default_year"),
		DefaultEvent:       v.GetString("default_event"),
		DefaultSessionKind: v.GetString("default_session_kind"),
		ProviderURL:        v.GetString("provider_url"),
		CacheEnabled:       v.GetBool("cache_enabled"),
		CachePath:          v.GetString("cache_path"),
		TelegramToken:      v.GetString("telegram_token"),
		TelegramChatID:     v.GetInt64("telegram_chat_id"),
		LiveFeedURL:        v.GetString("live_feed_url"),
	}
}

func (c Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.BindHost, c.Port)
}
