package main

import (
	"context"
	"log"

	"f1timingapi/pkg/api"
	"f1timingapi/pkg/config"
	"f1timingapi/pkg/fastf1"
	"f1timingapi/pkg/livetiming"
	"f1timingapi/pkg/notification"
	"f1timingapi/pkg/pubsub"
	"f1timingapi/pkg/timing"
	"f1timingapi/pkg/webserver"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func main() {
	cfg := config.Load()

	// Create a new cancellable background context. Calling `cancel()` leads to the cancellation of the context
	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var cache *fastf1.Cache
	if cfg.CacheEnabled {
		var err error
		cache, err = fastf1.NewCache(cfg.CachePath)
		if err != nil {
			log.Printf("Cache disabled: %s", err.Error())
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	provider := fastf1.NewHTTPProvider(cfg.ProviderURL, cache)
	pubsubMgr := pubsub.NewPubSub[string]()
	store := timing.NewStore(provider, pubsubMgr)

	exitChan := make(chan bool)
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
		if err != nil {
			log.Printf("Telegram notifications disabled: %s", err.Error())
		} else {
			nm := notification.NewManager(ctx, bot, cfg.TelegramChatID, pubsubMgr)
			go nm.Start(exitChan)
		}
	}

	if cfg.LiveFeedURL != "" {
		client := livetiming.NewClient(cfg.LiveFeedURL, store)
		go client.Run(ctx)
	}

	// Load the default session before serving. Failure is not fatal; the
	// API starts with an empty snapshot and a client can retry the load.
	log.Printf("Loading default session: %d %s %s", cfg.DefaultYear, cfg.DefaultEvent, cfg.DefaultSessionKind)
	err := store.LoadSession(ctx, cfg.DefaultYear, cfg.DefaultEvent, cfg.DefaultSessionKind)
	if err != nil {
		log.Printf("Default session not loaded: %s", err.Error())
	} else {
		log.Printf("Classification:\n%s", timing.RenderClassification(store.Snapshot()))
	}

	m := webserver.NewManager(cfg.ListenAddr())
	api.NewHandler(store, cfg).Register(m.Router())

	// Blocks until SIGINT/SIGTERM.
	m.Serve()

	close(exitChan)
}
