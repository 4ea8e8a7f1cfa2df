package notification

import (
	"context"
	"f1timingapi/pkg/caster"
	"f1timingapi/pkg/pubsub"
	"f1timingapi/pkg/timing"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/nikoksr/notify"
)

// Manager pushes a Telegram message every time a session is loaded. It is
// only started when a bot token and chat id are configured.
type Manager struct {
	ctx          context.Context
	bot          *tgbotapi.BotAPI
	chatID       int64
	pubsubMgr    *pubsub.PubSub[string]
	loadedCaster caster.ChannelCaster[timing.SessionLoaded]
}

func NewManager(ctx context.Context, bot *tgbotapi.BotAPI, chatID int64, pubsubMgr *pubsub.PubSub[string]) *Manager {
	return &Manager{
		ctx:          ctx,
		bot:          bot,
		chatID:       chatID,
		pubsubMgr:    pubsubMgr,
		loadedCaster: caster.JSONChannelCaster[timing.SessionLoaded]{},
	}
}

func (m *Manager) Start(exitChan <-chan bool) {
	loadedChan := m.pubsubMgr.Subscribe(timing.PubSubSessionLoadedTopic)
	for {
		select {
		case <-exitChan:
			return
		case payload := <-loadedChan:
			loaded, err := m.loadedCaster.From(payload)
			if err != nil {
				log.Printf("Error casting session loaded event from json: %s", err.Error())
				continue
			}
			m.handleNotification(loaded)
		}
	}
}

func (m *Manager) handleNotification(loaded timing.SessionLoaded) {
	log.Printf("Sending notification for %d %s %s\n", loaded.Year, loaded.Event, loaded.Kind)
	err := m.sendNotification(loaded)
	if err != nil {
		log.Printf("Error notifying session loaded: %s", err.Error())
	}
}

func (m *Manager) sendNotification(loaded timing.SessionLoaded) error {
	tg := Telegram{}
	tg.SetClient(m.bot)
	tg.AddReceivers(m.chatID)

	n := notify.NewWithServices(&tg)
	body := fmt.Sprintf("  ▸ Year: %d\n  ▸ Event: %s\n  ▸ Session: %s\n  ▸ Drivers: %d",
		loaded.Year, loaded.Event, loaded.Kind, loaded.Drivers)
	return n.Send(m.ctx, "Session loaded:", body)
}
