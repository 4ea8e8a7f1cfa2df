package notification

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram is a notify service backed by an already-authenticated bot
// client, so the process keeps a single bot connection.
type Telegram struct {
	client  *tgbotapi.BotAPI
	chatIDs []int64
}

func (t *Telegram) SetClient(client *tgbotapi.BotAPI) {
	t.client = client
}

func (t *Telegram) AddReceivers(chatIDs ...int64) {
	t.chatIDs = append(t.chatIDs, chatIDs...)
}

func (t *Telegram) Send(ctx context.Context, subject, message string) error {
	text := subject + "\n" + message

	for _, chatID := range t.chatIDs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			msg := tgbotapi.NewMessage(chatID, text)
			if _, err := t.client.Send(msg); err != nil {
				return fmt.Errorf("failed to send message to telegram chat '%d': %w", chatID, err)
			}
		}
	}
	return nil
}
