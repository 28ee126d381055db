package notify

import (
	"context"
	"fmt"
	"log"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const helpMessage = "Available commands:\n" +
	"/id - get your Telegram ID\n" +
	"/reset - request a password reset\n" +
	"/help - show this message"

const resetAckMessage = "The administrator has received your request.\n" +
	"Your password will be reset shortly."

// TelegramNotifier sends messages through a Telegram bot. The recipient id is
// the chat id the user obtained with /id at registration time.
type TelegramNotifier struct {
	api *tgbotapi.BotAPI
}

func NewTelegramNotifier(token string) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("notify.NewTelegramNotifier: %w", err)
	}
	return &TelegramNotifier{api: api}, nil
}

func (n *TelegramNotifier) Notify(ctx context.Context, recipientID string, text string) error {
	chatID, err := strconv.ParseInt(recipientID, 10, 64)
	if err != nil {
		return fmt.Errorf("notify.TelegramNotifier: invalid recipient id %q: %w", recipientID, err)
	}
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("notify.TelegramNotifier: send: %w", err)
	}
	return nil
}

// Listen answers the bot's user-facing commands until ctx is cancelled. Runs
// as a goroutine next to the HTTP server.
func (n *TelegramNotifier) Listen(ctx context.Context) {
	log.Printf("Telegram bot authorised on account %s", n.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := n.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			n.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil {
				continue
			}
			chatID := update.Message.Chat.ID
			switch update.Message.Command() {
			case "id":
				n.reply(chatID, fmt.Sprintf("Your chat ID is: %d", chatID))
			case "reset":
				n.reply(chatID, resetAckMessage)
				log.Printf("Password reset requested from chat %d", chatID)
			case "help":
				n.reply(chatID, helpMessage)
			default:
				n.reply(chatID, "Unknown command. Send /help to see the available commands.")
			}
		}
	}
}

func (n *TelegramNotifier) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := n.api.Send(msg); err != nil {
		log.Printf("Error sending telegram message: %v", err)
	}
}
