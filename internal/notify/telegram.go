// Package notify delivers review reminders over Telegram. The channel is
// optional; an unconfigured app simply never constructs a notifier.
package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramNotifier sends messages to one configured chat
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier authenticates against the Bot API
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

// SendReminder delivers one reminder message
func (n *TelegramNotifier) SendReminder(text string) error {
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram reminder: %w", err)
	}
	return nil
}

// ReminderText formats the daily due-count summary
func ReminderText(vocab, grammar, mistakes int) string {
	total := vocab + grammar + mistakes
	if total == 0 {
		return "Nada pendiente hoy. Buen momento para una mision o una conversacion."
	}
	return fmt.Sprintf(
		"Tienes %d repasos pendientes: %d de vocabulario, %d de gramatica, %d del banco de errores.",
		total, vocab, grammar, mistakes,
	)
}
