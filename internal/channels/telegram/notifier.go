// Package telegram delivers dose reminders to a Telegram chat.
package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Notifier sends reminder messages to a single configured chat.
type Notifier struct {
	api     *tgbotapi.BotAPI
	chatID  int64
	logger  *zap.Logger
	enabled bool
}

// Config holds Telegram channel configuration
type Config struct {
	Token   string
	ChatID  int64
	Enabled bool
}

// NewNotifier creates the channel. When disabled it returns a no-op
// notifier so callers never need to branch.
func NewNotifier(cfg Config, logger *zap.Logger) (*Notifier, error) {
	if !cfg.Enabled || cfg.Token == "" {
		return &Notifier{enabled: false, logger: logger}, nil
	}

	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	api.Debug = false

	logger.Info("Telegram channel ready", zap.String("bot", api.Self.UserName))

	return &Notifier{
		api:     api,
		chatID:  cfg.ChatID,
		logger:  logger,
		enabled: true,
	}, nil
}

// Notify sends one message to the configured chat.
func (n *Notifier) Notify(message string) error {
	if !n.enabled {
		return nil
	}
	msg := tgbotapi.NewMessage(n.chatID, message)
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}
