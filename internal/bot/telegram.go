package bot

import (
	"context"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"gym-buddy-bot/internal/metrics"
	"gym-buddy-bot/internal/screens"
	"gym-buddy-bot/pkg/logger"
)

// sender is the part of the Telegram API the bot talks to.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type TelegramBot struct {
	bot    *tgbotapi.BotAPI
	api    sender
	router *screens.Router
	logger *logger.Logger
	wg     sync.WaitGroup
}

func NewTelegramBot(token string, debug bool, router *screens.Router, logger *logger.Logger) (*TelegramBot, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}
	bot.Debug = debug

	logger.Info("Authorized on Telegram", "username", bot.Self.UserName)

	t := newBot(bot, router, logger)
	t.bot = bot
	return t, nil
}

func newBot(api sender, router *screens.Router, logger *logger.Logger) *TelegramBot {
	return &TelegramBot{
		api:    api,
		router: router,
		logger: logger.Named("telegram"),
	}
}

// Start begins receiving updates from Telegram via polling
func (t *TelegramBot) Start(ctx context.Context) error {
	// First, remove any existing webhook to ensure we can use polling
	t.logger.Info("Removing any existing webhook")
	_, err := t.bot.Request(tgbotapi.DeleteWebhookConfig{
		DropPendingUpdates: true,
	})
	if err != nil {
		return fmt.Errorf("failed to delete webhook: %w", err)
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	updates := t.bot.GetUpdatesChan(updateConfig)

	t.logger.Info("Started receiving Telegram updates")

	go t.handleUpdates(ctx, updates)

	return nil
}

// handleUpdates processes every update on its own goroutine. The router
// serialises updates that belong to the same chat.
func (t *TelegramBot) handleUpdates(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		t.wg.Add(1)
		go func(update tgbotapi.Update) {
			defer t.wg.Done()
			defer func() {
				if r := recover(); r != nil {
					t.logger.Error("Recovered from panic while processing update", "error", r)
				}
			}()

			t.processUpdate(ctx, update)
		}(update)
	}
}

func (t *TelegramBot) processUpdate(ctx context.Context, update tgbotapi.Update) {
	t.logger.Debug("Received update", "update_id", update.UpdateID)

	switch {
	case update.Message != nil:
		t.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		t.handleCallbackQuery(ctx, update.CallbackQuery)
	}

	metrics.SetActiveDevices(t.router.Devices())
}

func (t *TelegramBot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.Text == "" {
		return
	}
	chatID := message.Chat.ID

	reply := t.router.Handle(ctx, chatID, message.Text)
	if reply.DeleteInput {
		if _, err := t.api.Request(tgbotapi.NewDeleteMessage(chatID, message.MessageID)); err != nil {
			t.logger.Warn("Failed to delete message", "chat_id", chatID, "error", err)
		}
	}
	t.send(chatID, reply)
}

// handleCallbackQuery runs the command carried by an inline button.
func (t *TelegramBot) handleCallbackQuery(ctx context.Context, callbackQuery *tgbotapi.CallbackQuery) {
	t.logger.Debug("Received callback query", "data", callbackQuery.Data)

	if _, err := t.api.Request(tgbotapi.NewCallback(callbackQuery.ID, "")); err != nil {
		t.logger.Warn("Failed to answer callback query", "error", err)
	}
	if callbackQuery.Message == nil {
		return
	}

	chatID := callbackQuery.Message.Chat.ID
	t.send(chatID, t.router.Handle(ctx, chatID, callbackQuery.Data))
}

func (t *TelegramBot) send(chatID int64, reply screens.Reply) {
	msg := tgbotapi.NewMessage(chatID, reply.Text)
	if len(reply.Buttons) > 0 {
		msg.ReplyMarkup = inlineKeyboard(reply.Buttons)
	}
	if _, err := t.api.Send(msg); err != nil {
		t.logger.Error("Failed to send message", "chat_id", chatID, "error", err)
	}
}

func inlineKeyboard(buttons [][]screens.Button) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(buttons))
	for _, row := range buttons {
		keys := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			keys = append(keys, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Command))
		}
		rows = append(rows, keys)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// Stop stops polling and waits for in-flight updates.
func (t *TelegramBot) Stop(ctx context.Context) error {
	t.bot.StopReceivingUpdates()

	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}
