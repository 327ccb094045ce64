// internal/bot/telegram.go
package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/shopbot/internal/chat"
	"github.com/javajoker/shopbot/internal/messages"
)

// TelegramMessenger renders chat replies through the Bot API. The client
// library has no context support, so ctx is only checked before each call.
type TelegramMessenger struct {
	api *tgbotapi.BotAPI
}

func NewTelegramMessenger(api *tgbotapi.BotAPI) *TelegramMessenger {
	return &TelegramMessenger{api: api}
}

func (m *TelegramMessenger) Send(ctx context.Context, reply chat.Reply) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := m.api.Request(chattable(reply))
	if err != nil {
		return fmt.Errorf("telegram send failed: %w", err)
	}
	return nil
}

func (m *TelegramMessenger) AnswerCallback(ctx context.Context, callbackID, text string, alert bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cfg := tgbotapi.NewCallback(callbackID, text)
	cfg.ShowAlert = alert
	if _, err := m.api.Request(cfg); err != nil {
		return fmt.Errorf("telegram answer callback failed: %w", err)
	}
	return nil
}

// chattable maps a reply to a sendMessage or editMessageText request.
func chattable(reply chat.Reply) tgbotapi.Chattable {
	parseMode := ""
	if reply.HTML {
		parseMode = tgbotapi.ModeHTML
	}

	if reply.EditMessageID != 0 {
		edit := tgbotapi.NewEditMessageText(reply.ChatID, reply.EditMessageID, reply.Text)
		edit.ParseMode = parseMode
		if reply.HasButtons() {
			kb := inlineKeyboard(reply.Buttons)
			edit.ReplyMarkup = &kb
		}
		return edit
	}

	msg := tgbotapi.NewMessage(reply.ChatID, reply.Text)
	msg.ParseMode = parseMode
	switch {
	case reply.HasButtons():
		msg.ReplyMarkup = inlineKeyboard(reply.Buttons)
	case reply.MainMenu:
		msg.ReplyMarkup = mainMenuKeyboard()
	}
	return msg
}

func inlineKeyboard(rows [][]chat.Button) tgbotapi.InlineKeyboardMarkup {
	out := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Data))
		}
		out = append(out, tgbotapi.NewInlineKeyboardRow(buttons...))
	}
	return tgbotapi.NewInlineKeyboardMarkup(out...)
}

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(messages.T(messages.KeyMenuCatalog)),
			tgbotapi.NewKeyboardButton(messages.T(messages.KeyMenuCart)),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

// EventFromUpdate extracts the fields the conversation needs. Updates that
// carry neither a user message nor a button press are skipped.
func EventFromUpdate(update tgbotapi.Update) (Event, bool) {
	if cq := update.CallbackQuery; cq != nil && cq.From != nil {
		ev := Event{
			UserID:     cq.From.ID,
			ChatID:     cq.From.ID,
			Username:   cq.From.UserName,
			Data:       cq.Data,
			CallbackID: cq.ID,
		}
		if cq.Message != nil {
			ev.MessageID = cq.Message.MessageID
			if cq.Message.Chat != nil {
				ev.ChatID = cq.Message.Chat.ID
			}
		}
		return ev, true
	}

	if msg := update.Message; msg != nil && msg.From != nil && msg.Chat != nil {
		return Event{
			UserID:    msg.From.ID,
			ChatID:    msg.Chat.ID,
			Username:  msg.From.UserName,
			Text:      msg.Text,
			MessageID: msg.MessageID,
		}, true
	}
	return Event{}, false
}

// RunPolling long-polls getUpdates and submits every event until ctx is done.
func RunPolling(ctx context.Context, api *tgbotapi.BotAPI, timeout int, dispatcher *Dispatcher) error {
	// a registered webhook makes getUpdates fail
	if _, err := api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		return fmt.Errorf("failed to delete webhook: %w", err)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeout
	updates := api.GetUpdatesChan(u)
	defer api.StopReceivingUpdates()

	logrus.WithField("bot", api.Self.UserName).Info("Polling for updates")
	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			ev, ok := EventFromUpdate(update)
			if !ok {
				continue
			}
			if err := dispatcher.Submit(ctx, ev); err != nil {
				logrus.WithError(err).WithField("user_id", ev.UserID).Warn("Failed to submit update")
			}
		}
	}
}

// SetWebhook registers url with Telegram.
func SetWebhook(api *tgbotapi.BotAPI, url string) error {
	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return fmt.Errorf("invalid webhook url: %w", err)
	}
	if _, err := api.Request(wh); err != nil {
		return fmt.Errorf("failed to set webhook: %w", err)
	}
	logrus.WithField("bot", api.Self.UserName).Info("Webhook registered")
	return nil
}
