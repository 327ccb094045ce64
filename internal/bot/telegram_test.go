// internal/bot/telegram_test.go
package bot

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/shopbot/internal/chat"
)

func TestEventFromMessage(t *testing.T) {
	update := tgbotapi.Update{
		Message: &tgbotapi.Message{
			MessageID: 10,
			From:      &tgbotapi.User{ID: 1001, UserName: "ali"},
			Chat:      &tgbotapi.Chat{ID: 1001},
			Text:      "/start",
		},
	}

	ev, ok := EventFromUpdate(update)
	require.True(t, ok)
	assert.Equal(t, Event{UserID: 1001, ChatID: 1001, Username: "ali", Text: "/start", MessageID: 10}, ev)
	assert.False(t, ev.IsCallback())
}

func TestEventFromCallback(t *testing.T) {
	update := tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:      "cb-1",
			From:    &tgbotapi.User{ID: 1001},
			Message: &tgbotapi.Message{MessageID: 55, Chat: &tgbotapi.Chat{ID: 2002}},
			Data:    "prod:1",
		},
	}

	ev, ok := EventFromUpdate(update)
	require.True(t, ok)
	assert.Equal(t, int64(2002), ev.ChatID)
	assert.Equal(t, 55, ev.MessageID)
	assert.Equal(t, "prod:1", ev.Data)
	assert.True(t, ev.IsCallback())
}

func TestEventFromUpdateSkipsOthers(t *testing.T) {
	_, ok := EventFromUpdate(tgbotapi.Update{})
	assert.False(t, ok)

	_, ok = EventFromUpdate(tgbotapi.Update{Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 1}, Text: "channel post"}})
	assert.False(t, ok)
}

func TestChattableNewMessage(t *testing.T) {
	msg, ok := chattable(chat.Reply{
		ChatID:  1001,
		Text:    "<b>x</b>",
		HTML:    true,
		Buttons: [][]chat.Button{{{Label: "A", Data: "prod:1"}, {Label: "B", Data: "prod:2"}}},
	}).(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, tgbotapi.ModeHTML, msg.ParseMode)

	kb, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, kb.InlineKeyboard, 1)
	require.Len(t, kb.InlineKeyboard[0], 2)
	assert.Equal(t, "prod:2", *kb.InlineKeyboard[0][1].CallbackData)
}

func TestChattableMainMenu(t *testing.T) {
	msg, ok := chattable(chat.Reply{ChatID: 1001, Text: "hi", MainMenu: true}).(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Empty(t, msg.ParseMode)

	kb, ok := msg.ReplyMarkup.(tgbotapi.ReplyKeyboardMarkup)
	require.True(t, ok)
	assert.True(t, kb.ResizeKeyboard)
	require.Len(t, kb.Keyboard[0], 2)
	assert.Equal(t, "🧴 Katalog", kb.Keyboard[0][0].Text)
}

func TestChattableEdit(t *testing.T) {
	edit, ok := chattable(chat.Reply{ChatID: 1001, Text: "done", EditMessageID: 5}).(tgbotapi.EditMessageTextConfig)
	require.True(t, ok)
	assert.Equal(t, 5, edit.MessageID)
	assert.Nil(t, edit.ReplyMarkup)
}
