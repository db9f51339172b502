package bot

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"time"

	messages "PhotoQuizBot/assets"
	"PhotoQuizBot/internal/catalog"
	"PhotoQuizBot/internal/game"

	"gopkg.in/telebot.v3"
)

// HandleStartGame - команда /game: заявка на игру и клавиатура категорий.
func (h *Handlers) HandleStartGame(c telebot.Context) error {
	chatID := c.Chat().ID

	if err := h.GameManager.StartGame(chatID); err != nil {
		if errors.Is(err, game.ErrGameActive) {
			return c.Send(messages.GameAlreadyActive)
		}
		slog.Error("bot: start game", "chat_id", chatID, "err", err)
		return c.Send(messages.ErrorMessagesForUser)
	}

	row := make([]telebot.InlineButton, 0, 3)
	for _, category := range h.Catalog.Categories() {
		btn := h.categoryBtn
		btn.Text = category
		btn.Data = category
		row = append(row, btn)
	}
	markup := &telebot.ReplyMarkup{}
	markup.InlineKeyboard = [][]telebot.InlineButton{row}

	msg, err := h.Bot.Send(c.Chat(), messages.ChooseCategory, markup)
	if err != nil {
		slog.Error("bot: send category prompt", "chat_id", chatID, "err", err)
		h.GameManager.CancelIfAwaiting(chatID)
		return nil
	}

	// Промпт живёт недолго: удаляем его и, если категорию так и не выбрали,
	// сбрасываем заявку.
	time.AfterFunc(h.PromptTTL, func() {
		if err := h.Bot.Delete(msg); err != nil {
			slog.Debug("bot: delete category prompt", "chat_id", chatID, "err", err)
		}
		h.GameManager.CancelIfAwaiting(chatID)
	})

	return nil
}

// OnCategoryChosen - нажатие кнопки категории.
func (h *Handlers) OnCategoryChosen(c telebot.Context) error {
	if c.Callback() != nil {
		_ = c.Respond()
	}

	chatID := c.Chat().ID
	category := c.Data()
	if !h.Catalog.HasCategory(category) {
		return nil
	}

	round, err := h.GameManager.ChooseCategory(chatID, category)
	switch {
	case errors.Is(err, game.ErrNoPhotos):
		return c.Send(messages.NoPhotosMessage)
	case errors.Is(err, catalog.ErrCategoryUnavailable):
		slog.Warn("bot: category unavailable", "chat_id", chatID, "category", category, "err", err)
		return c.Send(fmt.Sprintf(messages.CategoryBrokeFmt, category))
	case errors.Is(err, game.ErrNoSession):
		// просроченный промпт или двойной клик - молча игнорируем
		return nil
	case err != nil:
		slog.Error("bot: choose category", "chat_id", chatID, "err", err)
		return c.Send(messages.ErrorMessagesForUser)
	}

	if err := c.Send(fmt.Sprintf(messages.GameStartedFmt, category)); err != nil {
		slog.Warn("bot: send game started", "chat_id", chatID, "err", err)
	}

	return h.sendRound(c.Chat(), round)
}

// HandleStop - команда /stop посреди игры.
func (h *Handlers) HandleStop(c telebot.Context) error {
	if !h.AllowAnyoneStop && (c.Sender() == nil || c.Sender().ID != h.OwnerID) {
		return c.Send(messages.OwnerOnlyMessage)
	}

	result, err := h.GameManager.Stop(c.Chat().ID)
	if errors.Is(err, game.ErrNoSession) {
		return c.Send(messages.GameNotStarted)
	}
	if err != nil {
		slog.Error("bot: stop game", "chat_id", c.Chat().ID, "err", err)
		return c.Send(messages.ErrorMessagesForUser)
	}

	return c.Send(RenderSessionResult(*result))
}

// OnRoundTimeout - колбэк менеджера: раунд истёк без ответа.
func (h *Handlers) OnRoundTimeout(chatID int64, result game.SessionResult) {
	chat := &telebot.Chat{ID: chatID}

	if _, err := h.Bot.Send(chat, messages.TimeIsUpMessage); err != nil {
		slog.Warn("bot: send timeout message", "chat_id", chatID, "err", err)
	}
	if _, err := h.Bot.Send(chat, RenderSessionResult(result)); err != nil {
		slog.Warn("bot: send final score", "chat_id", chatID, "err", err)
	}
}

// sendRound отправляет фотографию раунда с подсказкой и, кроме последнего
// раунда, кнопкой пропуска.
func (h *Handlers) sendRound(chat *telebot.Chat, round *game.Round) error {
	data, err := h.Catalog.ReadPhoto(round.Item)
	if err != nil {
		slog.Error("bot: read photo", "chat_id", chat.ID, "item", round.Item.ID, "err", err)
		_, _ = h.Bot.Send(chat, messages.ErrorMessagesForUser)
		return nil
	}

	photo := &telebot.Photo{
		File:    telebot.FromReader(bytes.NewReader(data)),
		Caption: RenderRoundCaption(round),
	}

	if round.Last {
		_, err = h.Bot.Send(chat, photo)
	} else {
		markup := &telebot.ReplyMarkup{}
		markup.InlineKeyboard = [][]telebot.InlineButton{{h.skipBtn}}
		_, err = h.Bot.Send(chat, photo, markup)
	}

	if err != nil {
		slog.Error("bot: send round photo", "chat_id", chat.ID, "item", round.Item.ID, "err", err)
	}
	return nil
}
