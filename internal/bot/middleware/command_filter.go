package middleware

import (
	messages "PhotoQuizBot/assets"

	"gopkg.in/telebot.v3"
)

// GroupOnly - Обертка для групповых команд.
func GroupOnly(handler telebot.HandlerFunc) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		chatType := c.Chat().Type
		if chatType != telebot.ChatGroup && chatType != telebot.ChatSuperGroup {
			return c.Send(messages.PlayInGroupMessage)
		}
		return handler(c)
	}
}

// OnlyOwner пропускает только владельца бота. OWNER_ID не задан - команда
// закрыта для всех.
func OnlyOwner(ownerID int64) func(next telebot.HandlerFunc) telebot.HandlerFunc {
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			if ownerID == 0 || c.Sender() == nil || c.Sender().ID != ownerID {
				return c.Send(messages.OwnerOnlyMessage)
			}
			return next(c)
		}
	}
}
