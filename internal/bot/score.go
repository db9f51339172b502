package bot

import (
	"log/slog"

	messages "PhotoQuizBot/assets"

	"gopkg.in/telebot.v3"
)

// HandleRating - накопленный рейтинг этого чата.
func (h *Handlers) HandleRating(c telebot.Context) error {
	scores := h.Rating.Leaderboard(c.Chat().ID, ratingLimit)
	if len(scores) == 0 {
		return c.Send(messages.NoRatingYet)
	}
	return c.Send(RenderRating(messages.RatingTitle, scores))
}

// HandleGlobalRating - рейтинг по всем чатам, участники сливаются по имени.
func (h *Handlers) HandleGlobalRating(c telebot.Context) error {
	scores := h.Rating.GlobalLeaderboard(ratingLimit)
	if len(scores) == 0 {
		return c.Send(messages.NoRatingYet)
	}
	return c.Send(RenderRating(messages.GlobalRatingTitle, scores))
}

// HandleDbDump - /dbal: выгрузка сырого файла рейтинга владельцу.
func (h *Handlers) HandleDbDump(c telebot.Context) error {
	doc := &telebot.Document{
		File:     telebot.FromDisk(h.Rating.FilePath()),
		FileName: "db.json",
		MIME:     "application/json",
	}

	if _, err := h.Bot.Send(c.Chat(), doc); err != nil {
		slog.Error("bot: send rating dump", "chat_id", c.Chat().ID, "err", err)
		return c.Send(messages.ErrorMessagesForUser)
	}
	return nil
}
