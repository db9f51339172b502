package bot

import (
	"time"

	"PhotoQuizBot/internal/botinterface"
	"PhotoQuizBot/internal/catalog"
	"PhotoQuizBot/internal/game"
)

func InitRouters(
	bot botinterface.BotInterface,
	gm *game.GameManager,
	cat *catalog.Catalog,
	ratings RatingView,
	ownerID int64,
	allowAnyoneStop bool,
	promptTTL time.Duration,
) {
	handlers := NewHandlers(bot, gm, cat, ratings, ownerID, allowAnyoneStop, promptTTL)
	handlers.Register()

	gm.SetTimeoutHandler(handlers.OnRoundTimeout)
}
