package bot

import (
	"time"

	messages "PhotoQuizBot/assets"
	"PhotoQuizBot/internal/bot/middleware"
	"PhotoQuizBot/internal/botinterface"
	"PhotoQuizBot/internal/catalog"
	"PhotoQuizBot/internal/game"
	"PhotoQuizBot/internal/rating"

	"gopkg.in/telebot.v3"
)

// ratingLimit - сколько строк показываем в /rating и /globalrating.
const ratingLimit = 25

// RatingView - то, что хендлерам нужно от хранилища рейтинга.
type RatingView interface {
	Leaderboard(chatID int64, limit int) []rating.Score
	GlobalLeaderboard(limit int) []rating.Score
	FilePath() string
}

// Handlers - роутинг команд и колбэков игры.
type Handlers struct {
	Bot         botinterface.BotInterface
	GameManager *game.GameManager
	Catalog     *catalog.Catalog
	Rating      RatingView

	OwnerID         int64
	AllowAnyoneStop bool
	PromptTTL       time.Duration

	categoryBtn telebot.InlineButton
	skipBtn     telebot.InlineButton
}

// NewHandlers создание нового хендлера через контруктор
func NewHandlers(
	bot botinterface.BotInterface,
	gm *game.GameManager,
	cat *catalog.Catalog,
	ratings RatingView,
	ownerID int64,
	allowAnyoneStop bool,
	promptTTL time.Duration,
) *Handlers {
	h := &Handlers{
		Bot:             bot,
		GameManager:     gm,
		Catalog:         cat,
		Rating:          ratings,
		OwnerID:         ownerID,
		AllowAnyoneStop: allowAnyoneStop,
		PromptTTL:       promptTTL,
	}
	h.categoryBtn = telebot.InlineButton{
		Unique: "pick_category",
	}
	h.skipBtn = telebot.InlineButton{
		Unique: "skip_round",
		Text:   messages.SkipButtonText,
	}
	return h
}

func (h *Handlers) Register() {
	h.Bot.Handle("/start", h.Start)
	h.Bot.Handle("/game", middleware.GroupOnly(h.HandleStartGame))
	h.Bot.Handle("/stop", middleware.GroupOnly(h.HandleStop))
	h.Bot.Handle("/rating", middleware.GroupOnly(h.HandleRating))
	h.Bot.Handle("/globalrating", h.HandleGlobalRating)
	h.Bot.Handle("/dbal", h.HandleDbDump, middleware.OnlyOwner(h.OwnerID))

	h.Bot.Handle(&h.categoryBtn, h.OnCategoryChosen)
	h.Bot.Handle(&h.skipBtn, h.OnSkip)
	h.Bot.Handle(telebot.OnText, h.OnText)
}

func (h *Handlers) Start(c telebot.Context) error {
	return c.Send(messages.WelcomeSingleMessage)
}
