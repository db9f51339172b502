package main

import (
	"context"
	"log"
	"log/slog"

	"PhotoQuizBot/internal/bot"
	"PhotoQuizBot/internal/bot/middleware"
	"PhotoQuizBot/internal/catalog"
	"PhotoQuizBot/internal/config"
	"PhotoQuizBot/internal/db"
	"PhotoQuizBot/internal/game"
	"PhotoQuizBot/internal/logging"
	"PhotoQuizBot/internal/rating"
	"PhotoQuizBot/internal/repositories"
	"PhotoQuizBot/internal/stats"

	tb "gopkg.in/telebot.v3"
)

func main() {

	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logging.InitLogger(conf.Logger)

	// Рейтинг живёт в json-файле, база нужна только для статистики.
	store := rating.Load(conf.Game.RatingFile)
	cat := catalog.NewCatalog(conf.Game.PhotosDir)

	var recorder game.StatsRecorder = game.NoopStatsRecorder{}
	if conf.Db.Dsn != "" {
		database, err := db.NewDB(&conf.Db)
		if err != nil {
			slog.Warn("db unavailable, статистика отключена", "err", err)
		} else {
			playerRepo := repositories.NewPlayerRepository(database)
			gameRepo := repositories.NewGameRecordRepository(database)
			recorder = stats.NewPgRecorder(playerRepo, gameRepo)
		}
	} else {
		slog.Info("db is not configured, статистика отключена")
	}

	// Tg settings
	pref := tb.Settings{
		Token:  conf.TG.Token,
		Poller: middleware.DropOldMessages(conf.Bot.DropOldMessagesAfter),
		OnError: func(err error, c tb.Context) {
			slog.Error("telebot", "err", err)
		},
	}

	b, err := tb.NewBot(pref)
	if err != nil {
		log.Fatal(err)
	}

	if conf.TG.OwnerID != 0 {
		logging.SetNotifier(logging.NewNotifier(b, conf.TG.OwnerID))
	}

	gm := game.NewGameManager(
		context.Background(),
		cat,
		store,
		recorder,
		conf.Game.MaxRounds,
		conf.Game.RoundTimeout,
	)

	bot.InitRouters(b, gm, cat, store, conf.TG.OwnerID, conf.Game.AllowAnyoneStop, conf.Game.PromptTTL)

	slog.Info("Bot starts...")
	b.Start()
}
