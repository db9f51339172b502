package stats

import (
	"context"
	"errors"
	"log/slog"

	"PhotoQuizBot/internal/game"
	"PhotoQuizBot/internal/models"
	"PhotoQuizBot/internal/repositories"

	"gorm.io/gorm"
)

// PgRecorder пишет игровую статистику в Postgres. Любая ошибка - в лог,
// наружу ничего не возвращаем: база статистики не должна ронять игру.
type PgRecorder struct {
	PlayerRepo *repositories.PlayerRepository
	GameRepo   *repositories.GameRecordRepository
}

var _ game.StatsRecorder = (*PgRecorder)(nil)

func NewPgRecorder(playerRepo *repositories.PlayerRepository, gameRepo *repositories.GameRecordRepository) *PgRecorder {
	return &PgRecorder{PlayerRepo: playerRepo, GameRepo: gameRepo}
}

func (r *PgRecorder) CreateGameRecord(ctx context.Context, chatID int64, category string) int64 {
	record, err := r.GameRepo.Create(models.NewGameRecord(chatID, category))
	if err != nil {
		slog.Error("stats: game record not saved", "chat_id", chatID, "err", err)
		return 0
	}
	return int64(record.ID)
}

func (r *PgRecorder) FinishGameRecord(ctx context.Context, recordID int64, roundsPlayed int) {
	if recordID == 0 {
		return
	}
	if err := r.GameRepo.Finish(recordID, roundsPlayed); err != nil {
		slog.Error("stats: game record not finished", "record_id", recordID, "err", err)
	}
}

func (r *PgRecorder) RecordCorrectGuess(ctx context.Context, user game.User) {
	_, err := r.PlayerRepo.GetByTgID(user.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		player := models.NewPlayer(user.ID, user.Username, user.FirstName)
		if err := r.PlayerRepo.CreateIfNotExists(player); err != nil {
			slog.Error("stats: create player", "tg_user_id", user.ID, "err", err)
			return
		}
	} else if err != nil {
		slog.Error("stats: get player", "tg_user_id", user.ID, "err", err)
		return
	}

	if err := r.PlayerRepo.AddCorrectGuess(user.ID); err != nil {
		slog.Error("stats: inc correct guesses", "tg_user_id", user.ID, "err", err)
	}
}
