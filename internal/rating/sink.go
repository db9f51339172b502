package rating

import (
	"log/slog"

	"PhotoQuizBot/internal/game"
	"PhotoQuizBot/internal/logging"
)

// MergeSessionScores реализует game.ScoreSink: очки закончившейся игры
// вливаются в накопленный рейтинг и сразу пишутся на диск. Ошибка записи
// не останавливает игру - только лог и алерт владельцу.
func (s *Store) MergeSessionScores(chatID int64, scores []game.PlayerScore) {
	if len(scores) == 0 {
		return
	}

	conv := make([]Score, 0, len(scores))
	for _, ps := range scores {
		conv = append(conv, Score{Name: ps.UserName, Value: ps.Value})
	}

	s.Merge(chatID, conv)

	if err := s.Save(); err != nil {
		slog.Error("rating: save failed", "chat_id", chatID, "err", err)
		logging.Notify(slog.LevelError, "rating save failed", "err", err)
	}
}
