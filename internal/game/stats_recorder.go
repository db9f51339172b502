package game

import "context"

// StatsRecorder пишет агрегаты в базу статистики. Все реализации обязаны
// глотать собственные ошибки: статистика не должна ломать игру.
type StatsRecorder interface {
	CreateGameRecord(ctx context.Context, chatID int64, category string) int64
	FinishGameRecord(ctx context.Context, recordID int64, roundsPlayed int)
	RecordCorrectGuess(ctx context.Context, user User)
}

// NoopStatsRecorder - дефолт: ничего не делает.
type NoopStatsRecorder struct{}

func (NoopStatsRecorder) CreateGameRecord(ctx context.Context, chatID int64, category string) int64 {
	return 0
}
func (NoopStatsRecorder) FinishGameRecord(ctx context.Context, recordID int64, roundsPlayed int) {}
func (NoopStatsRecorder) RecordCorrectGuess(ctx context.Context, user User)                      {}

// ScoreSink принимает очки закончившейся игры (персистентный рейтинг).
type ScoreSink interface {
	MergeSessionScores(chatID int64, scores []PlayerScore)
}

// NoopScoreSink - для тестов.
type NoopScoreSink struct{}

func (NoopScoreSink) MergeSessionScores(chatID int64, scores []PlayerScore) {}
