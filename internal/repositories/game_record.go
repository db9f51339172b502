package repositories

import (
	"fmt"

	"PhotoQuizBot/internal/db"
	"PhotoQuizBot/internal/models"
)

type GameRecordRepository struct {
	DataBase *db.Db
}

func NewGameRecordRepository(db *db.Db) *GameRecordRepository {
	return &GameRecordRepository{
		DataBase: db,
	}
}

// Create заводит запись новой игры, закрывая зависшие активные записи чата.
func (repo *GameRecordRepository) Create(record *models.GameRecord) (*models.GameRecord, error) {
	repo.DataBase.
		Model(&models.GameRecord{}).
		Where("chat_id = ? AND is_active = true", record.ChatID).
		Update("is_active", false)

	result := repo.DataBase.Create(record)
	if result.Error != nil {
		return nil, result.Error
	}
	return record, nil
}

// Finish закрывает игру и фиксирует количество сыгранных раундов.
func (repo *GameRecordRepository) Finish(recordID int64, roundsPlayed int) error {
	result := repo.DataBase.
		Model(&models.GameRecord{}).
		Where("id = ?", recordID).
		Updates(map[string]any{
			"is_active":     false,
			"rounds_played": roundsPlayed,
		})

	if result.Error != nil {
		return fmt.Errorf("game record finish: %w", result.Error)
	}
	return nil
}

// HasAnyGame - были ли в чате игры вообще.
func (repo *GameRecordRepository) HasAnyGame(chatID int64) (bool, error) {
	var count int64
	result := repo.DataBase.
		Model(&models.GameRecord{}).
		Where("chat_id = ?", chatID).
		Count(&count)

	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}
