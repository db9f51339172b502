package repositories

import (
	"fmt"

	"PhotoQuizBot/internal/db"
	"PhotoQuizBot/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PlayerRepository struct {
	DataBase *db.Db
}

func NewPlayerRepository(db *db.Db) *PlayerRepository {
	return &PlayerRepository{
		DataBase: db,
	}
}

// CreateIfNotExists регистрирует игрока, если его ещё нет.
func (repo *PlayerRepository) CreateIfNotExists(player *models.Player) error {
	result := repo.DataBase.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tg_user_id"}},
			DoNothing: true,
		}).
		Create(player)

	if result.Error != nil {
		return fmt.Errorf("player create if not exists: %w", result.Error)
	}
	return nil
}

func (repo *PlayerRepository) GetByTgID(tgUserID int64) (*models.Player, error) {
	var player models.Player
	result := repo.DataBase.First(&player, "tg_user_id = ?", tgUserID)
	if result.Error != nil {
		return nil, result.Error
	}
	return &player, nil
}

// AddCorrectGuess инкрементирует счётчик угаданных фотографий.
func (repo *PlayerRepository) AddCorrectGuess(tgUserID int64) error {
	result := repo.DataBase.
		Model(&models.Player{}).
		Where("tg_user_id = ?", tgUserID).
		UpdateColumn("correct_guesses", gorm.Expr("correct_guesses + ?", 1))

	if result.Error != nil {
		return fmt.Errorf("player inc correct_guesses: %w", result.Error)
	}
	return nil
}
