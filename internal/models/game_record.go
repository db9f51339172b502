package models

import "gorm.io/gorm"

// GameRecord - одна сыгранная (или идущая) игра в чате.
type GameRecord struct {
	gorm.Model
	ChatID       int64  `gorm:"column:chat_id;index"`
	Category     string `gorm:"column:category"`
	RoundsPlayed int    `gorm:"column:rounds_played"`
	IsActive     bool   `gorm:"column:is_active"`
}

func NewGameRecord(chatID int64, category string) *GameRecord {
	return &GameRecord{
		ChatID:   chatID,
		Category: category,
		IsActive: true,
	}
}
