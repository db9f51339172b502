package models

import "gorm.io/gorm"

type Player struct {
	gorm.Model
	TgUserId       int64  `gorm:"column:tg_user_id;uniqueIndex"`
	UserName       string `gorm:"column:username"`
	FirstName      string `gorm:"column:first_name"`
	CorrectGuesses int    `gorm:"column:correct_guesses"`
}

func NewPlayer(tgID int64, userName, firstName string) *Player {
	return &Player{
		TgUserId:  tgID,
		UserName:  userName,
		FirstName: firstName,
	}
}
