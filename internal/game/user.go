package game

import (
	"strings"

	"gopkg.in/telebot.v3"
)

type User struct {
	ID        int64
	Username  string
	FirstName string
}

// Достаем User из телеги
func GetUserFromTelebot(u *telebot.User) User {
	if u == nil {
		return User{}
	}

	return User{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
	}
}

// Как обращаться к участнику
func DisplayName(u *User) string {
	if u == nil {
		return "Аноним"
	}

	// FirstName приоритет
	name := strings.TrimSpace(u.FirstName)
	if name != "" {
		return name
	}

	if u.Username != "" {
		return "@" + u.Username
	}

	return "Аноним"
}
