package bot

import (
	"fmt"
	"strings"
	"unicode/utf8"

	messages "PhotoQuizBot/assets"
	"PhotoQuizBot/internal/game"
	"PhotoQuizBot/internal/rating"
)

// MedalEmoji - медаль по позиции в таблице. Равные очки не выравниваются:
// медаль определяет строка, а не счёт.
func MedalEmoji(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return "🏅"
	}
}

// RenderRoundCaption - подпись к фотографии раунда: счётчик, категория
// и подсказка (первый символ имени файла + длина ответа).
func RenderRoundCaption(r *game.Round) string {
	firstRune, _ := utf8.DecodeRuneInString(r.Item.ID)
	hint := string(firstRune)
	length := utf8.RuneCountInString(r.Item.Answer)

	return fmt.Sprintf(messages.RoundCaptionFmt, r.Number, r.MaxRounds, r.Category, hint, length)
}

// RenderSessionResult - финальная таблица игры.
func RenderSessionResult(result game.SessionResult) string {
	var b strings.Builder
	b.WriteString(messages.GameOverTitle)
	b.WriteString("\n")

	if len(result.Scores) == 0 {
		b.WriteString(messages.NoScorersMessage)
		return b.String()
	}

	for i, ps := range result.Scores {
		b.WriteString(fmt.Sprintf("%s %d. %s: %d\n", MedalEmoji(i+1), i+1, ps.UserName, ps.Value))
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderRating - накопленный рейтинг (чата или глобальный).
func RenderRating(title string, scores []rating.Score) string {
	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")

	for i, sc := range scores {
		b.WriteString(fmt.Sprintf("%s %d. %s: %d\n", MedalEmoji(i+1), i+1, sc.Name, sc.Value))
	}
	return strings.TrimRight(b.String(), "\n")
}
