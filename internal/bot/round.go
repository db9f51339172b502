package bot

import (
	"fmt"
	"log/slog"

	messages "PhotoQuizBot/assets"
	"PhotoQuizBot/internal/game"

	"gopkg.in/telebot.v3"
)

// OnText - каждое текстовое сообщение чата прогоняется через текущий раунд.
func (h *Handlers) OnText(c telebot.Context) error {
	chatID := c.Chat().ID
	user := game.GetUserFromTelebot(c.Sender())

	outcome, err := h.GameManager.SubmitGuess(chatID, user, c.Text())
	if err != nil {
		// нет активного раунда - это обычное сообщение, молчим
		return nil
	}
	if !outcome.Correct {
		return nil
	}

	congrats := fmt.Sprintf(messages.CorrectGuessFmt, outcome.ScorerName, outcome.SessionTotal, outcome.Answer)
	if err := c.Send(congrats); err != nil {
		slog.Warn("bot: send congrats", "chat_id", chatID, "err", err)
	}

	return h.afterRound(c, outcome)
}

// OnSkip - кнопка пропуска раунда.
func (h *Handlers) OnSkip(c telebot.Context) error {
	if c.Callback() != nil {
		_ = c.Respond()
	}

	chatID := c.Chat().ID

	outcome, err := h.GameManager.Skip(chatID)
	if err != nil {
		// игра уже кончилась, кнопка устарела
		return nil
	}

	if err := c.Send(fmt.Sprintf(messages.SkippedFmt, outcome.Answer)); err != nil {
		slog.Warn("bot: send skipped", "chat_id", chatID, "err", err)
	}

	return h.afterRound(c, outcome)
}

func (h *Handlers) afterRound(c telebot.Context, outcome *game.GuessOutcome) error {
	if outcome.Finished != nil {
		return c.Send(RenderSessionResult(*outcome.Finished))
	}
	return h.sendRound(c.Chat(), outcome.Next)
}
