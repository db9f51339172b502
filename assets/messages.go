package messages

// Тексты сообщений бота. Собраны в одном месте, чтобы не расползались по хендлерам.
const (
	WelcomeSingleMessage = "Привет! Я бот-угадайка: показываю фотографии, а вы пишете ответ в чат. " +
		"Добавь меня в группу и напиши /game, чтобы начать."

	PlayInGroupMessage = "Играть в одиночестве - не интересно. Добавь меня в группу друзей."

	GameAlreadyActive = "Игра уже идёт! Сначала закончите текущую (/stop)."
	GameNotStarted    = "Активной игры нет. Напишите /game, чтобы начать."
	ChooseCategory    = "В какой категории начнём игру?"

	GameStartedFmt = "Игра в категории «%s» началась! Удачи!"

	RoundCaptionFmt = "Раунд %d/%d\n\nКатегория: %s\nПодсказка: первая буква «%s», в ответе %d символов.\n\nПишите ответ прямо в чат."

	CorrectGuessFmt = "🎉 Поздравляем, %s, правильный ответ! 🎁(+1)\n⭐ Очков набрано за игру: %d\n✅ Ответ: %s"

	TimeIsUpMessage = "Время вышло! Ответа не было, игра завершена."
	SkippedFmt      = "Раунд пропущен. Ответ был: %s"

	GameOverTitle     = "Игра окончена!\n\nТаблица очков:"
	NoScorersMessage  = "В этой игре никто не заработал очков!"
	NoPhotosMessage   = "Игра окончена, ни одного очка не разыграно: в категории нет фотографий."
	CategoryBrokeFmt  = "Категория «%s» сейчас недоступна, попробуйте другую."
	RatingTitle       = "Таблица рейтинга:"
	GlobalRatingTitle = "Глобальная таблица рейтинга:"
	NoRatingYet       = "В этом чате ещё нет рейтинга. Сыграйте первую игру!"

	SkipButtonText = "Пропустить ⏭"

	OwnerOnlyMessage     = "Эта команда доступна только владельцу бота."
	ErrorMessagesForUser = "Что-то пошло не так, попробуйте ещё раз."
)
