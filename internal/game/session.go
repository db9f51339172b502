package game

import (
	"math/rand"
	"strings"

	"PhotoQuizBot/internal/catalog"
)

// GameSession - Хранит данные о конкретной партии игры
type GameSession struct {
	ChatID   int64
	Category string
	FSM      *FSM

	Remaining []catalog.Item // ещё не показанные фотографии
	Current   *catalog.Item  // фотография текущего раунда
	Round     int            // номер текущего раунда, с единицы
	MaxRounds int
	Completed int // сколько раундов закрыто (угадано или пропущено)

	// RoundToken растёт на каждом переходе, покидающем раунд. Колбэк таймера
	// несёт токен раунда, под который был взведён: не совпал - таймер устарел.
	RoundToken int64

	RecordID int64 // id записи игры в базе статистики, 0 если статистики нет

	scores []PlayerScore
	index  map[string]int // имя участника -> позиция в scores
}

type PlayerScore struct {
	UserID   int64
	UserName string
	Value    int
}

func NewGameSession(chatID int64, maxRounds int) *GameSession {
	return &GameSession{
		ChatID:    chatID,
		FSM:       NewFSM(),
		MaxRounds: maxRounds,
		index:     make(map[string]int),
	}
}

// DrawNext случайно выбирает следующую фотографию без возвращения.
// false - пул пуст, раунда не будет.
func (s *GameSession) DrawNext() bool {
	if len(s.Remaining) == 0 {
		s.Current = nil
		return false
	}

	i := rand.Intn(len(s.Remaining))
	item := s.Remaining[i]
	s.Remaining = append(s.Remaining[:i], s.Remaining[i+1:]...)

	s.Current = &item
	s.Round++
	s.RoundToken++
	return true
}

// MatchAnswer - точное сравнение: обрезаем пробелы, сворачиваем регистр.
// Никакого fuzzy-матчинга, как и в исходной игре.
func (s *GameSession) MatchAnswer(text string) bool {
	if s.Current == nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(text), s.Current.Answer)
}

// AddPoint начисляет очко. Участники считаются по отображаемому имени -
// так же ведётся и персистентный рейтинг.
func (s *GameSession) AddPoint(u User) {
	name := DisplayName(&u)

	if i, ok := s.index[name]; ok {
		s.scores[i].Value++
		return
	}

	s.index[name] = len(s.scores)
	s.scores = append(s.scores, PlayerScore{
		UserID:   u.ID,
		UserName: name,
		Value:    1,
	})
}

// Scores - очки сессии в порядке первого попадания в таблицу.
func (s *GameSession) Scores() []PlayerScore {
	out := make([]PlayerScore, len(s.scores))
	copy(out, s.scores)
	return out
}

// TotalPoints - сумма всех очков партии (показывается в поздравлении).
func (s *GameSession) TotalPoints() int {
	total := 0
	for _, ps := range s.scores {
		total += ps.Value
	}
	return total
}

// LastRound - раунд последний: либо пул исчерпан, либо достигнут потолок.
func (s *GameSession) LastRound() bool {
	return len(s.Remaining) == 0 || s.Round >= s.MaxRounds
}
