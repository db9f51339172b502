package game

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"PhotoQuizBot/internal/catalog"
)

var (
	ErrGameActive = fmt.Errorf("game already active")
	ErrNoSession  = fmt.Errorf("no active session")
	ErrNoPhotos   = fmt.Errorf("no photos in category")

	errStaleTimer = fmt.Errorf("stale round timer")
)

// PhotoSource - то, что умеет каталог фотографий.
type PhotoSource interface {
	SessionPool(category string, max int) ([]catalog.Item, error)
}

// Round - данные для показа одного раунда.
type Round struct {
	Number    int
	MaxRounds int
	Category  string
	Item      catalog.Item
	Last      bool // на последнем раунде кнопки пропуска нет
}

// SessionResult - итог закончившейся игры.
type SessionResult struct {
	Category string
	Scores   []PlayerScore
	Rounds   int // закрытых раундов

	recordID int64
}

// GuessOutcome - что произошло после правильного ответа или пропуска.
type GuessOutcome struct {
	Correct      bool
	Answer       string
	ScorerName   string
	SessionTotal int

	Next     *Round         // следующий раунд, nil если игра кончилась
	Finished *SessionResult // итог, если игра кончилась
}

// GameManager - реестр игровых сессий, по одной на чат. Каждая сессия живёт
// в своём chatActor, так что переходы внутри чата строго последовательны.
type GameManager struct {
	actors map[int64]*chatActor
	mu     sync.Mutex

	ctx          context.Context
	photos       PhotoSource
	sink         ScoreSink
	stats        StatsRecorder
	maxRounds    int
	roundTimeout time.Duration

	// вызывается при сгорании таймера раунда; ставится на этапе роутинга
	onTimeout func(chatID int64, result SessionResult)
}

func NewGameManager(ctx context.Context, photos PhotoSource, sink ScoreSink, stats StatsRecorder, maxRounds int, roundTimeout time.Duration) *GameManager {
	if sink == nil {
		sink = NoopScoreSink{}
	}
	if stats == nil {
		stats = NoopStatsRecorder{}
	}

	return &GameManager{
		actors:       make(map[int64]*chatActor),
		ctx:          ctx,
		photos:       photos,
		sink:         sink,
		stats:        stats,
		maxRounds:    maxRounds,
		roundTimeout: roundTimeout,
	}
}

// SetTimeoutHandler регистрирует колбэк на истечение раунда.
func (gm *GameManager) SetTimeoutHandler(fn func(chatID int64, result SessionResult)) {
	gm.onTimeout = fn
}

// Механизм очереди во избежание data race
func (gm *GameManager) Do(chatID int64, fn func(a *chatActor) error) error {
	gm.mu.Lock()
	a, ok := gm.actors[chatID]
	if !ok {
		a = newChatActor(chatID)
		gm.actors[chatID] = a
	}
	gm.mu.Unlock()

	reply := make(chan error, 1)
	a.inbox <- actorMsg{fn: fn, reply: reply}
	return <-reply
}

// Чтобы не тянуть sessions в handlers
func (gm *GameManager) DoWithSession(chatID int64, fn func(s *GameSession) error) error {
	return gm.Do(chatID, func(a *chatActor) error {
		if a.session == nil {
			return ErrNoSession
		}
		return fn(a.session)
	})
}

// StartGame - заявка на игру: создаёт сессию и переводит её в ожидание
// категории. Если в чате уже играют - ErrGameActive.
func (gm *GameManager) StartGame(chatID int64) error {
	return gm.Do(chatID, func(a *chatActor) error {
		if a.session != nil {
			return ErrGameActive
		}

		session := NewGameSession(chatID, gm.maxRounds)
		if !SafeTrigger(session.FSM, EventStart, "start game") {
			return ErrGameActive
		}

		a.session = session
		slog.Info("game: session created", "chat_id", chatID)
		return nil
	})
}

// CancelIfAwaiting сбрасывает сессию, если категорию так и не выбрали
// (истёк TTL сообщения с кнопками). true - сессия была сброшена.
func (gm *GameManager) CancelIfAwaiting(chatID int64) bool {
	cancelled := false
	_ = gm.Do(chatID, func(a *chatActor) error {
		if a.session == nil || a.session.FSM.Current() != AwaitingCategory {
			return nil
		}
		SafeTrigger(a.session.FSM, EventReset, "prompt expired")
		a.session = nil
		cancelled = true
		return nil
	})
	if cancelled {
		slog.Info("game: category prompt expired, session reset", "chat_id", chatID)
	}
	return cancelled
}

// ChooseCategory запускает цикл раундов по выбранной категории.
// Пустая категория - игра сразу кончается с ErrNoPhotos и без очков.
func (gm *GameManager) ChooseCategory(chatID int64, category string) (*Round, error) {
	pool, err := gm.photos.SessionPool(category, gm.maxRounds)
	if err != nil {
		// категорию не прочитать - сессия не стартует
		_ = gm.Do(chatID, func(a *chatActor) error {
			if a.session != nil && a.session.FSM.Current() == AwaitingCategory {
				SafeTrigger(a.session.FSM, EventReset, "category unavailable")
				a.session = nil
			}
			return nil
		})
		return nil, err
	}

	recordID := gm.stats.CreateGameRecord(gm.ctx, chatID, category)

	var (
		round  *Round
		result *SessionResult
	)

	err = gm.Do(chatID, func(a *chatActor) error {
		s := a.session
		if s == nil || s.FSM.Current() != AwaitingCategory {
			return ErrNoSession
		}
		if !SafeTrigger(s.FSM, EventChooseCategory, "choose category") {
			return ErrNoSession
		}

		s.Category = category
		s.Remaining = pool
		s.RecordID = recordID
		if len(pool) < s.MaxRounds {
			// счётчик "раунд N из M" показывает реальную длину игры
			s.MaxRounds = len(pool)
		}

		if !s.DrawNext() {
			// пул пуст: игра кончается, не начавшись
			SafeTrigger(s.FSM, EventFinish, "empty pool")
			r := gm.finishLocked(a)
			result = &r
			return ErrNoPhotos
		}

		gm.armRoundTimer(a)
		round = gm.roundView(s)
		return nil
	})

	if result != nil {
		gm.completeGame(chatID, *result)
	}
	if err != nil {
		return nil, err
	}

	slog.Info("game: started", "chat_id", chatID, "category", category, "pool", len(pool))
	return round, nil
}

// SubmitGuess прогоняет сообщение из чата через текущий раунд.
// Нет активного раунда - ErrNoSession, хендлер молчит.
func (gm *GameManager) SubmitGuess(chatID int64, user User, text string) (*GuessOutcome, error) {
	var outcome GuessOutcome

	err := gm.Do(chatID, func(a *chatActor) error {
		s := a.session
		if s == nil || s.FSM.Current() != RoundInProgressState {
			return ErrNoSession
		}

		if !s.MatchAnswer(text) {
			return nil
		}

		outcome.Correct = true
		outcome.Answer = s.Current.Answer
		outcome.ScorerName = DisplayName(&user)

		s.AddPoint(user)
		outcome.SessionTotal = s.TotalPoints()

		gm.advanceLocked(a, &outcome)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if outcome.Correct {
		gm.stats.RecordCorrectGuess(gm.ctx, user)
	}
	if outcome.Finished != nil {
		gm.completeGame(chatID, *outcome.Finished)
	}

	return &outcome, nil
}

// Skip закрывает раунд без начисления очков.
func (gm *GameManager) Skip(chatID int64) (*GuessOutcome, error) {
	var outcome GuessOutcome

	err := gm.Do(chatID, func(a *chatActor) error {
		s := a.session
		if s == nil || s.FSM.Current() != RoundInProgressState {
			return ErrNoSession
		}

		outcome.Answer = s.Current.Answer
		gm.advanceLocked(a, &outcome)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if outcome.Finished != nil {
		gm.completeGame(chatID, *outcome.Finished)
	}

	return &outcome, nil
}

// Stop - явное завершение игры посреди раунда.
func (gm *GameManager) Stop(chatID int64) (*SessionResult, error) {
	var result SessionResult

	err := gm.Do(chatID, func(a *chatActor) error {
		s := a.session
		if s == nil || s.FSM.Current() != RoundInProgressState {
			return ErrNoSession
		}
		if !SafeTrigger(s.FSM, EventStop, "stop game") {
			return ErrNoSession
		}

		result = gm.finishLocked(a)
		return nil
	})
	if err != nil {
		return nil, err
	}

	gm.completeGame(chatID, result)
	return &result, nil
}

// advanceLocked закрывает текущий раунд: либо следующий раунд с новым
// таймером, либо конец игры. Вызывается только изнутри актора.
func (gm *GameManager) advanceLocked(a *chatActor, outcome *GuessOutcome) {
	s := a.session
	s.Completed++

	if len(s.Remaining) == 0 {
		SafeTrigger(s.FSM, EventFinish, "pool exhausted")
		r := gm.finishLocked(a)
		outcome.Finished = &r
		return
	}

	SafeTrigger(s.FSM, EventAdvance, "next round")
	s.DrawNext()
	gm.armRoundTimer(a)
	outcome.Next = gm.roundView(s)
}

// finishLocked снимает таймер, собирает итог и убирает сессию.
// Слияние очков в рейтинг делает вызывающий уже вне актора.
func (gm *GameManager) finishLocked(a *chatActor) SessionResult {
	a.stopTimer()

	s := a.session
	s.RoundToken++ // гасим всё, что успело взвестись

	result := SessionResult{
		Category: s.Category,
		Scores:   s.Scores(),
		Rounds:   s.Completed,
		recordID: s.RecordID,
	}

	a.session = nil
	slog.Info("game: finished", "chat_id", a.chatID, "rounds", result.Rounds, "players", len(result.Scores))
	return result
}

func (gm *GameManager) completeGame(chatID int64, result SessionResult) {
	gm.sink.MergeSessionScores(chatID, result.Scores)
	gm.stats.FinishGameRecord(gm.ctx, result.recordID, result.Rounds)
}

func (gm *GameManager) roundView(s *GameSession) *Round {
	return &Round{
		Number:    s.Round,
		MaxRounds: s.MaxRounds,
		Category:  s.Category,
		Item:      *s.Current,
		Last:      s.LastRound(),
	}
}

// armRoundTimer взводит таймер текущего раунда. Колбэк уносит с собой токен:
// если к моменту срабатывания раунд уже сменился, таймер просто гаснет.
func (gm *GameManager) armRoundTimer(a *chatActor) {
	a.stopTimer()

	chatID := a.chatID
	token := a.session.RoundToken
	a.timer = time.AfterFunc(gm.roundTimeout, func() {
		gm.expireRound(chatID, token)
	})
}

func (gm *GameManager) expireRound(chatID, token int64) {
	var result SessionResult

	err := gm.Do(chatID, func(a *chatActor) error {
		s := a.session
		if s == nil || s.RoundToken != token || s.FSM.Current() != RoundInProgressState {
			return errStaleTimer
		}
		if !SafeTrigger(s.FSM, EventTimeout, "round timeout") {
			return errStaleTimer
		}

		result = gm.finishLocked(a)
		return nil
	})
	if err != nil {
		return
	}

	slog.Info("game: round timed out", "chat_id", chatID)
	gm.completeGame(chatID, result)

	if gm.onTimeout != nil {
		gm.onTimeout(chatID, result)
	}
}
