package game

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"PhotoQuizBot/internal/catalog"
)

// --- fakes for integration ---

type itSink struct {
	mu     sync.Mutex
	calls  int
	merged map[int64][]PlayerScore
}

func (s *itSink) MergeSessionScores(chatID int64, scores []PlayerScore) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.merged == nil {
		s.merged = make(map[int64][]PlayerScore)
	}
	s.calls++
	if len(scores) > 0 {
		s.merged[chatID] = append(s.merged[chatID], scores...)
	}
}

func (s *itSink) scoresFor(chatID int64) []PlayerScore {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.merged[chatID]
}

type itStats struct {
	recordID int64

	createCalls  int64
	finishCalls  int64
	finishedID   int64
	lastRounds   int64
	guessesCalls int64
}

func (s *itStats) CreateGameRecord(ctx context.Context, chatID int64, category string) int64 {
	atomic.AddInt64(&s.createCalls, 1)
	return s.recordID
}
func (s *itStats) FinishGameRecord(ctx context.Context, recordID int64, roundsPlayed int) {
	atomic.AddInt64(&s.finishCalls, 1)
	atomic.StoreInt64(&s.finishedID, recordID)
	atomic.StoreInt64(&s.lastRounds, int64(roundsPlayed))
}
func (s *itStats) RecordCorrectGuess(ctx context.Context, user User) {
	atomic.AddInt64(&s.guessesCalls, 1)
}

type itPhotos struct {
	items []catalog.Item
	err   error
}

func (p *itPhotos) SessionPool(category string, max int) ([]catalog.Item, error) {
	if p.err != nil {
		return nil, p.err
	}
	out := make([]catalog.Item, len(p.items))
	copy(out, p.items)
	if len(out) > max {
		out = out[:max]
	}
	return out, nil
}

func newItManager(photos *itPhotos, sink *itSink, stats *itStats, timeout time.Duration) *GameManager {
	return NewGameManager(context.Background(), photos, sink, stats, 30, timeout)
}

func TestIntegration_OnePlayerAnswersEverything(t *testing.T) {
	chatID := int64(1001)

	sink := &itSink{}
	stats := &itStats{recordID: 777}
	photos := &itPhotos{items: testPool("bmw", "fiat", "mercedes")}

	gm := newItManager(photos, sink, stats, time.Minute)
	ana := User{ID: 1, FirstName: "Ana"}

	if err := gm.StartGame(chatID); err != nil {
		t.Fatalf("StartGame error: %v", err)
	}

	// повторный /game должен отбиваться
	if err := gm.StartGame(chatID); !errors.Is(err, ErrGameActive) {
		t.Fatalf("second StartGame: expected ErrGameActive, got %v", err)
	}

	round, err := gm.ChooseCategory(chatID, "Logo")
	if err != nil {
		t.Fatalf("ChooseCategory error: %v", err)
	}
	if round.Number != 1 {
		t.Fatalf("first round number = %d, want 1", round.Number)
	}

	// Ана отвечает на все три раунда подряд
	for i := 0; i < 3; i++ {
		outcome, err := gm.SubmitGuess(chatID, ana, round.Item.Answer)
		if err != nil {
			t.Fatalf("round %d: SubmitGuess error: %v", i+1, err)
		}
		if !outcome.Correct {
			t.Fatalf("round %d: answer %q not accepted", i+1, round.Item.Answer)
		}
		if outcome.SessionTotal != i+1 {
			t.Fatalf("round %d: SessionTotal = %d, want %d", i+1, outcome.SessionTotal, i+1)
		}

		if i < 2 {
			if outcome.Next == nil {
				t.Fatalf("round %d: expected next round", i+1)
			}
			round = outcome.Next
		} else {
			if outcome.Finished == nil {
				t.Fatal("last round: expected finished result")
			}
			got := outcome.Finished.Scores
			if len(got) != 1 || got[0].UserName != "Ana" || got[0].Value != 3 {
				t.Fatalf("final scores = %v, want Ana:3", got)
			}
		}
	}

	// очки должны уйти в рейтинг
	merged := sink.scoresFor(chatID)
	if len(merged) != 1 || merged[0].UserName != "Ana" || merged[0].Value != 3 {
		t.Fatalf("merged scores = %v, want Ana:3", merged)
	}

	// сессия убрана
	if err := gm.DoWithSession(chatID, func(s *GameSession) error { return nil }); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession after finish, got %v", err)
	}

	if atomic.LoadInt64(&stats.createCalls) != 1 {
		t.Errorf("CreateGameRecord calls = %d, want 1", stats.createCalls)
	}
	if atomic.LoadInt64(&stats.finishCalls) != 1 {
		t.Errorf("FinishGameRecord calls = %d, want 1", stats.finishCalls)
	}
	if atomic.LoadInt64(&stats.finishedID) != 777 {
		t.Errorf("finished record id = %d, want 777", stats.finishedID)
	}
	if atomic.LoadInt64(&stats.lastRounds) != 3 {
		t.Errorf("rounds played = %d, want 3", stats.lastRounds)
	}
	if atomic.LoadInt64(&stats.guessesCalls) != 3 {
		t.Errorf("RecordCorrectGuess calls = %d, want 3", stats.guessesCalls)
	}
}

func TestIntegration_TwoPlayersTie_InsertionOrder(t *testing.T) {
	chatID := int64(1002)

	sink := &itSink{}
	gm := newItManager(&itPhotos{items: testPool("a", "b")}, sink, &itStats{}, time.Minute)

	ana := User{ID: 1, FirstName: "Ana"}
	boris := User{ID: 2, FirstName: "Boris"}

	if err := gm.StartGame(chatID); err != nil {
		t.Fatalf("StartGame error: %v", err)
	}
	round, err := gm.ChooseCategory(chatID, "Logo")
	if err != nil {
		t.Fatalf("ChooseCategory error: %v", err)
	}

	outcome, err := gm.SubmitGuess(chatID, ana, round.Item.Answer)
	if err != nil || !outcome.Correct {
		t.Fatalf("ana guess: outcome=%+v err=%v", outcome, err)
	}

	outcome, err = gm.SubmitGuess(chatID, boris, outcome.Next.Item.Answer)
	if err != nil || !outcome.Correct {
		t.Fatalf("boris guess: outcome=%+v err=%v", outcome, err)
	}
	if outcome.Finished == nil {
		t.Fatal("expected game to finish after two rounds")
	}

	got := outcome.Finished.Scores
	if len(got) != 2 {
		t.Fatalf("len(scores) = %d, want 2", len(got))
	}
	// при равных очках порядок - кто забил первым
	if got[0].UserName != "Ana" || got[1].UserName != "Boris" {
		t.Fatalf("scores order = [%s, %s], want [Ana, Boris]", got[0].UserName, got[1].UserName)
	}
}

func TestIntegration_EmptyPool_NoPointsAndStoreUntouched(t *testing.T) {
	chatID := int64(1003)

	sink := &itSink{}
	gm := newItManager(&itPhotos{}, sink, &itStats{}, time.Minute)

	if err := gm.StartGame(chatID); err != nil {
		t.Fatalf("StartGame error: %v", err)
	}

	_, err := gm.ChooseCategory(chatID, "Logo")
	if !errors.Is(err, ErrNoPhotos) {
		t.Fatalf("expected ErrNoPhotos, got %v", err)
	}

	if merged := sink.scoresFor(chatID); len(merged) != 0 {
		t.Fatalf("rating store changed on empty game: %v", merged)
	}

	// сессии не осталось, можно начинать заново
	if err := gm.StartGame(chatID); err != nil {
		t.Fatalf("StartGame after empty game: %v", err)
	}
}

func TestIntegration_CategoryUnavailable_SessionNotStarted(t *testing.T) {
	chatID := int64(1004)

	photos := &itPhotos{err: catalog.ErrCategoryUnavailable}
	gm := newItManager(photos, &itSink{}, &itStats{}, time.Minute)

	if err := gm.StartGame(chatID); err != nil {
		t.Fatalf("StartGame error: %v", err)
	}

	_, err := gm.ChooseCategory(chatID, "Logo")
	if !errors.Is(err, catalog.ErrCategoryUnavailable) {
		t.Fatalf("expected ErrCategoryUnavailable, got %v", err)
	}

	if err := gm.StartGame(chatID); err != nil {
		t.Fatalf("StartGame after failed category: %v", err)
	}
}

func TestIntegration_StopMidRound_MergesPartialScores(t *testing.T) {
	chatID := int64(1005)

	sink := &itSink{}
	gm := newItManager(&itPhotos{items: testPool("a", "b", "c")}, sink, &itStats{}, time.Minute)
	ana := User{ID: 1, FirstName: "Ana"}

	if err := gm.StartGame(chatID); err != nil {
		t.Fatalf("StartGame error: %v", err)
	}
	round, err := gm.ChooseCategory(chatID, "Logo")
	if err != nil {
		t.Fatalf("ChooseCategory error: %v", err)
	}

	if _, err := gm.SubmitGuess(chatID, ana, round.Item.Answer); err != nil {
		t.Fatalf("SubmitGuess error: %v", err)
	}

	result, err := gm.Stop(chatID)
	if err != nil {
		t.Fatalf("Stop error: %v", err)
	}
	if len(result.Scores) != 1 || result.Scores[0].Value != 1 {
		t.Fatalf("partial scores = %v, want Ana:1", result.Scores)
	}

	merged := sink.scoresFor(chatID)
	if len(merged) != 1 || merged[0].Value != 1 {
		t.Fatalf("merged = %v, want Ana:1", merged)
	}

	// после /stop дальнейшие ответы не принимаются
	if _, err := gm.SubmitGuess(chatID, ana, "b"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession after stop, got %v", err)
	}
}

func TestIntegration_SkipAdvancesWithoutScoring(t *testing.T) {
	chatID := int64(1006)

	gm := newItManager(&itPhotos{items: testPool("a", "b")}, &itSink{}, &itStats{}, time.Minute)

	if err := gm.StartGame(chatID); err != nil {
		t.Fatalf("StartGame error: %v", err)
	}
	round, err := gm.ChooseCategory(chatID, "Logo")
	if err != nil {
		t.Fatalf("ChooseCategory error: %v", err)
	}

	outcome, err := gm.Skip(chatID)
	if err != nil {
		t.Fatalf("Skip error: %v", err)
	}
	if outcome.Answer != round.Item.Answer {
		t.Errorf("skip revealed %q, want %q", outcome.Answer, round.Item.Answer)
	}
	if outcome.Next == nil {
		t.Fatal("expected next round after skip")
	}
	if outcome.Next.Number != 2 {
		t.Errorf("round after skip = %d, want 2", outcome.Next.Number)
	}

	// последний раунд: пропуск завершает игру без очков
	outcome, err = gm.Skip(chatID)
	if err != nil {
		t.Fatalf("second Skip error: %v", err)
	}
	if outcome.Finished == nil {
		t.Fatal("expected finish after skipping last round")
	}
	if len(outcome.Finished.Scores) != 0 {
		t.Errorf("scores after all skips = %v, want empty", outcome.Finished.Scores)
	}
}

func TestIntegration_Timeout_EndsGameAndRejectsLateGuess(t *testing.T) {
	chatID := int64(1007)

	sink := &itSink{}
	gm := newItManager(&itPhotos{items: testPool("a", "b")}, sink, &itStats{}, 30*time.Millisecond)
	ana := User{ID: 1, FirstName: "Ana"}

	timedOut := make(chan SessionResult, 1)
	gm.SetTimeoutHandler(func(id int64, result SessionResult) {
		if id == chatID {
			timedOut <- result
		}
	})

	if err := gm.StartGame(chatID); err != nil {
		t.Fatalf("StartGame error: %v", err)
	}
	round, err := gm.ChooseCategory(chatID, "Logo")
	if err != nil {
		t.Fatalf("ChooseCategory error: %v", err)
	}

	select {
	case result := <-timedOut:
		if len(result.Scores) != 0 {
			t.Errorf("scores on timeout = %v, want empty", result.Scores)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout handler was not called")
	}

	// опоздавший ответ больше не засчитывается
	if _, err := gm.SubmitGuess(chatID, ana, round.Item.Answer); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession after timeout, got %v", err)
	}
}

func TestIntegration_AnsweredRound_CancelsOldTimer(t *testing.T) {
	chatID := int64(1008)

	gm := newItManager(&itPhotos{items: testPool("a", "b")}, &itSink{}, &itStats{}, 50*time.Millisecond)
	ana := User{ID: 1, FirstName: "Ana"}

	fired := make(chan struct{}, 1)
	gm.SetTimeoutHandler(func(id int64, result SessionResult) {
		fired <- struct{}{}
	})

	if err := gm.StartGame(chatID); err != nil {
		t.Fatalf("StartGame error: %v", err)
	}
	round, err := gm.ChooseCategory(chatID, "Logo")
	if err != nil {
		t.Fatalf("ChooseCategory error: %v", err)
	}

	// отвечаем до истечения таймера; старый таймер не должен убить новый раунд
	outcome, err := gm.SubmitGuess(chatID, ana, round.Item.Answer)
	if err != nil || outcome.Next == nil {
		t.Fatalf("SubmitGuess: outcome=%+v err=%v", outcome, err)
	}

	// таймер нового раунда в итоге сработает - это норм; важно, что раунд 2
	// ещё жив сразу после ответа
	err = gm.DoWithSession(chatID, func(s *GameSession) error {
		if s.Round != 2 {
			t.Errorf("Round = %d, want 2", s.Round)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("session gone right after correct guess: %v", err)
	}
}
