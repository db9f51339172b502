package game

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func newTestGameManager() *GameManager {
	photos := &itPhotos{items: testPool("a", "b", "c")}
	return NewGameManager(context.Background(), photos, nil, nil, 30, time.Minute)
}

func TestStartGame_CreatesAwaitingSession(t *testing.T) {
	gm := newTestGameManager()

	if err := gm.StartGame(chat); err != nil {
		t.Fatalf("StartGame error: %v", err)
	}

	err := gm.DoWithSession(chat, func(s *GameSession) error {
		if got := s.FSM.Current(); got != AwaitingCategory {
			t.Errorf("state = %q, want %q", got, AwaitingCategory)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("session missing after StartGame: %v", err)
	}
}

func TestStartGame_RejectsSecond(t *testing.T) {
	gm := newTestGameManager()

	if err := gm.StartGame(chat); err != nil {
		t.Fatalf("StartGame error: %v", err)
	}
	if err := gm.StartGame(chat); !errors.Is(err, ErrGameActive) {
		t.Fatalf("expected ErrGameActive, got %v", err)
	}
}

func TestCancelIfAwaiting(t *testing.T) {
	gm := newTestGameManager()

	if got := gm.CancelIfAwaiting(chat); got {
		t.Error("CancelIfAwaiting = true without session")
	}

	if err := gm.StartGame(chat); err != nil {
		t.Fatalf("StartGame error: %v", err)
	}
	if got := gm.CancelIfAwaiting(chat); !got {
		t.Error("CancelIfAwaiting = false for awaiting session")
	}

	// сессия сброшена, можно начинать заново
	if err := gm.StartGame(chat); err != nil {
		t.Fatalf("StartGame after cancel: %v", err)
	}
}

func TestCancelIfAwaiting_NotDuringRound(t *testing.T) {
	gm := newTestGameManager()

	if err := gm.StartGame(chat); err != nil {
		t.Fatalf("StartGame error: %v", err)
	}
	if _, err := gm.ChooseCategory(chat, "Logo"); err != nil {
		t.Fatalf("ChooseCategory error: %v", err)
	}

	if got := gm.CancelIfAwaiting(chat); got {
		t.Error("CancelIfAwaiting = true during a running round")
	}

	err := gm.DoWithSession(chat, func(s *GameSession) error { return nil })
	if err != nil {
		t.Fatalf("session disappeared: %v", err)
	}
}

func TestStop_NoSession(t *testing.T) {
	gm := newTestGameManager()

	if _, err := gm.Stop(chat); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestSubmitGuess_NoSession(t *testing.T) {
	gm := newTestGameManager()

	_, err := gm.SubmitGuess(chat, User{ID: 1, FirstName: "Ana"}, "a")
	if !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestSubmitGuess_WrongAnswerKeepsRound(t *testing.T) {
	gm := newTestGameManager()

	if err := gm.StartGame(chat); err != nil {
		t.Fatalf("StartGame error: %v", err)
	}
	if _, err := gm.ChooseCategory(chat, "Logo"); err != nil {
		t.Fatalf("ChooseCategory error: %v", err)
	}

	outcome, err := gm.SubmitGuess(chat, User{ID: 1, FirstName: "Ana"}, "совсем не то")
	if err != nil {
		t.Fatalf("SubmitGuess error: %v", err)
	}
	if outcome.Correct {
		t.Error("wrong answer accepted")
	}

	err = gm.DoWithSession(chat, func(s *GameSession) error {
		if s.Round != 1 {
			t.Errorf("Round = %d after wrong answer, want 1", s.Round)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("session gone after wrong answer: %v", err)
	}
}

func TestConcurrentChats(t *testing.T) {
	gm := newTestGameManager()

	const N = 100
	var wg sync.WaitGroup
	wg.Add(N)

	for i := 0; i < N; i++ {
		go func(id int64) {
			defer wg.Done()
			if err := gm.StartGame(id); err != nil {
				t.Errorf("StartGame(%d) error: %v", id, err)
				return
			}
			if _, err := gm.ChooseCategory(id, "Logo"); err != nil {
				t.Errorf("ChooseCategory(%d) error: %v", id, err)
			}
		}(int64(i + 1000))
	}

	wg.Wait()
}
