package game

import (
	"fmt"
	"log/slog"
)

type State string
type Event string

const (
	// Состояния
	IdleState            State = "idle"
	AwaitingCategory     State = "awaiting_category"
	RoundInProgressState State = "round_in_progress"
	FinishedState        State = "finished"

	// События
	EventStart          Event = "start"
	EventChooseCategory Event = "choose_category"
	EventAdvance        Event = "advance"
	EventFinish         Event = "finish"
	EventTimeout        Event = "timeout"
	EventStop           Event = "stop"
	EventReset          Event = "reset"
)

var ErrInvalidTransition = fmt.Errorf("invalid transition")

type FSM struct {
	current      State
	transistions map[State]map[Event]State
}

func NewFSM() *FSM {
	return &FSM{
		current: IdleState,
		transistions: map[State]map[Event]State{
			IdleState: {
				EventStart: AwaitingCategory,
			},
			AwaitingCategory: {
				EventChooseCategory: RoundInProgressState,
				EventReset:          IdleState,
			},
			RoundInProgressState: {
				EventAdvance: RoundInProgressState,
				EventFinish:  FinishedState,
				EventTimeout: FinishedState,
				EventStop:    FinishedState,
			},
			FinishedState: {
				EventReset: IdleState,
			},
		},
	}
}

func (f *FSM) Current() State {
	return f.current
}

func (f *FSM) Trigger(event Event) error {
	next, ok := f.transistions[f.current][event]
	if !ok {
		return fmt.Errorf("%w: %s → (%s)", ErrInvalidTransition, f.current, event)
	}
	f.current = next
	return nil
}

// Обертка над тригером.
func SafeTrigger(fsm *FSM, event Event, context string) bool {
	err := fsm.Trigger(event)
	if err != nil {
		slog.Warn("fsm: переход не выполнен", "context", context, "state", fsm.Current(), "event", event, "err", err)
		return false
	}
	return true
}

// ForceState - для тестирования
func (f *FSM) ForceState(newState State) {
	f.current = newState
}
