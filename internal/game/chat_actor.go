package game

import "time"

// chatActor сериализует все переходы одной игры: в каждый момент времени
// над сессией чата выполняется не больше одной операции.
type chatActor struct {
	chatID  int64
	inbox   chan actorMsg
	session *GameSession
	timer   *time.Timer // единственный взведённый таймер раунда
}

type actorMsg struct {
	fn    func(a *chatActor) error
	reply chan error
}

func newChatActor(chatID int64) *chatActor {
	a := &chatActor{
		chatID: chatID,
		inbox:  make(chan actorMsg, 64),
	}
	go func() {
		for m := range a.inbox {
			m.reply <- m.fn(a)
		}
	}()
	return a
}

func (a *chatActor) stopTimer() {
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}
