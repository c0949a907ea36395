package pomodoro

import "log"

// Notifier receives phase-completion events. Fire-and-forget: no return
// value, no delivery guarantee.
type Notifier interface {
	Notify(title, description string)
}

// AudioSink controls the looping ambient track. Best-effort; the engine
// logs failures and moves on.
type AudioSink interface {
	PlayLoop() error
	Stop()
}

type LogNotifier struct {
	Logger *log.Logger
}

func (n LogNotifier) Notify(title, description string) {
	logger := n.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf("[pomodoro] %s %s", title, description)
}

// NopAudio is the default sink when no audio backend is wired.
type NopAudio struct{}

func (NopAudio) PlayLoop() error { return nil }
func (NopAudio) Stop()           {}
