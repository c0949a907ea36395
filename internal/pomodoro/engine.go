package pomodoro

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"planner/internal/storage"
)

type Mode string

const (
	ModeFocus     Mode = "focus"
	ModeBreak     Mode = "break"
	ModeLongBreak Mode = "longBreak"
)

var ErrLoopActive = errors.New("tick loop already running")

// Engine is the countdown state machine cycling Focus -> Break/LongBreak.
// All transitions are synchronous; the only autonomous path is the
// one-second tick delivered by Run.
type Engine struct {
	mu             sync.Mutex
	mode           Mode
	secondsLeft    int
	running        bool
	completedFocus int
	musicEnabled   bool
	audioPlaying   bool
	loopActive     bool
	settings       Settings

	store    *storage.Store
	notifier Notifier
	audio    AudioSink
	logger   *log.Logger
}

func NewEngine(store *storage.Store, notifier Notifier, audio AudioSink, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	if notifier == nil {
		notifier = LogNotifier{Logger: logger}
	}
	if audio == nil {
		audio = NopAudio{}
	}

	settings := DefaultSettings()
	if store != nil {
		var loaded Settings
		if store.Load(storage.KeySettings, &loaded) {
			loaded.normalize()
			settings = loaded
		}
	}

	return &Engine{
		mode:        ModeFocus,
		secondsLeft: settings.durationSeconds(ModeFocus),
		settings:    settings,
		store:       store,
		notifier:    notifier,
		audio:       audio,
		logger:      logger,
	}
}

// Start begins (or resumes) the countdown. No-op while already running.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return
	}
	e.running = true
	e.syncAudioLocked()
}

func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.running = false
	e.syncAudioLocked()
}

// Reset stops the countdown and restores the current mode's full duration.
// Mode and session count are untouched.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.running = false
	e.secondsLeft = e.settings.durationSeconds(e.mode)
	e.syncAudioLocked()
}

// Tick advances the countdown by one second. It does nothing while paused.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running || e.secondsLeft <= 0 {
		return
	}
	e.secondsLeft--
	if e.secondsLeft == 0 {
		e.completeLocked()
	}
	e.syncAudioLocked()
}

func (e *Engine) completeLocked() {
	if e.mode == ModeFocus {
		e.completedFocus++
		longBreakDue := e.completedFocus%e.settings.LongBreakInterval == 0

		next := ModeBreak
		desc := fmt.Sprintf("Time for a short break (%d minutes)", e.settings.BreakTime)
		if longBreakDue {
			next = ModeLongBreak
			desc = fmt.Sprintf("Time for a longer break (%d minutes)", e.settings.LongBreakTime)
		}
		e.mode = next
		e.secondsLeft = e.settings.durationSeconds(next)
		e.running = e.settings.AutoStartBreaks
		e.notifier.Notify("Focus session completed!", desc)
		return
	}

	e.mode = ModeFocus
	e.secondsLeft = e.settings.durationSeconds(ModeFocus)
	e.running = e.settings.AutoStartPomodoros
	e.notifier.Notify("Break completed!",
		fmt.Sprintf("Ready for another %d minute focus session.", e.settings.FocusTime))
}

// SetMusic toggles the ambient track request. The track actually plays only
// while a focus phase is counting down.
func (e *Engine) SetMusic(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.musicEnabled = on
	e.syncAudioLocked()
}

// syncAudioLocked reconciles the sink with the desired state: music on,
// focus mode, and running. Pausing the timer pauses the track.
func (e *Engine) syncAudioLocked() {
	want := e.musicEnabled && e.mode == ModeFocus && e.running
	if want == e.audioPlaying {
		return
	}
	if want {
		if err := e.audio.PlayLoop(); err != nil {
			e.logger.Printf("[pomodoro] audio play: %v", err)
			return
		}
	} else {
		e.audio.Stop()
	}
	e.audioPlaying = want
}

// UpdateSettings replaces the settings and persists them. A countdown in
// progress keeps its remaining seconds; new durations apply from the next
// transition or reset.
func (e *Engine) UpdateSettings(s Settings) Settings {
	s.normalize()
	e.mu.Lock()
	e.settings = s
	e.mu.Unlock()
	if e.store != nil {
		e.store.Save(storage.KeySettings, s)
	}
	return s
}

func (e *Engine) Settings() Settings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings
}

// State is a read snapshot for the UI.
type State struct {
	Mode                   Mode     `json:"mode"`
	SecondsRemaining       int      `json:"secondsRemaining"`
	Display                string   `json:"display"`
	Running                bool     `json:"running"`
	CompletedFocusSessions int      `json:"completedFocusSessions"`
	MusicEnabled           bool     `json:"musicEnabled"`
	Settings               Settings `json:"settings"`
}

func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return State{
		Mode:                   e.mode,
		SecondsRemaining:       e.secondsLeft,
		Display:                FormatTime(e.secondsLeft),
		Running:                e.running,
		CompletedFocusSessions: e.completedFocus,
		MusicEnabled:           e.musicEnabled,
		Settings:               e.settings,
	}
}

// Run drives the engine with a one-second ticker until ctx is cancelled.
// At most one loop may run per engine; a second call fails fast.
func (e *Engine) Run(ctx context.Context) error {
	e.mu.Lock()
	if e.loopActive {
		e.mu.Unlock()
		return ErrLoopActive
	}
	e.loopActive = true
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.loopActive = false
		e.mu.Unlock()
	}()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			e.Tick()
		}
	}
}

// FormatTime renders seconds as zero-padded MM:SS. Minutes are unbounded;
// there is no hour rollover.
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
