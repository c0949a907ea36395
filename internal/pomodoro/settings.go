package pomodoro

// Settings are user-tunable timer durations (minutes) and auto-advance
// policy. They persist independently of run state; run state itself is
// never persisted.
type Settings struct {
	FocusTime          int  `json:"focusTime"`
	BreakTime          int  `json:"breakTime"`
	LongBreakTime      int  `json:"longBreakTime"`
	LongBreakInterval  int  `json:"longBreakInterval"`
	AutoStartBreaks    bool `json:"autoStartBreaks"`
	AutoStartPomodoros bool `json:"autoStartPomodoros"`
	PlaySound          bool `json:"playSound"`
}

func DefaultSettings() Settings {
	return Settings{
		FocusTime:          25,
		BreakTime:          5,
		LongBreakTime:      15,
		LongBreakInterval:  4,
		AutoStartBreaks:    true,
		AutoStartPomodoros: false,
		PlaySound:          true,
	}
}

// normalize clamps non-positive durations back to defaults so a bad
// persisted record can never produce a zero-length phase.
func (s *Settings) normalize() {
	def := DefaultSettings()
	if s.FocusTime <= 0 {
		s.FocusTime = def.FocusTime
	}
	if s.BreakTime <= 0 {
		s.BreakTime = def.BreakTime
	}
	if s.LongBreakTime <= 0 {
		s.LongBreakTime = def.LongBreakTime
	}
	if s.LongBreakInterval <= 0 {
		s.LongBreakInterval = def.LongBreakInterval
	}
}

func (s Settings) durationSeconds(m Mode) int {
	switch m {
	case ModeBreak:
		return s.BreakTime * 60
	case ModeLongBreak:
		return s.LongBreakTime * 60
	default:
		return s.FocusTime * 60
	}
}
