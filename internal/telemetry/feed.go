package telemetry

import (
	"strings"
	"sync"
	"time"

	"planner/internal/clock"
)

// Feed keeps a bounded in-memory window of recent events. Losing it on
// restart is fine; it exists for the UI's activity panel and day stats,
// not for audit.
type Feed struct {
	mu     sync.RWMutex
	clock  clock.Clock
	events []Event
	nextID int
	cap    int
}

func NewFeed(clk clock.Clock, capacity int) *Feed {
	if clk == nil {
		clk = clock.RealClock{}
	}
	if capacity <= 0 {
		capacity = 200
	}
	return &Feed{clock: clk, nextID: 1, cap: capacity}
}

func (f *Feed) Record(typ EventType, title, description string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.events = append(f.events, Event{
		ID:          f.nextID,
		Type:        typ,
		Title:       title,
		Description: description,
		Timestamp:   f.clock.Now(),
	})
	f.nextID++
	if len(f.events) > f.cap {
		f.events = f.events[len(f.events)-f.cap:]
	}
}

// Recent returns up to n newest events, newest first.
func (f *Feed) Recent(n int) []Event {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if n <= 0 || n > len(f.events) {
		n = len(f.events)
	}
	out := make([]Event, 0, n)
	for i := len(f.events) - 1; i >= len(f.events)-n; i-- {
		out = append(out, f.events[i])
	}
	return out
}

// Notify lets the feed double as the timer's notification sink: completion
// toasts land in the activity panel.
func (f *Feed) Notify(title, description string) {
	typ := EventFocusCompleted
	if strings.HasPrefix(title, "Break") {
		typ = EventBreakCompleted
	}
	f.Record(typ, title, description)
}

// TodayStats counts per-type events since local midnight.
type TodayStats struct {
	Day            string            `json:"day"`
	Counts         map[EventType]int `json:"counts"`
	FocusCompleted int               `json:"focusCompleted"`
	TasksCompleted int               `json:"tasksCompleted"`
	ScheduleSynced int               `json:"scheduleSynced"`
}

func (f *Feed) Today() TodayStats {
	f.mu.RLock()
	defer f.mu.RUnlock()

	now := f.clock.Now()
	y, m, d := now.Date()
	startOfDay := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	stats := TodayStats{
		Day:    now.Format("2006-01-02"),
		Counts: map[EventType]int{},
	}
	for _, ev := range f.events {
		if ev.Timestamp.Before(startOfDay) {
			continue
		}
		stats.Counts[ev.Type]++
	}
	stats.FocusCompleted = stats.Counts[EventFocusCompleted]
	stats.TasksCompleted = stats.Counts[EventTaskCompleted]
	stats.ScheduleSynced = stats.Counts[EventScheduleSynced]
	return stats
}
