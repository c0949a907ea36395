package telemetry

import "time"

type EventType string

const (
	EventTaskAdded      EventType = "task_added"
	EventTaskCompleted  EventType = "task_completed"
	EventTaskDeleted    EventType = "task_deleted"
	EventScheduleSynced EventType = "schedule_synced"
	EventFocusCompleted EventType = "focus_completed"
	EventBreakCompleted EventType = "break_completed"
	EventLogin          EventType = "login"
	EventLogout         EventType = "logout"
)

// Event is one line of the activity feed. Title/Description carry the
// user-facing notification text when the event came from the timer.
type Event struct {
	ID          int       `json:"id"`
	Type        EventType `json:"type"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}
