package task

import (
	"slices"
	"strconv"
	"time"
)

// SchedulePrefix marks tasks derived from weekly schedule items. Their ids
// are stable slugs ("schedule-<itemID>"), not timestamps.
const SchedulePrefix = "schedule-"

type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	Tags        []string  `json:"tags,omitempty"`
}

// newID derives a task id from the creation instant. Collision is possible
// only under sub-millisecond double submission, which is accepted.
func newID(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10)
}

func (t *Task) IsScheduleDerived() bool {
	return len(t.ID) > len(SchedulePrefix) && t.ID[:len(SchedulePrefix)] == SchedulePrefix
}

func (t *Task) HasTag(tag string) bool {
	return slices.Contains(t.Tags, tag)
}

// dedupTags drops exact (case-sensitive) duplicates, preserving order.
func dedupTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag == "" || slices.Contains(out, tag) {
			continue
		}
		out = append(out, tag)
	}
	return out
}
