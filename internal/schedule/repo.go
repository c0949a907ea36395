package schedule

import (
	"sync"

	"planner/internal/clock"
	"planner/internal/storage"
	"planner/internal/task"
)

// Repository owns the weekly schedule. Items are edited and toggled but
// never deleted; the full collection persists after every mutation.
type Repository struct {
	mu     sync.RWMutex
	store  *storage.Store
	clock  clock.Clock
	weekly Weekly
}

func NewRepository(store *storage.Store, clk clock.Clock) *Repository {
	if clk == nil {
		clk = clock.RealClock{}
	}
	r := &Repository{store: store, clock: clk}
	var loaded Weekly
	if store.Load(storage.KeySchedule, &loaded) && len(loaded.Items) > 0 {
		r.weekly = loaded
	} else {
		r.weekly = DefaultWeekly()
		r.persistLocked()
	}
	return r
}

func (r *Repository) persistLocked() {
	r.store.Save(storage.KeySchedule, r.weekly)
}

func (r *Repository) Items() []Item {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Item, len(r.weekly.Items))
	copy(out, r.weekly.Items)
	return out
}

func (r *Repository) ItemsForDay(d Day) []Item {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Item
	for _, it := range r.weekly.Items {
		if it.Day == d {
			out = append(out, it)
		}
	}
	return out
}

// TodayItems resolves the current weekday from the clock's local time.
func (r *Repository) TodayItems() []Item {
	return r.ItemsForDay(Day(clock.Weekday(r.clock)))
}

// Toggle flips completion. Unknown id is a no-op.
func (r *Repository) Toggle(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.weekly.Items {
		if r.weekly.Items[i].ID == id {
			r.weekly.Items[i].Completed = !r.weekly.Items[i].Completed
			r.persistLocked()
			return true
		}
	}
	return false
}

// Patch is a partial edit; nil pointer => "no change".
type Patch struct {
	Activity    *string `json:"activity,omitempty"`
	TimeSlot    *string `json:"timeSlot,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Edit applies a patch to the matching item. Unknown id is a no-op.
func (r *Repository) Edit(id string, p Patch) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.weekly.Items {
		if r.weekly.Items[i].ID != id {
			continue
		}
		if p.Activity != nil {
			r.weekly.Items[i].Activity = *p.Activity
		}
		if p.TimeSlot != nil {
			r.weekly.Items[i].TimeSlot = *p.TimeSlot
		}
		if p.Description != nil {
			r.weekly.Items[i].Description = *p.Description
		}
		r.persistLocked()
		return true
	}
	return false
}

// UpdateLunchSlot rewrites the time slot on every lunch-role item and
// returns how many were rewritten. Matching by role survives edits to the
// activity display text.
func (r *Repository) UpdateLunchSlot(timeSlot string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for i := range r.weekly.Items {
		if r.weekly.Items[i].Role == RoleLunch {
			r.weekly.Items[i].TimeSlot = timeSlot
			n++
		}
	}
	if n > 0 {
		r.persistLocked()
	}
	return n
}

func (r *Repository) derivedTask(it Item) task.Task {
	return task.Task{
		ID:          task.SchedulePrefix + it.ID,
		Title:       it.TimeSlot + " - " + it.Activity,
		Description: it.Description,
		Completed:   it.Completed,
		CreatedAt:   r.clock.Now(),
	}
}

// DeriveTodayTasks maps today's schedule items to tasks, skipping any whose
// id or title already exists among existing. Derived ids are stable
// ("schedule-<itemID>"), so a slot edit cannot smuggle in a second task
// under an id the collection already holds; SyncTodayTasks is the path
// that surfaces edits.
func (r *Repository) DeriveTodayTasks(existing []task.Task) []task.Task {
	ids := make(map[string]bool, len(existing))
	titles := make(map[string]bool, len(existing))
	for _, t := range existing {
		ids[t.ID] = true
		titles[t.Title] = true
	}

	var out []task.Task
	for _, it := range r.TodayItems() {
		t := r.derivedTask(it)
		if ids[t.ID] || titles[t.Title] {
			continue
		}
		out = append(out, t)
	}
	return out
}

// SyncTodayTasks reconciles the task collection with the schedule: every
// schedule-derived task is dropped and today's set is reinserted, so edits
// to slots (a moved lunch hour, a renamed activity) always surface. Returns
// the number of derived tasks inserted.
func (r *Repository) SyncTodayTasks(repo *task.Repository) int {
	kept := make([]task.Task, 0)
	for _, t := range repo.List() {
		if !t.IsScheduleDerived() {
			kept = append(kept, t)
		}
	}

	var derived []task.Task
	for _, it := range r.TodayItems() {
		derived = append(derived, r.derivedTask(it))
	}

	repo.Replace(append(derived, kept...))
	return len(derived)
}
