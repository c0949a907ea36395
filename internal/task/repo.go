package task

import (
	"strings"
	"sync"

	"planner/internal/clock"
	"planner/internal/storage"
)

// Repository holds the task collection in memory and writes the whole
// collection back to the store after every mutation. Ordering is
// newest-first. Invalid input (empty title, unknown id) degrades to a
// no-op; nothing here raises.
type Repository struct {
	mu    sync.RWMutex
	store *storage.Store
	clock clock.Clock
	tasks []Task
}

func NewRepository(store *storage.Store, clk clock.Clock) *Repository {
	if clk == nil {
		clk = clock.RealClock{}
	}
	r := &Repository{store: store, clock: clk}
	var loaded []Task
	if store.Load(storage.KeyTasks, &loaded) {
		r.tasks = loaded
	}
	return r
}

func (r *Repository) persistLocked() {
	r.store.Save(storage.KeyTasks, r.tasks)
}

// List returns a copy of the collection, newest first.
func (r *Repository) List() []Task {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Task, len(r.tasks))
	copy(out, r.tasks)
	return out
}

func (r *Repository) Get(id string) (Task, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// Add prepends a new task. A blank title is a no-op.
func (r *Repository) Add(title string) (Task, bool) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Task{}, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	t := Task{
		ID:        newID(now),
		Title:     title,
		Completed: false,
		CreatedAt: now,
	}
	r.tasks = append([]Task{t}, r.tasks...)
	r.persistLocked()
	return t, true
}

// Toggle flips completion. Unknown id is a no-op.
func (r *Repository) Toggle(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.tasks {
		if r.tasks[i].ID == id {
			r.tasks[i].Completed = !r.tasks[i].Completed
			r.persistLocked()
			return true
		}
	}
	return false
}

// Delete removes the matching task. Unknown id is a no-op, so deletion
// is idempotent.
func (r *Repository) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.tasks {
		if r.tasks[i].ID == id {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			r.persistLocked()
			return true
		}
	}
	return false
}

func (r *Repository) UpdateDescription(id, text string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.tasks {
		if r.tasks[i].ID == id {
			r.tasks[i].Description = text
			r.persistLocked()
			return true
		}
	}
	return false
}

// UpdateTags replaces the tag set wholesale. Exact duplicates are dropped;
// case-insensitive duplicate checks stay a UI concern.
func (r *Repository) UpdateTags(id string, tags []string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.tasks {
		if r.tasks[i].ID == id {
			r.tasks[i].Tags = dedupTags(tags)
			r.persistLocked()
			return true
		}
	}
	return false
}

// Replace swaps in a whole new collection and persists it. Used by the
// schedule reconciler to upsert derived tasks.
func (r *Repository) Replace(tasks []Task) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = tasks
	r.persistLocked()
}
