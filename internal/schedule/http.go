package schedule

import (
	"encoding/json"
	"net/http"
	"strings"

	"planner/internal/task"
	"planner/internal/telemetry"
)

type Handler struct {
	repo  *Repository
	tasks *task.Repository
	feed  *telemetry.Feed
}

func NewHandler(repo *Repository, tasks *task.Repository) *Handler {
	return &Handler{repo: repo, tasks: tasks}
}

// SetFeed makes the handler report sync activity. Optional.
func (h *Handler) SetFeed(f *telemetry.Feed) {
	h.feed = f
}

func (h *Handler) record(typ telemetry.EventType, title string) {
	if h.feed == nil {
		return
	}
	h.feed.Record(typ, title, "")
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func decodeJSON(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}

// /api/schedule
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, Weekly{Items: h.repo.Items()})
}

// /api/schedule/lunch
func (h *Handler) Lunch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var in struct {
		TimeSlot string `json:"timeSlot"`
	}
	if err := decodeJSON(r, &in); err != nil || strings.TrimSpace(in.TimeSlot) == "" {
		writeErr(w, http.StatusBadRequest, "bad json")
		return
	}
	n := h.repo.UpdateLunchSlot(in.TimeSlot)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "updated": n})
}

// /api/schedule/today/tasks (additive derive) and /api/schedule/today/sync
func (h *Handler) Today(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	tail := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/schedule/today/"), "/")
	switch tail {
	case "tasks":
		existing := h.tasks.List()
		derived := h.repo.DeriveTodayTasks(existing)
		if len(derived) > 0 {
			h.tasks.Replace(append(derived, existing...))
			h.record(telemetry.EventScheduleSynced, "derived today's schedule")
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "added": len(derived), "tasks": h.tasks.List()})
	case "sync":
		n := h.repo.SyncTodayTasks(h.tasks)
		h.record(telemetry.EventScheduleSynced, "synced today's schedule")
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "synced": n, "tasks": h.tasks.List()})
	default:
		writeErr(w, http.StatusNotFound, "not found")
	}
}

// /api/schedule/{id} and /api/schedule/{id}/toggle
func (h *Handler) Sub(w http.ResponseWriter, r *http.Request) {
	tail := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/schedule/"), "/")
	if tail == "" {
		writeErr(w, http.StatusNotFound, "not found")
		return
	}
	parts := strings.Split(tail, "/")
	id := parts[0]

	if len(parts) == 2 && parts[1] == "toggle" {
		if r.Method != http.MethodPost {
			writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		ok := h.repo.Toggle(id)
		writeJSON(w, http.StatusOK, map[string]any{"ok": ok})
		return
	}

	if len(parts) != 1 {
		writeErr(w, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodPatch:
		var p Patch
		if err := decodeJSON(r, &p); err != nil {
			writeErr(w, http.StatusBadRequest, "bad json")
			return
		}
		ok := h.repo.Edit(id, p)
		writeJSON(w, http.StatusOK, map[string]any{"ok": ok})
	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}
