package task

import (
	"encoding/json"
	"net/http"
	"strings"

	"planner/internal/telemetry"
)

type Handler struct {
	repo *Repository
	feed *telemetry.Feed
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// SetFeed makes the handler report task activity. Optional.
func (h *Handler) SetFeed(f *telemetry.Feed) {
	h.feed = f
}

func (h *Handler) record(typ telemetry.EventType, title, description string) {
	if h.feed == nil {
		return
	}
	h.feed.Record(typ, title, description)
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

// Patch mirrors the repository's partial-update surface.
// nil pointer => "no change".
type Patch struct {
	Description *string   `json:"description,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
}

// /api/tasks  (collection; ?tag= narrows to tasks carrying that label)
func (h *Handler) TasksRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		list := h.repo.List()
		if tag := strings.TrimSpace(r.URL.Query().Get("tag")); tag != "" {
			filtered := make([]Task, 0, len(list))
			for _, t := range list {
				if t.HasTag(tag) {
					filtered = append(filtered, t)
				}
			}
			list = filtered
		}
		writeJSON(w, http.StatusOK, list)

	case http.MethodPost:
		var in struct {
			Title string `json:"title"`
		}
		if err := decodeJSON(r, &in); err != nil {
			writeErr(w, http.StatusBadRequest, "bad json")
			return
		}
		t, ok := h.repo.Add(in.Title)
		if !ok {
			// Blank title: nothing happened. The collection is the answer.
			writeJSON(w, http.StatusOK, map[string]any{"ok": false, "tasks": h.repo.List()})
			return
		}
		h.record(telemetry.EventTaskAdded, t.Title, "")
		writeJSON(w, http.StatusCreated, t)

	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// /api/tasks/{id} and /api/tasks/{id}/toggle
func (h *Handler) TasksSub(w http.ResponseWriter, r *http.Request) {
	tail := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/tasks/"), "/")
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
		if t, found := h.repo.Get(id); ok && found && t.Completed {
			h.record(telemetry.EventTaskCompleted, t.Title, "")
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": ok, "tasks": h.repo.List()})
		return
	}

	if len(parts) != 1 {
		writeErr(w, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		t, ok := h.repo.Get(id)
		if !ok {
			writeErr(w, http.StatusNotFound, "not found")
			return
		}
		writeJSON(w, http.StatusOK, t)

	case http.MethodPatch:
		var p Patch
		if err := decodeJSON(r, &p); err != nil {
			writeErr(w, http.StatusBadRequest, "bad json")
			return
		}
		ok := true
		if p.Description != nil {
			ok = h.repo.UpdateDescription(id, *p.Description) && ok
		}
		if p.Tags != nil {
			ok = h.repo.UpdateTags(id, *p.Tags) && ok
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": ok, "tasks": h.repo.List()})

	case http.MethodDelete:
		t, found := h.repo.Get(id)
		ok := h.repo.Delete(id)
		if ok && found {
			h.record(telemetry.EventTaskDeleted, t.Title, "")
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": ok, "tasks": h.repo.List()})

	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}
