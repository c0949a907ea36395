package session

import (
	"encoding/json"
	"errors"
	"net/http"

	"planner/internal/telemetry"
)

type Handler struct {
	gate *Gate
	feed *telemetry.Feed
}

func NewHandler(gate *Gate) *Handler {
	return &Handler{gate: gate}
}

// SetFeed makes the handler report logins and logouts. Optional.
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

// POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.gate.Login(in.Username, in.Password); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			writeErr(w, http.StatusUnauthorized, err.Error())
			return
		}
		writeErr(w, http.StatusInternalServerError, "could not log in")
		return
	}

	h.record(telemetry.EventLogin, h.gate.Current().Username)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "user": h.gate.Current()})
}

// POST /api/auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	h.gate.Logout()
	h.record(telemetry.EventLogout, "")
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// GET /api/auth/session
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !h.gate.LoggedIn() {
		writeErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "user": h.gate.Current()})
}

// RequireAPI hides the repositories behind the gate: requests while logged
// out get 401 JSON.
func (g *Gate) RequireAPI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.LoggedIn() {
			writeErr(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequirePage redirects logged-out page requests to the login page.
func (g *Gate) RequirePage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.LoggedIn() {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
