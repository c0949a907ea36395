package pomodoro

import (
	"encoding/json"
	"net/http"
)

type Handler struct {
	engine *Engine
}

func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

// GET /api/pomodoro/state
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, h.engine.Snapshot())
}

// POST /api/pomodoro/cmd
func (h *Handler) Command(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var in struct {
		Cmd   string `json:"cmd"`
		Music *bool  `json:"music,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErr(w, http.StatusBadRequest, "bad json")
		return
	}

	switch in.Cmd {
	case "start":
		h.engine.Start()
	case "pause":
		h.engine.Pause()
	case "reset":
		h.engine.Reset()
	case "music":
		if in.Music == nil {
			writeErr(w, http.StatusBadRequest, `missing field "music"`)
			return
		}
		h.engine.SetMusic(*in.Music)
	default:
		writeErr(w, http.StatusBadRequest, "unknown cmd")
		return
	}
	writeJSON(w, http.StatusOK, h.engine.Snapshot())
}

// GET/PUT /api/pomodoro/settings
func (h *Handler) Settings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.engine.Settings())
	case http.MethodPut:
		var in Settings
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeErr(w, http.StatusBadRequest, "bad json")
			return
		}
		writeJSON(w, http.StatusOK, h.engine.UpdateSettings(in))
	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}
