package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"planner/internal/config"
	"planner/internal/serverapp"
)

func TestServer_ProtectedRoutesRequireAuth(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/api/tasks", "/api/schedule", "/api/pomodoro/state", "/api/events"} {
		res := app.request(http.MethodGet, path, nil)
		if res.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %s, got %d", path, res.Code)
		}
	}

	for _, path := range []string{"/tasks", "/timer", "/schedule"} {
		res := app.request(http.MethodGet, path, nil)
		if res.Code != http.StatusSeeOther {
			t.Fatalf("expected 303 for %s, got %d", path, res.Code)
		}
		if loc := res.Header().Get("Location"); loc != "/login" {
			t.Fatalf("expected %s redirect to /login, got %q", path, loc)
		}
	}
}

func TestServer_LoginFlowAndTaskRoundTrip(t *testing.T) {
	app := newTestApp(t)

	badRes := app.json(http.MethodPost, "/api/auth/login", map[string]any{
		"username": "admin",
		"password": "wrong",
	})
	if badRes.Code != http.StatusUnauthorized {
		t.Fatalf("bad login expected 401, got %d body=%s", badRes.Code, badRes.Body.String())
	}

	app.login(t)

	sessionRes := app.request(http.MethodGet, "/api/auth/session", nil)
	if sessionRes.Code != http.StatusOK {
		t.Fatalf("session expected 200, got %d body=%s", sessionRes.Code, sessionRes.Body.String())
	}

	addRes := app.json(http.MethodPost, "/api/tasks", map[string]any{"title": "Write trip report"})
	if addRes.Code != http.StatusCreated {
		t.Fatalf("add task expected 201, got %d body=%s", addRes.Code, addRes.Body.String())
	}
	added := decodeBodyMap(t, addRes)
	taskID, _ := added["id"].(string)
	if taskID == "" {
		t.Fatalf("expected created task id, body=%s", addRes.Body.String())
	}

	toggleRes := app.request(http.MethodPost, "/api/tasks/"+taskID+"/toggle", nil)
	if toggleRes.Code != http.StatusOK {
		t.Fatalf("toggle expected 200, got %d body=%s", toggleRes.Code, toggleRes.Body.String())
	}
	if !strings.Contains(toggleRes.Body.String(), `"completed":true`) {
		t.Fatalf("expected toggled task in response, body=%s", toggleRes.Body.String())
	}

	eventsRes := app.request(http.MethodGet, "/api/events", nil)
	if eventsRes.Code != http.StatusOK {
		t.Fatalf("events expected 200, got %d", eventsRes.Code)
	}
	for _, want := range []string{"login", "task_added", "task_completed"} {
		if !strings.Contains(eventsRes.Body.String(), want) {
			t.Fatalf("expected %q event in feed, body=%s", want, eventsRes.Body.String())
		}
	}

	logoutRes := app.request(http.MethodPost, "/api/auth/logout", nil)
	if logoutRes.Code != http.StatusOK {
		t.Fatalf("logout expected 200, got %d", logoutRes.Code)
	}
	afterRes := app.request(http.MethodGet, "/api/tasks", nil)
	if afterRes.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", afterRes.Code)
	}
}

func TestServer_ScheduleSyncAndPomodoro(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	scheduleRes := app.request(http.MethodGet, "/api/schedule", nil)
	if scheduleRes.Code != http.StatusOK {
		t.Fatalf("schedule expected 200, got %d", scheduleRes.Code)
	}
	if !strings.Contains(scheduleRes.Body.String(), "monday-lunch") {
		t.Fatalf("expected seeded schedule, body=%s", scheduleRes.Body.String())
	}

	lunchRes := app.json(http.MethodPut, "/api/schedule/lunch", map[string]any{
		"timeSlot": "13:00 - 14:00",
	})
	if lunchRes.Code != http.StatusOK {
		t.Fatalf("lunch update expected 200, got %d body=%s", lunchRes.Code, lunchRes.Body.String())
	}
	if !strings.Contains(lunchRes.Body.String(), `"updated":5`) {
		t.Fatalf("expected 5 lunch rows updated, body=%s", lunchRes.Body.String())
	}

	syncRes := app.request(http.MethodPost, "/api/schedule/today/sync", nil)
	if syncRes.Code != http.StatusOK {
		t.Fatalf("sync expected 200, got %d body=%s", syncRes.Code, syncRes.Body.String())
	}
	if !strings.Contains(syncRes.Body.String(), "schedule-") {
		t.Fatalf("expected derived tasks after sync, body=%s", syncRes.Body.String())
	}

	stateRes := app.request(http.MethodGet, "/api/pomodoro/state", nil)
	if stateRes.Code != http.StatusOK {
		t.Fatalf("pomodoro state expected 200, got %d", stateRes.Code)
	}
	state := decodeBodyMap(t, stateRes)
	if mode, _ := state["mode"].(string); mode != "focus" {
		t.Fatalf("expected focus mode, got %v", state["mode"])
	}
	if display, _ := state["display"].(string); display != "25:00" {
		t.Fatalf("expected 25:00 display, got %v", state["display"])
	}

	startRes := app.json(http.MethodPost, "/api/pomodoro/cmd", map[string]any{"cmd": "start"})
	if startRes.Code != http.StatusOK {
		t.Fatalf("start expected 200, got %d body=%s", startRes.Code, startRes.Body.String())
	}
	if !strings.Contains(startRes.Body.String(), `"running":true`) {
		t.Fatalf("expected running timer, body=%s", startRes.Body.String())
	}

	settingsRes := app.json(http.MethodPut, "/api/pomodoro/settings", map[string]any{
		"focusTime":          50,
		"breakTime":          10,
		"longBreakTime":      20,
		"longBreakInterval":  3,
		"autoStartBreaks":    true,
		"autoStartPomodoros": true,
		"playSound":          false,
	})
	if settingsRes.Code != http.StatusOK {
		t.Fatalf("settings expected 200, got %d body=%s", settingsRes.Code, settingsRes.Body.String())
	}
	if !strings.Contains(settingsRes.Body.String(), `"focusTime":50`) {
		t.Fatalf("expected saved settings, body=%s", settingsRes.Body.String())
	}
}

func TestServer_ConfigExposesAudioURLButNoPassword(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	res := app.request(http.MethodGet, "/api/config", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("config expected 200, got %d", res.Code)
	}
	cfg := decodeBodyMap(t, res)
	pom, _ := cfg["pomodoro"].(map[string]any)
	if pom == nil {
		t.Fatalf("expected pomodoro section, body=%s", res.Body.String())
	}
	if _, ok := pom["audio_url"]; !ok {
		t.Fatalf("expected pomodoro.audio_url field, body=%s", res.Body.String())
	}
	if strings.Contains(res.Body.String(), "password") {
		t.Fatalf("config must not expose the password, body=%s", res.Body.String())
	}
}

func TestServer_HealthAndReadinessExposeRequestID(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		res := app.request(http.MethodGet, path, nil)
		if res.Code != http.StatusOK {
			t.Fatalf("%s expected 200, got %d body=%s", path, res.Code, res.Body.String())
		}
		if rid := strings.TrimSpace(res.Header().Get("X-Request-Id")); rid == "" {
			t.Fatalf("%s missing X-Request-Id header", path)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "hc-42")
	rec := httptest.NewRecorder()
	app.handler.ServeHTTP(rec, req)
	if !strings.Contains(app.logs.String(), `"request_id":"hc-42"`) {
		t.Fatalf("access log missing request id, logs=%s", app.logs.String())
	}
}

func TestServer_EmbeddedStaticServed(t *testing.T) {
	app := newTestApp(t)

	res := app.request(http.MethodGet, "/static/js/app.js", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("embedded static asset expected 200, got %d", res.Code)
	}
	if res.Body.Len() == 0 {
		t.Fatalf("embedded static asset should not be empty")
	}
}

type testApp struct {
	handler http.Handler
	logs    *bytes.Buffer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	cfg := &config.Config{}
	cfg.ApplyDefaults()

	var logs bytes.Buffer
	logger := log.New(&logs, "", 0)

	app, err := serverapp.New(serverapp.Options{
		Config:  cfg,
		DataDir: t.TempDir(),
		Logger:  logger,
	})
	if err != nil {
		t.Fatalf("serverapp.New: %v", err)
	}

	return &testApp{handler: app.Handler, logs: &logs}
}

func (a *testApp) login(t *testing.T) {
	t.Helper()
	res := a.json(http.MethodPost, "/api/auth/login", map[string]any{
		"username": "admin",
		"password": "admin",
	})
	if res.Code != http.StatusOK {
		t.Fatalf("login expected 200, got %d body=%s", res.Code, res.Body.String())
	}
}

func (a *testApp) json(method, path string, body any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	return a.request(method, path, bytes.NewReader(b))
}

func (a *testApp) request(method, path string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBodyMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode json body failed: %v body=%s", err, rec.Body.String())
	}
	return out
}
