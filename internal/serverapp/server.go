// Package serverapp assembles the planner HTTP application: storage,
// repositories, the pomodoro engine, and every route behind one handler.
package serverapp

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"planner/internal/clock"
	"planner/internal/config"
	"planner/internal/httpmw"
	"planner/internal/pomodoro"
	"planner/internal/schedule"
	"planner/internal/session"
	"planner/internal/storage"
	"planner/internal/task"
	"planner/internal/telemetry"
	"planner/static"
	"planner/ui/page"

	"github.com/a-h/templ"
)

type Options struct {
	Config        *config.Config
	DataDir       string
	StaticDir     string
	UseDiskStatic bool
	Logger        *log.Logger
	Clock         clock.Clock
}

// App bundles the handler with the long-running pieces the caller owns.
type App struct {
	Handler http.Handler
	Engine  *pomodoro.Engine
}

func New(opts Options) (*App, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if strings.TrimSpace(opts.DataDir) == "" {
		opts.DataDir = opts.Config.DataDir
	}
	if strings.TrimSpace(opts.StaticDir) == "" {
		opts.StaticDir = "static"
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}

	store, err := storage.New(opts.DataDir, opts.Logger)
	if err != nil {
		return nil, err
	}

	feed := telemetry.NewFeed(opts.Clock, 0)

	gate := session.NewGate(store, session.Static{
		Username: opts.Config.Auth.Username,
		Password: opts.Config.Auth.Password,
	}, opts.Logger)
	sessionHandler := session.NewHandler(gate)
	sessionHandler.SetFeed(feed)

	taskRepo := task.NewRepository(store, opts.Clock)
	taskHandler := task.NewHandler(taskRepo)
	taskHandler.SetFeed(feed)

	scheduleRepo := schedule.NewRepository(store, opts.Clock)
	scheduleHandler := schedule.NewHandler(scheduleRepo, taskRepo)
	scheduleHandler.SetFeed(feed)

	engine := pomodoro.NewEngine(store, feed, pomodoro.NopAudio{}, opts.Logger)
	pomodoroHandler := pomodoro.NewHandler(engine)

	telemetryHandler := telemetry.NewHandler(feed)

	mux := http.NewServeMux()

	staticHandler := http.FileServer(http.FS(staticfiles.EmbeddedFS()))
	if opts.UseDiskStatic {
		staticHandler = http.FileServer(http.Dir(opts.StaticDir))
	}
	mux.Handle("/static/", http.StripPrefix("/static/", staticHandler))

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "planner",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		// The repositories hold their state in memory once loaded, so
		// readiness only confirms the process is serving.
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "planner",
			"tasks":   len(taskRepo.List()),
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("/api/auth/login", sessionHandler.Login)
	mux.HandleFunc("/api/auth/logout", sessionHandler.Logout)
	mux.HandleFunc("/api/auth/session", sessionHandler.Session)

	mux.Handle("/api/tasks", gate.RequireAPI(http.HandlerFunc(taskHandler.TasksRoot)))
	mux.Handle("/api/tasks/", gate.RequireAPI(http.HandlerFunc(taskHandler.TasksSub)))

	// Specific prefixes registered alongside the catch-all; ServeMux picks
	// the longest match.
	mux.Handle("/api/schedule", gate.RequireAPI(http.HandlerFunc(scheduleHandler.Root)))
	mux.Handle("/api/schedule/lunch", gate.RequireAPI(http.HandlerFunc(scheduleHandler.Lunch)))
	mux.Handle("/api/schedule/today/", gate.RequireAPI(http.HandlerFunc(scheduleHandler.Today)))
	mux.Handle("/api/schedule/", gate.RequireAPI(http.HandlerFunc(scheduleHandler.Sub)))

	mux.Handle("/api/pomodoro/state", gate.RequireAPI(http.HandlerFunc(pomodoroHandler.State)))
	mux.Handle("/api/pomodoro/cmd", gate.RequireAPI(http.HandlerFunc(pomodoroHandler.Command)))
	mux.Handle("/api/pomodoro/settings", gate.RequireAPI(http.HandlerFunc(pomodoroHandler.Settings)))

	mux.Handle("/api/events", gate.RequireAPI(http.HandlerFunc(telemetryHandler.Events)))
	mux.Handle("/api/stats", gate.RequireAPI(http.HandlerFunc(telemetryHandler.Stats)))

	mux.Handle("/api/config", gate.RequireAPI(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(opts.Config); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if gate.LoggedIn() {
			http.Redirect(w, r, "/tasks", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	})
	mux.Handle("/login", templ.Handler(page.LoginPage()))
	mux.Handle("/tasks", gate.RequirePage(templ.Handler(page.TasksPage())))
	mux.Handle("/timer", gate.RequirePage(templ.Handler(page.TimerPage())))
	mux.Handle("/schedule", gate.RequirePage(templ.Handler(page.SchedulePage())))

	// Request id first so the access logger sees it in the context.
	handler := httpmw.Chain(
		mux,
		httpmw.WithRequestID,
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRecover(opts.Logger),
	)

	return &App{Handler: handler, Engine: engine}, nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
