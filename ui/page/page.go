// Package page renders the planner's HTML shell. The pages are thin: the
// interactive parts live in static/js and talk to the JSON API.
package page

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

type navLink struct {
	href  string
	label string
}

var navLinks = []navLink{
	{"/tasks", "Tasks"},
	{"/timer", "Timer"},
	{"/schedule", "Schedule"},
}

func layout(title, bodyID string, body func(w io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<link rel="stylesheet" href="/static/css/app.css">
</head>
<body id=%q>
<nav class="topnav"><span class="brand">Planner</span>`, html.EscapeString(title), bodyID); err != nil {
			return err
		}
		for _, l := range navLinks {
			if _, err := fmt.Fprintf(w, `<a href=%q>%s</a>`, l.href, html.EscapeString(l.label)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `<button id="logout-btn" class="nav-right">Log out</button></nav><main>`); err != nil {
			return err
		}
		if err := body(w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main>
<script src="/static/js/app.js"></script>
</body>
</html>`)
		return err
	})
}

func LoginPage() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Planner - Log in</title>
<link rel="stylesheet" href="/static/css/app.css">
</head>
<body id="page-login">
<main class="login-card">
<h1>Planner</h1>
<form id="login-form">
<label>Username
<input name="username" autocomplete="username" required>
</label>
<label>Password
<input name="password" type="password" autocomplete="current-password" required>
</label>
<button type="submit">Log in</button>
<p id="login-error" class="error" hidden></p>
</form>
</main>
<script src="/static/js/app.js"></script>
</body>
</html>`)
		return err
	})
}

func TasksPage() templ.Component {
	return layout("Planner - Tasks", "page-tasks", func(w io.Writer) error {
		_, err := io.WriteString(w, `<section class="panel">
<h1>Tasks</h1>
<form id="add-task-form">
<input name="title" placeholder="What needs doing?" autocomplete="off">
<button type="submit">Add</button>
</form>
<div class="row">
<button id="derive-today-btn">Add today's schedule</button>
<button id="sync-today-btn">Sync today's schedule</button>
</div>
<ul id="task-list"></ul>
</section>`)
		return err
	})
}

func TimerPage() templ.Component {
	return layout("Planner - Timer", "page-timer", func(w io.Writer) error {
		_, err := io.WriteString(w, `<section class="panel timer">
<h1>Pomodoro</h1>
<p id="timer-mode"></p>
<p id="timer-display" class="clock">25:00</p>
<p id="timer-sessions"></p>
<div class="row">
<button id="timer-start">Start</button>
<button id="timer-pause">Pause</button>
<button id="timer-reset">Reset</button>
<button id="timer-music">Music</button>
</div>
<details>
<summary>Settings</summary>
<form id="timer-settings-form">
<label>Focus minutes <input name="focusTime" type="number" min="1"></label>
<label>Break minutes <input name="breakTime" type="number" min="1"></label>
<label>Long break minutes <input name="longBreakTime" type="number" min="1"></label>
<label>Long break every <input name="longBreakInterval" type="number" min="1"></label>
<label><input name="autoStartBreaks" type="checkbox"> Auto-start breaks</label>
<label><input name="autoStartPomodoros" type="checkbox"> Auto-start focus</label>
<label><input name="playSound" type="checkbox"> Play sound</label>
<button type="submit">Save</button>
</form>
</details>
</section>`)
		return err
	})
}

func SchedulePage() templ.Component {
	return layout("Planner - Schedule", "page-schedule", func(w io.Writer) error {
		_, err := io.WriteString(w, `<section class="panel">
<h1>Weekly schedule</h1>
<form id="lunch-form" class="row">
<label>Lunch slot <input name="timeSlot" placeholder="14:00 - 15:00"></label>
<button type="submit">Update weekdays</button>
</form>
<div id="schedule-grid"></div>
</section>`)
		return err
	})
}
