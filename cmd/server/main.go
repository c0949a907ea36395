package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"planner/internal/config"
	"planner/internal/serverapp"
)

func main() {
	cfg, err := config.Load("planner.yml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	app, err := serverapp.New(serverapp.Options{
		Config:        cfg,
		DataDir:       cfg.DataDir,
		StaticDir:     "static",
		UseDiskStatic: config.UseDiskStaticByEnv(),
		Logger:        log.Default(),
	})
	if err != nil {
		log.Fatalf("build server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.Engine.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("pomodoro loop stopped: %v", err)
		}
	}()

	srv := &http.Server{Addr: cfg.Listen, Handler: app.Handler}
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()

	log.Printf("listening on http://localhost%s", cfg.Listen)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
