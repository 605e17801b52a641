package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/rocklab/geoqa/internal/adapters/http"
	"github.com/rocklab/geoqa/internal/bootstrap"
	"github.com/rocklab/geoqa/internal/config"
)

func main() {
	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	if app.Bus != nil {
		go func() {
			err := app.Bus.SubscribeRefresh(ctx, func(ctx context.Context, reason string) error {
				app.Logger.Info("index_refresh_requested", "reason", reason)
				return app.RebuildIndex(ctx)
			})
			if err != nil {
				app.Logger.Error("refresh_subscription_failed", "error", err)
			}
		}()
	}

	router := httpadapter.NewRouter(
		app.Answerer,
		app.Refresher,
		app.QueryLog,
		app.Metrics,
		httpadapter.Limits{
			MaxQuestionChars: cfg.MaxQuestionChars,
			MaxContextChars:  cfg.MaxContextChars,
		},
		app.Logger,
	).Handler()

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("api listening on :%s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("api server error: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("api shutdown error: %v", err)
	}
}
