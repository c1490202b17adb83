package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"mediafeed/internal/config"
	"mediafeed/internal/db"
	"mediafeed/internal/handlers"
	"mediafeed/internal/media"
	"mediafeed/internal/store"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := godotenv.Load(); err != nil {
		log.Info("no .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}

	dbConn, err := db.Connect(cfg)
	if err != nil {
		log.Error("db connect", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// schema must be current before the first request
	if err := db.Migrate(dbConn); err != nil {
		log.Error("db migrate", "error", err)
		os.Exit(1)
	}

	mediaClient := media.New(cfg.MediaUploadURL, cfg.MediaPrivateKey, cfg.MediaTag)
	h := handlers.NewHandler(store.NewSQLStore(dbConn), mediaClient, cfg, log)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handlers.Routes(h, cfg.AccessSecret),
	}

	go func() {
		log.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("listen", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server exited")
}
