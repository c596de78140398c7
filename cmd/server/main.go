package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/catalog"
	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/config"
	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/lowstock"
	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/sell"
	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/server"
)

// sessionCapacity bounds how many abandoned carts stay in memory before the
// LRU starts evicting the oldest ones.
const sessionCapacity = 512

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
	if cfg.Env == "production" {
		log = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	client := catalog.New(cfg.BackendURL, cfg.RequestTimeout, log)

	sessions, err := sell.NewStore(sessionCapacity)
	if err != nil {
		log.Fatal().Err(err).Msg("init session store")
	}

	watcher := lowstock.New(client, cfg.LowStockPoll, log)
	watcher.Start(context.Background())
	defer watcher.Stop()

	handler := server.New(server.Deps{
		Catalog:  client,
		Sessions: sessions,
		Watcher:  watcher,
		Log:      log,
	})

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: handler}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("backend", cfg.BackendURL).Str("env", cfg.Env).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("server gracefully stopped")
}
