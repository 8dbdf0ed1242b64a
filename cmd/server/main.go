package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"delivery-admin/internal/broker"
	"delivery-admin/internal/cache"
	"delivery-admin/internal/config"
	"delivery-admin/internal/database"
	"delivery-admin/internal/logger"
	"delivery-admin/internal/server"
	"delivery-admin/internal/storage"
)

var log = logger.New("main")

func main() {
	cfg := config.Load()
	if err := logger.Init(cfg.LogLevel); err != nil {
		log.Fatalf("invalid LOG_LEVEL %q: %v", cfg.LogLevel, err)
	}

	database.Init(cfg)
	cache.Init(cfg)
	if err := storage.Init(cfg); err != nil {
		log.Fatalf("storage: %v", err)
	}
	broker.Init(cfg)

	app := server.New(cfg)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-sigChan
		log.Infof("received %v, shutting down", sig)
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Errorf("shutdown: %v", err)
		}
	}()

	log.Infof("server listening on port %s", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatalf("listen: %v", err)
	}

	if err := broker.Default().Close(); err != nil {
		log.Warningf("close broker: %v", err)
	}
	if err := cache.Close(); err != nil {
		log.Warningf("close redis: %v", err)
	}
}
