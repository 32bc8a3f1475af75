package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"visionnaires-go/internal/app"
	"visionnaires-go/internal/config"
)

// shutdownGrace leaves in-flight teaser downloads time to finish.
const shutdownGrace = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	application, err := app.NewBuilder(&cfg).Build(context.Background())
	if err != nil {
		log.Fatalf("app build error: %v", err)
	}
	log.Printf("[app] content=%t ledger=%t telegram=%t email gate=%t",
		application.Gateway.Configured(), application.Leads != nil, application.Notifier != nil, cfg.TeaserRequireEmail)

	if err := application.Start(); err != nil {
		log.Fatalf("app start error: %v", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Printf("[app] shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := application.Shutdown(ctx); err != nil {
		log.Printf("[app] shutdown error: %v", err)
	}
}
