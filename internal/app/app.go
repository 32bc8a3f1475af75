package app

import (
	"context"
	"log"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"visionnaires-go/internal/config"
	"visionnaires-go/internal/content"
	"visionnaires-go/internal/repositories"
	"visionnaires-go/internal/scheduler"
	"visionnaires-go/internal/services/listing"
	"visionnaires-go/internal/services/teaser"
	"visionnaires-go/internal/telegram"
)

type App struct {
	Config    *config.Config
	Gateway   *content.Gateway
	Pool      *pgxpool.Pool
	Leads     repositories.LeadRepository
	Notifier  teaser.Notifier
	Listing   *listing.Service
	Teaser    *teaser.Service
	Scheduler *scheduler.Scheduler
	Server    *http.Server

	ownsPool bool
	sender   *telegram.Sender
}

func (a *App) Start() error {
	if a.Scheduler != nil {
		if err := a.Scheduler.Start(); err != nil {
			return err
		}
	}

	go func() {
		log.Printf("HTTP server listening on %s", a.Server.Addr)
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}
	if err := a.Server.Shutdown(ctx); err != nil {
		return err
	}
	if a.sender != nil {
		a.sender.Close()
	}
	if a.ownsPool {
		a.Pool.Close()
	}
	return nil
}
