package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"visionnaires-go/internal/config"
	"visionnaires-go/internal/content"
	"visionnaires-go/internal/db"
	"visionnaires-go/internal/httpapi"
	"visionnaires-go/internal/notion"
	"visionnaires-go/internal/render"
	"visionnaires-go/internal/repositories"
	"visionnaires-go/internal/repositories/postgres"
	"visionnaires-go/internal/scheduler"
	"visionnaires-go/internal/services/listing"
	"visionnaires-go/internal/services/retention"
	"visionnaires-go/internal/services/teaser"
	"visionnaires-go/internal/telegram"
)

type Builder struct {
	cfg          *config.Config
	basePath     string
	ensureSchema bool

	gateway  *content.Gateway
	client   *http.Client
	pool     *pgxpool.Pool
	leads    repositories.LeadRepository
	notifier teaser.Notifier

	scheduler *scheduler.Scheduler
	server    *http.Server
}

type BuilderOption func(*Builder)

func NewBuilder(cfg *config.Config, options ...BuilderOption) *Builder {
	builder := &Builder{
		cfg:          cfg,
		ensureSchema: true,
	}
	for _, option := range options {
		option(builder)
	}
	return builder
}

func WithBasePath(basePath string) BuilderOption {
	return func(b *Builder) {
		b.basePath = basePath
	}
}

func WithEnsureSchema(enabled bool) BuilderOption {
	return func(b *Builder) {
		b.ensureSchema = enabled
	}
}

// WithGateway replaces the content gateway built from the Notion settings.
func WithGateway(gateway *content.Gateway) BuilderOption {
	return func(b *Builder) {
		b.gateway = gateway
	}
}

// WithHTTPClient sets the client used for content service calls.
func WithHTTPClient(client *http.Client) BuilderOption {
	return func(b *Builder) {
		b.client = client
	}
}

func WithDBPool(pool *pgxpool.Pool) BuilderOption {
	return func(b *Builder) {
		b.pool = pool
	}
}

func WithLeadRepository(repo repositories.LeadRepository) BuilderOption {
	return func(b *Builder) {
		b.leads = repo
	}
}

func WithNotifier(notifier teaser.Notifier) BuilderOption {
	return func(b *Builder) {
		b.notifier = notifier
	}
}

func WithScheduler(scheduler *scheduler.Scheduler) BuilderOption {
	return func(b *Builder) {
		b.scheduler = scheduler
	}
}

func WithHTTPServer(server *http.Server) BuilderOption {
	return func(b *Builder) {
		b.server = server
	}
}

func (b *Builder) Build(ctx context.Context) (*App, error) {
	if b.cfg == nil {
		return nil, errors.New("config is required")
	}

	app := &App{Config: b.cfg}

	if b.client == nil {
		b.client = &http.Client{Timeout: b.cfg.HTTPClientTimeout}
	}
	if b.gateway == nil {
		var source content.Source
		if b.cfg.NotionAPIKey != "" {
			source = notion.NewClient(b.cfg.NotionBaseURL, b.cfg.NotionAPIKey, b.cfg.NotionVersion, b.client)
		} else {
			log.Printf("[app] NOTION_API_KEY not set, content endpoints will be empty")
		}
		b.gateway = content.NewGateway(source)
	}
	app.Gateway = b.gateway

	if err := b.buildLedger(ctx, app); err != nil {
		return nil, err
	}

	if b.notifier == nil && b.cfg.TelegramEnabled() {
		sender := telegram.NewSender(b.cfg.TelegramToken, b.cfg.TelegramChat, b.cfg.TelegramThread())
		b.notifier = sender
		app.sender = sender
	}
	app.Notifier = b.notifier

	app.Listing = listing.NewService(app.Gateway, listing.Collections{
		TrackRecords:     b.cfg.TrackRecordsDB,
		LiveTransactions: b.cfg.LiveDealsDB,
	}, render.Blocks)

	options := []teaser.Option{}
	if b.cfg.TeaserTokenSecret != "" {
		options = append(options, teaser.WithTokens(teaser.NewTokens(b.cfg.TeaserTokenSecret, b.cfg.TeaserTokenTTL)))
	}
	if app.Leads != nil {
		options = append(options, teaser.WithLeads(app.Leads))
	}
	if app.Notifier != nil {
		options = append(options, teaser.WithNotifier(app.Notifier))
	}
	// Teaser files stream for as long as the caller stays connected, so
	// only the request context bounds them.
	files := &http.Client{Transport: b.client.Transport}
	app.Teaser = teaser.NewService(app.Gateway, files, teaser.Config{
		LiveCollection:    b.cfg.LiveDealsDB,
		CaptureCollection: b.cfg.EmailCaptureDB,
		Password:          b.cfg.TeaserPassword,
		RequireEmail:      b.cfg.TeaserRequireEmail,
	}, options...)

	if b.scheduler == nil && app.Leads != nil {
		b.scheduler = scheduler.New("lead retention", b.cfg.RetentionCron, retention.NewService(app.Leads, b.cfg.LeadRetentionDays))
	}
	app.Scheduler = b.scheduler

	if b.server == nil {
		handler := httpapi.NewHandler(app.Listing, app.Teaser)
		b.server = &http.Server{
			Addr:              ":" + b.cfg.HTTPPort,
			Handler:           handler.Router(),
			ReadHeaderTimeout: 5 * time.Second,
		}
	}
	app.Server = b.server

	return app, nil
}

// buildLedger wires the optional Postgres lead ledger.
func (b *Builder) buildLedger(ctx context.Context, app *App) error {
	if b.leads != nil {
		app.Leads = b.leads
		return nil
	}
	if b.pool == nil {
		if b.cfg.DatabaseURL == "" {
			return nil
		}
		pool, err := db.NewPool(ctx, b.cfg.DatabaseURL)
		if err != nil {
			return err
		}
		b.pool = pool
		app.ownsPool = true
	}
	app.Pool = b.pool

	if b.ensureSchema {
		basePath := b.basePath
		if basePath == "" {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			basePath = wd
		}
		path, err := filepath.Abs(basePath)
		if err != nil {
			return err
		}
		if err := db.EnsureSchema(ctx, b.pool, path); err != nil {
			return err
		}
	}

	app.Leads = postgres.NewLeadRepository(b.pool)
	return nil
}
