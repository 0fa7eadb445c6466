// Package app initializes and holds long-lived application services, acting
// as a dependency injection container.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/bobocheung/Distributed-Web-Crawler/internal/classify"
	"github.com/bobocheung/Distributed-Web-Crawler/internal/config"
	"github.com/bobocheung/Distributed-Web-Crawler/internal/feeds"
	"github.com/bobocheung/Distributed-Web-Crawler/internal/fetch"
	"github.com/bobocheung/Distributed-Web-Crawler/internal/ingest"
	"github.com/bobocheung/Distributed-Web-Crawler/internal/logging"
	"github.com/bobocheung/Distributed-Web-Crawler/internal/metrics"
	"github.com/bobocheung/Distributed-Web-Crawler/internal/parse"
	"github.com/bobocheung/Distributed-Web-Crawler/internal/pipeline"
	"github.com/bobocheung/Distributed-Web-Crawler/internal/store"
	"github.com/bobocheung/Distributed-Web-Crawler/internal/task"
)

// App holds the shared, long-lived services for the service. It is built
// once at startup and handed to the commands that need it.
type App struct {
	cfg      config.Config
	logger   *zap.Logger
	store    store.Provider
	queue    task.Queue
	registry *feeds.Registry
	fetcher  *fetch.Fetcher
	parser   *parse.Parser
	ingestor *ingest.Ingestor
	handlers *pipeline.Handlers
	ledger   *fetch.Ledger
}

// New creates and initializes an App from the configuration, failing fast
// when any critical service cannot be built.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	metrics.Init()

	provider, err := buildStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	queue, err := buildQueue(ctx, cfg)
	if err != nil {
		provider.Close()
		return nil, err
	}
	registry, err := buildRegistry(cfg, logger)
	if err != nil {
		provider.Close()
		queue.Close()
		return nil, err
	}

	fetchCfg := fetch.DefaultConfig()
	fetchCfg.Timeout = cfg.FetchTimeout()
	if cfg.Fetch.UserAgent != "" {
		fetchCfg.UserAgent = cfg.Fetch.UserAgent
	}
	if cfg.Fetch.AltUserAgent != "" {
		fetchCfg.AltUserAgent = cfg.Fetch.AltUserAgent
	}
	if cfg.Fetch.AcceptLanguage != "" {
		fetchCfg.AcceptLanguage = cfg.Fetch.AcceptLanguage
	}

	fetcher := fetch.New(fetchCfg, logger)
	parser := parse.New(fetcher, logger)
	ingestor := ingest.New(provider, classify.Noop{}, logger)
	ledger := &fetch.Ledger{}
	handlers := pipeline.New(parser, ingestor, fetcher, provider, queue, ledger, logger)

	return &App{
		cfg:      cfg,
		logger:   logger,
		store:    provider,
		queue:    queue,
		registry: registry,
		fetcher:  fetcher,
		parser:   parser,
		ingestor: ingestor,
		handlers: handlers,
		ledger:   ledger,
	}, nil
}

func buildStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (store.Provider, error) {
	switch cfg.Store.Provider {
	case "postgres":
		logger.Info("connecting to postgres")
		p, err := store.NewPostgresProvider(ctx, cfg.Store.DSN, logger)
		if err != nil {
			return nil, fmt.Errorf("initialize postgres store: %w", err)
		}
		return p, nil
	case "memory":
		logger.Info("using in-memory article store")
		return store.NewMemoryProvider(), nil
	default:
		return nil, fmt.Errorf("unknown store provider: %s", cfg.Store.Provider)
	}
}

func buildQueue(ctx context.Context, cfg config.Config) (task.Queue, error) {
	switch cfg.Queue.Provider {
	case "redis":
		q, err := task.NewRedisQueue(ctx, cfg.Queue.Addr, cfg.Queue.Password, cfg.Queue.DB, cfg.Queue.Key)
		if err != nil {
			return nil, fmt.Errorf("initialize redis queue: %w", err)
		}
		return q, nil
	case "memory":
		return task.NewMemoryQueue(cfg.Queue.Capacity), nil
	default:
		return nil, fmt.Errorf("unknown queue provider: %s", cfg.Queue.Provider)
	}
}

// buildRegistry assembles the feed catalog: built-in descriptors plus the
// optional file and environment supplements.
func buildRegistry(cfg config.Config, logger *zap.Logger) (*feeds.Registry, error) {
	registry := feeds.Default()
	if cfg.Feeds.File != "" {
		extra, err := feeds.LoadFile(cfg.Feeds.File)
		if err != nil {
			return nil, fmt.Errorf("load feeds file: %w", err)
		}
		registry.Extend(extra)
		logger.Info("feed catalog extended from file",
			zap.String("path", cfg.Feeds.File), zap.Int("feeds", len(extra)))
	}
	if cfg.Feeds.Extra != "" {
		extra := feeds.ParseExtra(cfg.Feeds.Extra)
		registry.Extend(extra)
		logger.Info("feed catalog extended from environment", zap.Int("feeds", len(extra)))
	}
	return registry, nil
}

// Close releases every held resource.
func (a *App) Close() {
	a.queue.Close()
	a.store.Close()
	_ = a.logger.Sync()
}

// Config returns the loaded configuration.
func (a *App) Config() config.Config { return a.cfg }

// Logger returns the shared zap logger.
func (a *App) Logger() *zap.Logger { return a.logger }

// Store returns the article store provider.
func (a *App) Store() store.Provider { return a.store }

// Queue returns the task queue provider.
func (a *App) Queue() task.Queue { return a.queue }

// Registry returns the assembled feed catalog.
func (a *App) Registry() *feeds.Registry { return a.registry }

// Parser returns the feed parser.
func (a *App) Parser() *parse.Parser { return a.parser }

// Ingestor returns the upsert pipeline.
func (a *App) Ingestor() *ingest.Ingestor { return a.ingestor }

// Handlers returns the task handlers for the worker pool.
func (a *App) Handlers() *pipeline.Handlers { return a.handlers }

// Ledger returns the process-wide crawl-failure ledger.
func (a *App) Ledger() *fetch.Ledger { return a.ledger }
