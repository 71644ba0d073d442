// Package app is the composition root for the answer agent.
package app

import (
	"context"
	"fmt"
	"log"

	"agripulse/internal/agent"
	"agripulse/internal/agent/config"
	"agripulse/internal/agent/handler"
	"agripulse/internal/agent/server"
	"agripulse/internal/docstore"
	"agripulse/internal/evidence"
	"agripulse/internal/evidence/corpusstore"
	"agripulse/internal/provider"
)

type App struct {
	server *server.Server
	corpus corpusstore.Store
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Evidence sources
	corpus := newCorpusStore(cfg)
	web, err := newWebSearch(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build web search: %w", err)
	}
	coordinator := evidence.NewCoordinator(web, corpus)

	// Generation
	registry := provider.NewRegistry(ctx, provider.Credentials{
		GeminiAPIKey:     cfg.Providers.GeminiAPIKey,
		GeminiModel:      cfg.Providers.GeminiModel,
		DeepSeekAPIKey:   cfg.Providers.DeepSeekAPIKey,
		OpenRouterAPIKey: cfg.Providers.OpenRouterAPIKey,
		OpenRouterModel:  cfg.Providers.OpenRouterModel,
	})
	if registry.Empty() {
		log.Printf("no provider credentials configured; answers will carry setup instructions")
	}
	engine := provider.NewEngine(registry)

	// Lifecycle events for the system-health view
	events := handler.NewEventsHub()

	controller := agent.NewController(coordinator, engine, events)
	answerHandler := handler.NewAnswerHandler(controller, newDocumentStore(cfg))

	mux := server.NewMux(answerHandler, events)
	srv := server.New(cfg.Port, mux)

	return &App{server: srv, corpus: corpus}, nil
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	defer func() {
		_ = a.corpus.Close()
	}()
	return a.server.Shutdown(ctx)
}

func newCorpusStore(cfg *config.Config) corpusstore.Store {
	if cfg.Corpus.DSN == "" {
		log.Printf("corpus store: in-memory (CORPUS_PG_DSN not set)")
		return corpusstore.NewMemoryStore(nil)
	}
	s, err := corpusstore.NewPostgresStore(cfg.Corpus.DSN)
	if err != nil {
		log.Printf("corpus store unreachable, running without corpus evidence: %v", err)
		return corpusstore.NewMemoryStore(nil)
	}
	log.Printf("corpus store: postgres")
	return s
}

func newWebSearch(cfg *config.Config) (evidence.WebSearcher, error) {
	g := evidence.NewGoogleSearch(cfg.Search.GoogleAPIKey, cfg.Search.GoogleCX)
	if !g.Configured() {
		log.Printf("web search: not configured, running without web evidence")
		return g, nil
	}
	return evidence.NewCachedWebSearch(g, cfg.Search.CacheSize)
}

func newDocumentStore(cfg *config.Config) docstore.Store {
	if !cfg.Document.Enabled {
		return nil
	}
	s, err := docstore.NewS3Store(docstore.S3Config{
		Endpoint:  cfg.Document.Endpoint,
		Region:    cfg.Document.Region,
		AccessKey: cfg.Document.AccessKey,
		SecretKey: cfg.Document.SecretKey,
		Bucket:    cfg.Document.Bucket,
		UseSSL:    cfg.Document.UseSSL,
	})
	if err != nil {
		log.Printf("document store disabled: %v", err)
		return nil
	}
	log.Printf("document store: s3 bucket=%s endpoint=%s", cfg.Document.Bucket, cfg.Document.Endpoint)
	return s
}
