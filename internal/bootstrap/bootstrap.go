package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocklab/geoqa/internal/config"
	"github.com/rocklab/geoqa/internal/core/decision"
	"github.com/rocklab/geoqa/internal/core/ports"
	"github.com/rocklab/geoqa/internal/core/usecase"
	"github.com/rocklab/geoqa/internal/corpus"
	"github.com/rocklab/geoqa/internal/embedding/hashed"
	"github.com/rocklab/geoqa/internal/index"
	"github.com/rocklab/geoqa/internal/infrastructure/llm/ollama"
	natsbus "github.com/rocklab/geoqa/internal/infrastructure/queue/nats"
	"github.com/rocklab/geoqa/internal/infrastructure/repository/postgres"
	"github.com/rocklab/geoqa/internal/infrastructure/resilience"
	"github.com/rocklab/geoqa/internal/observability/logging"
	"github.com/rocklab/geoqa/internal/observability/metrics"
)

type App struct {
	Config  config.Config
	Logger  *slog.Logger
	Metrics *metrics.HTTPServerMetrics

	Answerer  ports.QuestionAnswerer
	Refresher ports.IndexRefresher
	QueryLog  ports.QueryLogStore
	Bus       *natsbus.Bus
	Store     *corpus.Store
	Retriever ports.Retriever

	rebuild func(context.Context) error
	closeFn func()
}

// New wires the full pipeline. Postgres, NATS, and Ollama are each
// optional: an empty DSN or URL leaves that integration off and the
// service runs on its deterministic core.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	logger := logging.NewJSONLogger("geoqa-api", cfg.LogLevel)
	slog.SetDefault(logger)
	serverMetrics := metrics.NewHTTPServerMetrics("geoqa-api")

	docs, err := corpus.LoadFile(cfg.CorpusPath)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	store, err := corpus.NewStore(docs)
	if err != nil {
		return nil, fmt.Errorf("init corpus store: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultConfig(), logger)

	var client *ollama.Client
	if cfg.OllamaURL != "" {
		client = ollama.New(cfg.OllamaURL, cfg.OllamaGenModel, executor)
	}

	var embedder index.Embedder = hashed.New(cfg.EmbeddingDim)
	if cfg.EmbeddingBackend == "ollama" {
		if client == nil {
			return nil, fmt.Errorf("init embedder: EMBEDDING_BACKEND is ollama but OLLAMA_URL is empty")
		}
		embedder = ollama.NewEmbedder(client, cfg.OllamaEmbedModel)
	}
	idx := index.New(embedder)
	if err := idx.Rebuild(ctx, store.All()); err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}
	retriever := index.NewRetriever(idx, cfg.RetrievalTopK)

	var strategy ports.DecisionStrategy = decision.NewDeterministic()
	var generator ports.ResponseGenerator
	if client != nil {
		generator = ollama.NewGenerator(client)
		if cfg.DecisionEngine == "ollama" {
			strategy = decision.NewDelegated(
				ollama.NewBackend(client),
				decision.NewDeterministic(),
				time.Duration(cfg.DecisionTimeoutSeconds)*time.Second,
				logger,
			)
		}
	}

	answerer := usecase.NewAnswerUseCase(
		strategy,
		retriever,
		store,
		generator,
		cfg.RetrievalTopK,
		time.Duration(cfg.ResponseTimeoutSeconds)*time.Second,
		logger,
	)

	app := &App{
		Config:    cfg,
		Logger:    logger,
		Metrics:   serverMetrics,
		Answerer:  answerer,
		Store:     store,
		Retriever: retriever,
	}

	app.rebuild = func(ctx context.Context) error {
		if err := idx.Rebuild(ctx, store.All()); err != nil {
			serverMetrics.RecordIndexRebuild("geoqa-api", "error")
			return err
		}
		serverMetrics.RecordIndexRebuild("geoqa-api", "ok")
		logger.Info("index_rebuilt", "documents", store.Len())
		return nil
	}

	closers := make([]func(), 0, 2)

	if cfg.PostgresDSN != "" {
		db, err := postgres.OpenDB(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		repo := postgres.NewQueryLogRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		app.QueryLog = repo
		closers = append(closers, func() { _ = db.Close() })
	}

	if cfg.NATSURL != "" {
		bus, err := natsbus.New(cfg.NATSURL, cfg.NATSSubject, natsbus.Options{
			ResilienceExecutor: executor,
			Logger:             logger,
		})
		if err != nil {
			for _, c := range closers {
				c()
			}
			return nil, fmt.Errorf("init refresh bus: %w", err)
		}
		app.Bus = bus
		closers = append(closers, bus.Close)
	}

	ref := &refresher{rebuild: app.rebuild}
	if app.Bus != nil {
		ref.bus = app.Bus
	}
	app.Refresher = ref
	app.closeFn = func() {
		for _, c := range closers {
			c()
		}
	}
	return app, nil
}

// RebuildIndex re-embeds the corpus and atomically swaps the snapshot.
func (a *App) RebuildIndex(ctx context.Context) error {
	return a.rebuild(ctx)
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

// refresher broadcasts refresh requests when a bus is configured so
// every instance rebuilds; otherwise it rebuilds in process.
type refresher struct {
	bus     ports.RefreshBus
	rebuild func(context.Context) error
}

func (r *refresher) RequestRefresh(ctx context.Context) error {
	if r.bus != nil {
		return r.bus.PublishRefresh(ctx, "api refresh request")
	}
	return r.rebuild(ctx)
}
