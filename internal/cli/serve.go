package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/kafka-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"example.com/dashboard/internal/api"
	"example.com/dashboard/internal/assistant"
	"example.com/dashboard/internal/auth"
	"example.com/dashboard/internal/config"
	"example.com/dashboard/internal/consumer"
	"example.com/dashboard/internal/dashboard"
	"example.com/dashboard/internal/domain"
	"example.com/dashboard/internal/feed"
	"example.com/dashboard/internal/logging"
	"example.com/dashboard/internal/persistence/memory"
	"example.com/dashboard/internal/persistence/postgres"
	"example.com/dashboard/internal/persistence/sqlite"
	"example.com/dashboard/internal/publisher"
	httptransport "example.com/dashboard/internal/transport/http"
)

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard API and activity feed",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}

	RootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tasks, closeTasks, err := openTaskRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeTasks()

	responder, err := newResponder(ctx, cfg)
	if err != nil {
		return err
	}

	store := feed.NewStore(cfg.FeedBound)
	store.Seed(feed.SeedRecords(time.Now().UTC()))

	g, gctx := errgroup.WithContext(ctx)

	var recorder dashboard.ActivityRecorder = dashboard.LocalRecorder{Sink: store}
	switch cfg.FeedSource {
	case config.FeedSourceKafka:
		producer := publisher.NewKafkaProducer(cfg.KafkaBrokers, publisher.WithProducerLogger(logger.Named("producer")))
		defer producer.Close()
		recorder = newPublisher(cfg, producer)

		reader := kafka.NewReader(kafka.ReaderConfig{
			Brokers:         cfg.KafkaBrokers,
			GroupID:         cfg.ConsumerGroupID,
			Topic:           cfg.FeedTopic,
			MinBytes:        1,
			MaxBytes:        10e6,
			CommitInterval:  time.Second,
			ReadLagInterval: -1,
		})
		defer reader.Close()

		proc := consumer.NewProcessor(reader, consumer.NewFeedHandler(store), consumer.WithLogger(logger.Named("consumer")))
		g.Go(func() error {
			logger.Info("feed consumer started",
				zap.String("topic", cfg.FeedTopic),
				zap.String("group", cfg.ConsumerGroupID))
			if err := proc.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("feed consumer: %w", err)
			}
			return nil
		})
	default:
		ticker := feed.NewTicker(cfg.FeedTickInterval, store, feed.WithLogger(logger.Named("ticker")))
		g.Go(func() error {
			logger.Info("feed ticker started", zap.Duration("interval", cfg.FeedTickInterval))
			return ticker.Run(gctx)
		})
	}

	handler := api.NewHandler(api.Deps{
		Feed:     store,
		Sessions: dashboard.NewSessions(),
		Catalog:  dashboard.NewCatalog(),
		Actions: dashboard.NewService(tasks, recorder,
			dashboard.WithLogger(logger.Named("quick_actions"))),
		Conversations: assistant.NewConversations(responder,
			assistant.WithLogger(logger.Named("assistant"))),
		Logger: logger.Named("api"),
	})
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())

	authMiddleware := auth.NewMiddleware(auth.Config{Secret: cfg.JWTSecret, Issuer: cfg.JWTIssuer})
	server := httptransport.NewServer(
		httptransport.DefaultServerConfig(cfg.HTTPAddress),
		httptransport.CORS(cfg.AllowedOrigin)(logging.Middleware(logger.Named("http"))(authMiddleware.Wrap(mux))),
	)

	g.Go(func() error {
		logger.Info("dashboard listening", zap.String("address", cfg.HTTPAddress))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown failed", zap.Error(err))
		}
		return nil
	})

	err = g.Wait()
	logger.Info("dashboard stopped")
	return err
}

func openTaskRepository(ctx context.Context, cfg config.Config) (domain.TaskRepository, func(), error) {
	switch cfg.TaskStore {
	case config.TaskStorePostgres:
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		repo := postgres.NewTaskRepository(pool)
		if err := repo.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("migrate postgres: %w", err)
		}
		return repo, pool.Close, nil
	case config.TaskStoreSQLite:
		repo, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { _ = repo.Close() }, nil
	default:
		return memory.NewTaskRepository(), func() {}, nil
	}
}

func newPublisher(cfg config.Config, producer *publisher.KafkaProducer) *publisher.Publisher {
	if cfg.SchemaRegistryURL == "" {
		return publisher.NewPublisher(producer, nil, cfg.FeedTopic)
	}
	return publisher.NewPublisher(producer, publisher.NewSchemaRegistryClient(cfg.SchemaRegistryURL), cfg.FeedTopic)
}

func newResponder(ctx context.Context, cfg config.Config) (assistant.Responder, error) {
	if cfg.AssistantProvider == config.AssistantGenAI {
		if cfg.GenAIAPIKey == "" {
			return nil, errors.New("GENAI_API_KEY is required for the genai assistant")
		}
		return assistant.NewGenAIResponder(ctx, cfg.GenAIAPIKey, cfg.GenAIModel)
	}
	return assistant.PlaceholderResponder{Latency: cfg.AssistantLatency}, nil
}
