package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"exam-paper-service/internal/app"
	"exam-paper-service/internal/config"
	"exam-paper-service/internal/generator"
	"exam-paper-service/internal/infra/memory"
	"exam-paper-service/internal/infra/postgres"
	rediscache "exam-paper-service/internal/infra/redis"
	transport "exam-paper-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the paper service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := resolvePort(portFlag, cfg)

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
	}

	var catalog memory.Catalog = memory.NewStaticCatalog(sampleBanks(), samplePatterns())
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		catalog = postgres.NewCatalog(pool)
	}

	catalogTTL := config.TTLDuration(cfg.Catalog.TTL, 10*time.Minute)
	var store app.CatalogStore
	if redisClient != nil {
		store = rediscache.NewCatalogCache(redisClient, catalog, catalogTTL)
	} else {
		store = memory.NewCatalogCache(catalog, catalogTTL)
	}

	var papers app.PaperStore
	switch {
	case cfg.Postgres.URL != "":
		db := postgres.OpenBun(cfg.Postgres.URL)
		defer db.Close()
		papers = postgres.NewPaperStore(db)
	case redisClient != nil:
		papers = rediscache.NewPaperStore(redisClient)
	default:
		papers = memory.NewPaperStore()
	}

	paperService := app.NewPaperService(store, store, papers, newGenerator(cfg), app.NewPaperFeed())
	catalogService := app.NewCatalogService(store)

	mux := http.NewServeMux()
	transport.NewHandler(paperService, catalogService).Register(mux)
	mux.HandleFunc("/ws/papers", transport.NewFeedHandler(paperService).ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting paper service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func newGenerator(cfg config.Config) *generator.Generator {
	var opts []generator.Option
	if cfg.Generator.Seed != nil {
		opts = append(opts, generator.WithSeed(*cfg.Generator.Seed))
	}
	if cfg.Generator.StrictDistribution {
		opts = append(opts, generator.WithStrictDistribution())
	}
	return generator.New(opts...)
}

// resolvePort prefers the --port flag (or PORT), then server.port, then 8080.
func resolvePort(portFlag string, cfg config.Config) string {
	if portFlag != "" {
		return portFlag
	}
	if cfg.Server.Port != "" {
		return cfg.Server.Port
	}
	return "8080"
}
