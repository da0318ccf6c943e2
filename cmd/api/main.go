// cmd/api/main.go

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"chezvous/internal/adapter/cache"
	"chezvous/internal/adapter/storage"
	"chezvous/internal/config"
	"chezvous/internal/server"
	"chezvous/internal/service/analysis"
	"chezvous/internal/service/geocode"
	"chezvous/internal/service/neighborhood"
	"chezvous/internal/service/social"
	transportService "chezvous/internal/service/transport"
)

func main() {
	// Load .env if present, real environment wins
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logging
	logger, err := initLogger(cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Initialize dependencies
	db, err := initDatabase(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	redisClient := initRedis(cfg.Redis)
	defer redisClient.Close()

	// Initialize adapters
	reportStore := storage.NewReportStore(db)
	reportCache := cache.NewReportCache(redisClient, cfg.Cache.TTL)

	if err := reportCache.HealthCheck(ctx); err != nil {
		logger.Warn("Redis unreachable, reports will not be cached", zap.Error(err))
	}

	// Initialize services
	geocoder := geocode.NewNominatimGeocoder(geocode.NominatimConfig{
		BaseURL:        cfg.Geocoder.BaseURL,
		UserAgent:      cfg.Geocoder.UserAgent,
		RequestTimeout: cfg.Geocoder.RequestTimeout,
		RatePerSecond:  cfg.Geocoder.RatePerSecond,
	})

	stationLocator := transportService.NewOverpassLocator(transportService.OverpassLocatorConfig{
		BaseURL:        cfg.Transport.OverpassURL,
		UserAgent:      cfg.Transport.UserAgent,
		RequestTimeout: cfg.Transport.RequestTimeout,
	})

	connectivityAnalyzer := transportService.NewConnectivityAnalyzer(
		stationLocator,
		transportService.AnalyzerConfig{
			SearchRadius: cfg.Transport.SearchRadius,
		},
	)

	redditClient := social.NewRedditClient(social.RedditClientConfig{
		BaseURL:        cfg.Social.RedditBaseURL,
		Subreddit:      cfg.Social.Subreddit,
		RequestTimeout: cfg.Social.RequestTimeout,
		MaxPosts:       cfg.Social.MaxPosts,
	})

	neighborhoodAnalyzer := analysis.NewNeighborhoodAnalyzer(
		analysis.NewClient(cfg.Analysis.APIKey),
		analysis.AnalyzerConfig{
			Model:     cfg.Analysis.Model,
			MaxTokens: int64(cfg.Analysis.MaxTokens),
		},
	)

	// Initialize the analysis pipeline
	neighborhoodService := neighborhood.NewService(
		geocoder,
		connectivityAnalyzer,
		redditClient,
		neighborhoodAnalyzer,
		reportCache,
		reportStore,
	)

	// Initialize HTTP server
	httpServer := server.NewServer(
		cfg.Server,
		neighborhoodService,
		connectivityAnalyzer,
		reportStore,
	)

	// Start HTTP server
	go func() {
		logger.Info("Starting HTTP server",
			zap.String("host", cfg.Server.Host),
			zap.Int("port", cfg.Server.Port))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	<-shutdown
	logger.Info("Shutdown signal received")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	// Graceful shutdown
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	logger.Info("Shutdown complete")
}

// Initialize the global logger
func initLogger(environment string) (*zap.Logger, error) {
	if environment == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// Initialize database connection
func initDatabase(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	connString := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse connection string: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.MaxIdleConns)
	poolConfig.MaxConnLifetime = cfg.MaxLifetime

	db, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	// Test connection
	if err := db.Ping(ctx); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return db, nil
}

// Initialize Redis client
func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}
