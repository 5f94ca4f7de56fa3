package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	"folio/internal/auth"
	"folio/internal/config"
	"folio/internal/domain/repositories"
	"folio/internal/handler"
	"folio/internal/middleware"
	"folio/internal/repository/cache"
	"folio/internal/repository/memory"
	"folio/internal/repository/postgres"
	serviceAuth "folio/internal/service/auth"
	"folio/internal/service/media"
	servicePortfolio "folio/internal/service/portfolio"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" || cfg.Debug {
		logLevel = slog.LevelDebug
	}

	var logOut io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, cfg.LogMaxFiles)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOut = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Identity provider
	var jwtVerifier auth.TokenVerifier = auth.DisabledVerifier{}
	if cfg.JWKSURL != "" {
		var err error
		jwtVerifier, err = auth.NewJWTVerifier(ctx, cfg.JWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create JWT verifier: %v", err)
		}
	} else {
		logger.Warn("AUTH_URL not set, sign-in disabled and back office unreachable")
	}
	defer jwtVerifier.Close()

	// Persistence: Postgres when configured, otherwise an in-memory store
	var projectRepo repositories.ProjectRepository
	if cfg.DatabaseURL != "" {
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to create connection pool: %v", err)
		}
		defer pool.Close()

		tables := postgres.NewTableNames(cfg.TablePrefix)
		if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to ensure schema: %v", err)
		}
		logger.Info("database connected", "projects_table", tables.Projects)

		projectRepo = postgres.NewProjectRepository(&postgres.RepositoryConfig{
			Pool:   pool,
			Tables: tables,
			Logger: logger,
		})
	} else {
		if cfg.Environment == "prod" {
			log.Fatalf("DATABASE_URL is required in production")
		}
		logger.Warn("DATABASE_URL not set, using in-memory store (data is lost on restart)")
		projectRepo = memory.NewProjectRepository(logger)
	}

	// Listing cache
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Invalid REDIS_URL: %v", err)
		}
		client := redis.NewClient(opts)
		defer client.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = client.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatalf("Redis ping failed: %v", err)
		}

		projectRepo = cache.NewProjectRepository(projectRepo, client, cfg.CacheTTL, logger)
		logger.Info("listing cache enabled", "ttl", cfg.CacheTTL)
	}

	// Services
	authorizer := serviceAuth.NewOwnerAuthorizer(cfg.AdminUserID, logger)
	projectService := servicePortfolio.NewProjectService(projectRepo, cfg.DefaultLanguage, logger)
	catalogService := servicePortfolio.NewCatalogService(projectRepo, servicePortfolio.CatalogConfig{
		DefaultLanguage: cfg.DefaultLanguage,
		PageSize:        cfg.PageSize,
	}, logger)
	uploader := media.NewCloudinaryClient(media.Config{
		BaseURL:      cfg.CloudinaryBaseURL,
		CloudName:    cfg.CloudinaryCloudName,
		UploadPreset: cfg.CloudinaryUploadPreset,
	}, logger)

	logger.Info("services initialized")

	metrics := middleware.NewMetrics()
	mux := handler.NewRouter(handler.Handlers{
		Catalog:    handler.NewCatalogHandler(catalogService, logger),
		Projects:   handler.NewProjectHandler(projectService, logger),
		Media:      handler.NewMediaHandler(uploader, logger),
		Profile:    handler.NewProfileHandler(authorizer),
		Authorizer: authorizer,
		Metrics:    metrics,
	})

	// Build middleware chain
	// Order: CORS → Recovery → Auth → Routes (metrics wrap each route)
	var h http.Handler = mux
	h = middleware.Authenticate(jwtVerifier, logger)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Accept-Language", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  2 * time.Minute, // media uploads
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}()

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
	logger.Info("server stopped")
}
