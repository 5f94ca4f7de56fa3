package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"folio/internal/config"
	"folio/internal/domain/models/content"
	"folio/internal/domain/models/portfolio"
	"folio/internal/domain/services"
	"folio/internal/repository/postgres"
	servicePortfolio "folio/internal/service/portfolio"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

// fixtureFile is the YAML seed format
type fixtureFile struct {
	Projects []fixture `yaml:"projects"`
}

type fixture struct {
	Title        string   `yaml:"title"`
	Description  string   `yaml:"description"`
	Category     string   `yaml:"category"`
	Tags         []string `yaml:"tags"`
	CoverURL     string   `yaml:"cover_url"`
	IsRecentWork bool     `yaml:"is_recent_work"`
	Publish      bool     `yaml:"publish"`
	Content      any      `yaml:"content"`
}

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed projects")
	clearData := flag.Bool("clear-data", false, "Delete all projects (keep schema)")
	fixturePath := flag.String("fixtures", "", "YAML fixture file (defaults to the built-in sample portfolio)")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("🚫 BLOCKED: Cannot run destructive operations (--drop-tables or --clear-data) in production environment")
	}
	if cfg.DatabaseURL == "" {
		log.Fatalf("DATABASE_URL is required")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	fixtures, err := loadFixtures(*fixturePath)
	if err != nil {
		log.Fatalf("Failed to load fixtures: %v", err)
	}

	switch {
	case *clearData:
		log.Printf("🧹 Clearing data only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	case *schemaOnly:
		log.Printf("🏗️  Setting up schema only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	default:
		log.Printf("🌱 Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	}

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Println("🗑️  Dropping all tables...")
		if err := postgres.DropTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("✅ Tables dropped")
	}

	log.Println("📋 Ensuring database schema is up to date...")
	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("✅ Schema ready")

	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	log.Println("⚠️  Clearing existing projects...")
	if err := postgres.ClearData(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to clear data: %v", err)
	}
	if *clearData {
		log.Println("✅ Data cleared successfully")
		return
	}

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	projectRepo := postgres.NewProjectRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)
	projectService := servicePortfolio.NewProjectService(projectRepo, cfg.DefaultLanguage, logger)

	// All or nothing: a bad fixture leaves the table empty
	log.Printf("📝 Seeding %d projects...", len(fixtures))
	err = txManager.ExecTx(ctx, func(txCtx context.Context) error {
		for i, f := range fixtures {
			req, err := f.request()
			if err != nil {
				return fmt.Errorf("fixture %d (%s): %w", i+1, f.Title, err)
			}
			project, err := projectService.CreateProject(txCtx, req)
			if err != nil {
				return fmt.Errorf("fixture %d (%s): %w", i+1, f.Title, err)
			}
			log.Printf("✅ Created project %d/%d: %s (ID: %s, status: %s)",
				i+1, len(fixtures), project.Title, project.ID, project.Status)
		}
		return nil
	})
	if err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("🎉 Seeding complete!")
}

func loadFixtures(path string) ([]fixture, error) {
	data := defaultFixtures
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, err
		}
	}

	var file fixtureFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	return file.Projects, nil
}

func (f fixture) request() (*services.CreateProjectRequest, error) {
	req := &services.CreateProjectRequest{
		Title:        f.Title,
		Description:  f.Description,
		Category:     portfolio.Category(f.Category),
		Tags:         f.Tags,
		IsRecentWork: f.IsRecentWork,
		Publish:      f.Publish,
	}
	if f.CoverURL != "" {
		req.CoverURL = &f.CoverURL
	}
	if f.Content != nil {
		body, err := content.BodyFromValue(f.Content)
		if err != nil {
			return nil, fmt.Errorf("content: %w", err)
		}
		req.Content = body
	}
	return req, nil
}
