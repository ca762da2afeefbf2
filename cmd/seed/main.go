package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"hifadhi/internal/config"
	"hifadhi/internal/domain/services"
	"hifadhi/internal/repository/postgres"
	"hifadhi/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop the items table before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed demo items")
	clearData := flag.Bool("clear-data", false, "Clear all items (keep schema)")
	// The user id is an opaque string from the identity provider, not
	// necessarily a UUID
	seedUser := flag.String("user", "demo-user", "User ID to own seeded items")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("🚫 BLOCKED: Cannot run destructive operations (--drop-tables or --clear-data) in production environment")
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	if *clearData {
		log.Printf("🧹 Clearing data only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	} else if *schemaOnly {
		log.Printf("🏗️  Setting up schema only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	} else {
		log.Printf("🌱 Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	}

	// Create database connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Drop tables if requested
	if *dropTables {
		log.Println("🗑️  Dropping items table...")
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+tables.Items+" CASCADE"); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("✅ Tables dropped")
	}

	// Run schema to ensure tables exist
	log.Println("📋 Ensuring database schema is up to date...")
	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("✅ Schema ready")

	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	if *clearData {
		log.Println("🧹 Clearing existing items...")
		if _, err := pool.Exec(ctx, "DELETE FROM "+tables.Items); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		log.Println("✅ Data cleared successfully")
		return
	}

	// Create repository and service
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	itemRepo := postgres.NewItemRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)
	itemService := service.NewItemService(itemRepo, txManager, logger)

	// Seed a demo tree
	log.Println("📝 Seeding demo folder tree...")
	if err := seedDemoTree(ctx, itemService, *seedUser); err != nil {
		log.Fatalf("Failed to seed demo tree: %v", err)
	}

	log.Println("🎉 Seeding complete!")
}

// runSchema creates the items table and its indexes if they don't exist
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	// Enable UUID extension
	if _, err := pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\""); err != nil {
		return err
	}

	createItems := `
		CREATE TABLE IF NOT EXISTS ` + tables.Items + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			name TEXT NOT NULL,
			path TEXT NOT NULL,
			size BIGINT NOT NULL DEFAULT 0,
			type TEXT NOT NULL,
			file_url TEXT,
			thumbnail_url TEXT,
			user_id TEXT NOT NULL,
			parent_id UUID REFERENCES ` + tables.Items + `(id) ON DELETE CASCADE,
			is_folder BOOLEAN NOT NULL DEFAULT FALSE,
			is_starred BOOLEAN NOT NULL DEFAULT FALSE,
			is_trash BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createItems); err != nil {
		return err
	}

	// Indexes: parent listing, owner-scoped path prefix scans, trash and star views
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `items_user_parent ON ` + tables.Items + `(user_id, parent_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `items_user_path ON ` + tables.Items + `(user_id, path text_pattern_ops)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `items_user_trash ON ` + tables.Items + `(user_id) WHERE is_trash`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `items_user_starred ON ` + tables.Items + `(user_id) WHERE is_starred`,
	}
	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return err
		}
	}

	return nil
}

// seedDemoTree builds a small folder hierarchy with a few files through the
// service layer so paths are computed the same way the server computes them.
func seedDemoTree(ctx context.Context, itemService services.ItemService, userID string) error {
	docs, err := itemService.CreateFolder(ctx, &services.CreateFolderRequest{
		UserID: userID,
		Name:   "Documents",
	})
	if err != nil {
		return err
	}
	log.Printf("✅ Created folder: %s (ID: %s)", docs.Name, docs.ID)

	reports, err := itemService.CreateFolder(ctx, &services.CreateFolderRequest{
		UserID:   userID,
		Name:     "Reports",
		ParentID: &docs.ID,
	})
	if err != nil {
		return err
	}
	log.Printf("✅ Created folder: %s (ID: %s)", reports.Name, reports.ID)

	photos, err := itemService.CreateFolder(ctx, &services.CreateFolderRequest{
		UserID: userID,
		Name:   "Photos",
	})
	if err != nil {
		return err
	}
	log.Printf("✅ Created folder: %s (ID: %s)", photos.Name, photos.ID)

	files := []*services.CreateFileRequest{
		{
			UserID:   userID,
			Name:     "notes.txt",
			ParentID: &docs.ID,
			Size:     2048,
			Type:     "text/plain",
			FileURL:  "https://example.com/demo/notes.txt",
		},
		{
			UserID:   userID,
			Name:     "q3-summary.pdf",
			ParentID: &reports.ID,
			Size:     150_000,
			Type:     "application/pdf",
			FileURL:  "https://example.com/demo/q3-summary.pdf",
		},
		{
			UserID:   userID,
			Name:     "sunset.jpg",
			ParentID: &photos.ID,
			Size:     500_000,
			Type:     "image/jpeg",
			FileURL:  "https://example.com/demo/sunset.jpg",
		},
	}
	for _, req := range files {
		file, err := itemService.CreateFile(ctx, req)
		if err != nil {
			return err
		}
		log.Printf("✅ Created file: %s%s (%d bytes)", file.Path, file.Name, file.Size)
	}

	return nil
}
