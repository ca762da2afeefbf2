package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"hifadhi/internal/auth"
	"hifadhi/internal/blobstore"
	"hifadhi/internal/config"
	"hifadhi/internal/handler"
	"hifadhi/internal/middleware"
	"hifadhi/internal/repository/postgres"
	"hifadhi/internal/service"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create JWT verifier against the identity provider's JWKS endpoint
	jwtVerifier, err := auth.NewJWTVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	itemRepo := postgres.NewItemRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Blob store
	mediaKinds, err := blobstore.NewMediaRegistry()
	if err != nil {
		log.Fatalf("Failed to load media kind registry: %v", err)
	}
	blobs := setupBlobStore(cfg, mediaKinds, logger)

	// Create services
	itemService := service.NewItemService(itemRepo, txManager, logger)
	trashService := service.NewTrashService(itemRepo, txManager, blobs, logger)
	treeService := service.NewTreeService(itemRepo, logger)

	// Create handlers
	itemHandler := handler.NewItemHandler(itemService, logger)
	folderHandler := handler.NewFolderHandler(itemService, treeService, trashService, logger)
	trashHandler := handler.NewTrashHandler(trashService, logger)
	uploadHandler := handler.NewUploadHandler(itemService, blobs, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", itemHandler.HealthCheck)

	// Folder routes
	mux.HandleFunc("POST /api/folders", folderHandler.CreateFolder)
	mux.HandleFunc("GET /api/folders/{id}", folderHandler.GetFolder)
	mux.HandleFunc("GET /api/folders/{id}/size", folderHandler.GetFolderSize)
	mux.HandleFunc("GET /api/folders/{id}/breadcrumbs", folderHandler.GetBreadcrumbs)

	// Item routes
	mux.HandleFunc("GET /api/items", itemHandler.ListItems)
	mux.HandleFunc("GET /api/items/{id}", itemHandler.GetItem)
	mux.HandleFunc("PATCH /api/items/{id}", itemHandler.RenameItem)
	mux.HandleFunc("DELETE /api/items/{id}", trashHandler.DeleteForever)
	mux.HandleFunc("POST /api/items/{id}/trash", trashHandler.ToggleTrashed)
	mux.HandleFunc("POST /api/items/{id}/star", itemHandler.ToggleStarred)

	// Collection views
	mux.HandleFunc("GET /api/trash", trashHandler.ListTrashed)
	mux.HandleFunc("GET /api/starred", itemHandler.ListStarred)

	// Upload
	mux.HandleFunc("POST /api/upload", uploadHandler.Upload)

	// Build middleware chain
	var httpHandler http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	httpHandler = middleware.AuthMiddleware(jwtVerifier)(httpHandler)
	httpHandler = middleware.Recovery(logger)(httpHandler)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	httpHandler = corsHandler.Handler(httpHandler)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupBlobStore wires the S3-backed blob store, or the in-memory store
// when no bucket is configured (local development without object storage).
func setupBlobStore(cfg *config.Config, kinds *blobstore.MediaRegistry, logger *slog.Logger) blobstore.BlobStore {
	if cfg.S3Bucket == "" {
		logger.Warn("S3_BUCKET not set, using in-memory blob store")
		return blobstore.NewInMemoryBlobStore(kinds)
	}

	opts := s3.Options{
		Region: cfg.S3Region,
		Credentials: aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
			return aws.Credentials{
				AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
				SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			}, nil
		}),
	}
	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
		opts.UsePathStyle = true
	}
	client := s3.New(opts)

	logger.Info("blob store configured", "bucket", cfg.S3Bucket, "region", cfg.S3Region)
	return blobstore.NewS3BlobStore(client, cfg.S3Bucket, cfg.BlobBaseURL, cfg.MediaBaseURL, kinds)
}
