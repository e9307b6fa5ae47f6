package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inkpost/internal/auth"
	"inkpost/internal/config"
	"inkpost/internal/content/catalog"
	"inkpost/internal/content/render"
	"inkpost/internal/editor"
	"inkpost/internal/handler"
	"inkpost/internal/middleware"
	"inkpost/internal/repository/postgres"
	"inkpost/internal/service/blog"
	"inkpost/internal/service/upload"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging (stdout, plus a log file when LOG_DIR is set)
	logger, logCloser, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logCloser.Close()
	slog.SetDefault(logger) // Set as default logger

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Firebase ID token verification
	verifier, err := auth.NewFirebaseVerifier(cfg.FirebaseProjectID, cfg.FirebaseJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create token verifier: %v", err)
	}
	defer verifier.Close()

	// Create pgx connection pool
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	stat := pool.Stat()
	logger.Info("database connected",
		"max_conns", stat.MaxConns(),
		"total_conns", stat.TotalConns(),
	)

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}
	if err := postgres.Migrate(ctx, repoConfig); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	blogRepo := postgres.NewBlogRepository(repoConfig)
	commentRepo := postgres.NewCommentRepository(repoConfig)
	likeRepo := postgres.NewLikeRepository(repoConfig)
	userRepo := postgres.NewUserRepository(repoConfig)
	txManager := postgres.NewTransactionManager(repoConfig)

	// Content core
	renderer := render.New(cfg.PublicBaseURL)
	palette, err := catalog.Load()
	if err != nil {
		log.Fatalf("Failed to load section palette: %v", err)
	}

	imageStore, err := upload.NewImageStore(cfg.UploadDir, config.MaxUploadBytes, logger)
	if err != nil {
		log.Fatalf("Failed to prepare upload directory: %v", err)
	}

	// Create services
	authorizer := blog.NewOwnerAuthorizer(blogRepo, commentRepo)
	blogService := blog.NewBlogService(blogRepo, likeRepo, txManager, authorizer, renderer, blog.Options{
		PopularTTL: cfg.PopularCacheTTL,
		ViewWindow: cfg.ViewWindow,
	}, logger)
	commentService := blog.NewCommentService(commentRepo, authorizer, logger)
	userService := blog.NewUserService(userRepo, blogRepo, logger)

	// Editor sessions expire after DRAFT_IDLE_TIMEOUT without a change
	drafts := editor.NewRegistry(renderer, cfg.DraftIdleTimeout, logger)
	go drafts.Run(ctx, time.Minute)

	logger.Info("services initialized",
		"upload_dir", imageStore.Dir(),
		"public_base_url", cfg.PublicBaseURL,
	)

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()
	handler.Register(mux, &handler.Handlers{
		Health:  handler.NewHealthHandler(pool, logger),
		Blog:    handler.NewBlogHandler(blogService, logger),
		Comment: handler.NewCommentHandler(commentService, logger),
		User:    handler.NewUserHandler(userService, logger),
		Upload:  handler.NewUploadHandler(imageStore, config.MaxUploadBytes, logger),
		Content: handler.NewContentHandler(renderer, palette, logger),
		Draft:   handler.NewDraftHandler(drafts, blog.NewDraftStore(blogService), palette, logger),
	})

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → RequestID → RequestLogger → Auth → Recovery → Routes
	root = middleware.Recovery(logger)(root)
	root = middleware.NewAuthenticator(verifier, userService, logger).Middleware(root)
	root = middleware.RequestLogger(logger)(root)
	root = middleware.RequestID(root)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Origins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.Info("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}()

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
}
