package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"inkpost/internal/config"
	"inkpost/internal/content/render"
	models "inkpost/internal/domain/models/blog"
	blogSvc "inkpost/internal/domain/services/blog"
	"inkpost/internal/repository/postgres"
	"inkpost/internal/service/blog"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed blogs")
	clearData := flag.Bool("clear-data", false, "Delete all rows (keep schema)")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("BLOCKED: Cannot run destructive operations (--drop-tables or --clear-data) in production environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}

	if *dropTables {
		log.Println("Dropping all tables...")
		if err := postgres.DropAll(ctx, repoConfig); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
	}

	if err := postgres.Migrate(ctx, repoConfig); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}

	if *schemaOnly {
		log.Println("Schema setup complete (schema-only mode)")
		return
	}

	if *clearData {
		if err := postgres.ClearData(ctx, repoConfig); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		log.Println("Data cleared")
		return
	}

	blogRepo := postgres.NewBlogRepository(repoConfig)
	commentRepo := postgres.NewCommentRepository(repoConfig)
	authorizer := blog.NewOwnerAuthorizer(blogRepo, commentRepo)
	userService := blog.NewUserService(postgres.NewUserRepository(repoConfig), blogRepo, logger)
	blogService := blog.NewBlogService(
		blogRepo,
		postgres.NewLikeRepository(repoConfig),
		postgres.NewTransactionManager(repoConfig),
		authorizer,
		render.New(cfg.PublicBaseURL),
		blog.Options{PopularTTL: cfg.PopularCacheTTL, ViewWindow: cfg.ViewWindow},
		logger,
	)
	commentService := blog.NewCommentService(commentRepo, authorizer, logger)

	author, err := userService.FindOrCreate(ctx, models.Identity{
		ProviderID: "seed-author",
		Email:      "author@inkpost.dev",
		Name:       "Seed Author",
	})
	if err != nil {
		log.Fatalf("Failed to create seed author: %v", err)
	}

	posts := seedPosts()
	for i, post := range posts {
		b, err := blogService.CreateBlog(ctx, author.ID, post)
		if err != nil {
			log.Printf("Failed to create blog %q: %v", post.Title, err)
			continue
		}
		log.Printf("Created blog %d/%d: %s (slug: %s)", i+1, len(posts), b.Title, b.Slug)

		if !b.Published {
			continue
		}
		if _, err := commentService.CreateComment(ctx, author.ID, &blogSvc.CreateCommentRequest{
			BlogID:  b.ID,
			Content: "Thanks for reading! Questions welcome below.",
		}); err != nil {
			log.Printf("Failed to comment on %q: %v", b.Title, err)
		}
	}

	log.Println("Seeding complete")
}
