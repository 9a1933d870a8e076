package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/rafabene/contenthub-backend/internal/domain/entities"
	"github.com/rafabene/contenthub-backend/internal/domain/repositories"
	"github.com/rafabene/contenthub-backend/internal/domain/valueobjects"
	"github.com/rafabene/contenthub-backend/internal/infrastructure/config"
	"github.com/rafabene/contenthub-backend/internal/infrastructure/logging"
	"github.com/rafabene/contenthub-backend/internal/infrastructure/persistence/postgres"
)

// Popula o banco com dados de desenvolvimento. Idempotente: registros
// já existentes (por email ou slug) são reaproveitados, nunca duplicados.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger := logging.NewSlogLogger(cfg.Logging.Level)

	db, err := postgres.NewDatabaseConnection(&cfg.Database, logger)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := postgres.AutoMigrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	ctx := context.Background()
	userRepo := postgres.NewUserRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	contentRepo := postgres.NewContentRepository(db)

	admin := seedUser(ctx, userRepo, "admin@example.com", "admin123", "Admin User", entities.RoleAdmin)
	editor := seedUser(ctx, userRepo, "editor@example.com", "editor123", "Editor User", entities.RoleEditor)
	seedUser(ctx, userRepo, "viewer@example.com", "viewer123", "Viewer User", entities.RoleViewer)

	technology := seedCategory(ctx, categoryRepo, "Technology", "technology", "Articles about technology")
	seedCategory(ctx, categoryRepo, "Business", "business", "Articles about business")

	seedContent(ctx, contentRepo, &entities.Content{
		Title:      "Welcome to the Platform",
		Slug:       "welcome-to-the-platform",
		Body:       "This is the first published article on the platform. It is visible to every authenticated user.",
		Excerpt:    "An introduction to the platform.",
		Status:     entities.StatusPublished,
		AuthorID:   admin.ID,
		CategoryID: &technology.ID,
	})

	seedContent(ctx, contentRepo, &entities.Content{
		Title:    "Getting Started Guide",
		Slug:     "getting-started-guide",
		Body:     "A draft guide that is still being written. Only its author and admins can see it.",
		Excerpt:  "Work in progress.",
		Status:   entities.StatusDraft,
		AuthorID: editor.ID,
	})

	logger.Info("seed completed")
}

func seedUser(ctx context.Context, repo repositories.UserRepository, email, password, name string, role entities.Role) *entities.User {
	existing, err := repo.FindByEmail(ctx, email)
	if err != nil {
		log.Fatalf("failed to look up user %s: %v", email, err)
	}
	if existing != nil {
		log.Printf("user %s already exists, skipping", email)
		return existing
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password for %s: %v", email, err)
	}

	emailVO, err := valueobjects.NewEmail(email)
	if err != nil {
		log.Fatalf("invalid seed email %s: %v", email, err)
	}

	user := &entities.User{
		Email:        emailVO,
		Name:         name,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	if err := repo.Create(ctx, user); err != nil {
		log.Fatalf("failed to create user %s: %v", email, err)
	}

	log.Printf("created user %s (%s)", email, role)
	return user
}

func seedCategory(ctx context.Context, repo repositories.CategoryRepository, name, slug, description string) *entities.Category {
	existing, err := repo.FindBySlug(ctx, slug)
	if err != nil {
		log.Fatalf("failed to look up category %s: %v", slug, err)
	}
	if existing != nil {
		log.Printf("category %s already exists, skipping", slug)
		return existing
	}

	category := &entities.Category{
		Name:        name,
		Slug:        slug,
		Description: description,
	}
	if err := repo.Create(ctx, category); err != nil {
		log.Fatalf("failed to create category %s: %v", slug, err)
	}

	log.Printf("created category %s", slug)
	return category
}

func seedContent(ctx context.Context, repo repositories.ContentRepository, content *entities.Content) {
	existing, err := repo.FindBySlug(ctx, content.Slug)
	if err != nil {
		log.Fatalf("failed to look up content %s: %v", content.Slug, err)
	}
	if existing != nil {
		log.Printf("content %s already exists, skipping", content.Slug)
		return
	}

	if content.Status == entities.StatusPublished {
		content.MarkPublished(time.Now())
	}

	if err := repo.Create(ctx, content); err != nil {
		log.Fatalf("failed to create content %s: %v", content.Slug, err)
	}

	log.Printf("created content %s (%s)", content.Slug, content.Status)
}
