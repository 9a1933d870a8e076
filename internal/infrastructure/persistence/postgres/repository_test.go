package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rafabene/contenthub-backend/internal/domain/entities"
	"github.com/rafabene/contenthub-backend/internal/domain/repositories"
	"github.com/rafabene/contenthub-backend/internal/domain/valueobjects"
)

// setupTestDB abre um SQLite em memória com o mesmo schema do PostgreSQL.
// Os models usam apenas tipos portáveis, então o predicado das queries é
// idêntico nos dois bancos.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, AutoMigrate(db))
	return db
}

func newTestUser(t *testing.T, email string, role entities.Role) *entities.User {
	t.Helper()

	emailVO, err := valueobjects.NewEmail(email)
	require.NoError(t, err)

	return &entities.User{
		Email:        emailVO,
		Name:         "Test User",
		PasswordHash: "hash",
		Role:         role,
		IsActive:     true,
	}
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("cria e busca por email", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserRepository(db)

		user := newTestUser(t, "user@example.com", entities.RoleViewer)
		require.NoError(t, repo.Create(ctx, user))
		assert.NotEmpty(t, user.ID)

		found, err := repo.FindByEmail(ctx, "user@example.com")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, user.ID, found.ID)
		assert.Equal(t, entities.RoleViewer, found.Role)
	})

	t.Run("email ausente retorna nil sem erro", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserRepository(db)

		found, err := repo.FindByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("email duplicado viola o índice único", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserRepository(db)

		require.NoError(t, repo.Create(ctx, newTestUser(t, "dup@example.com", entities.RoleViewer)))
		err := repo.Create(ctx, newTestUser(t, "dup@example.com", entities.RoleEditor))
		assert.Error(t, err)
	})

	t.Run("atualiza papel e status da conta", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserRepository(db)

		user := newTestUser(t, "user@example.com", entities.RoleViewer)
		require.NoError(t, repo.Create(ctx, user))

		user.Role = entities.RoleEditor
		user.IsActive = false
		require.NoError(t, repo.Update(ctx, user))

		found, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, entities.RoleEditor, found.Role)
		assert.False(t, found.IsActive)
	})
}

func TestRefreshTokenRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("ciclo de vida do token persistido", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewRefreshTokenRepository(db)

		token := &entities.RefreshToken{
			Token:     "opaque-token",
			UserID:    "user-1",
			ExpiresAt: time.Now().Add(time.Hour),
		}
		require.NoError(t, repo.Create(ctx, token))
		assert.NotEmpty(t, token.ID)

		found, err := repo.FindByToken(ctx, "opaque-token")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "user-1", found.UserID)

		require.NoError(t, repo.DeleteByID(ctx, token.ID))

		found, err = repo.FindByToken(ctx, "opaque-token")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("DeleteByToken é idempotente", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewRefreshTokenRepository(db)

		require.NoError(t, repo.DeleteByToken(ctx, "does-not-exist"))
	})

	t.Run("DeleteExpired remove apenas os vencidos", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewRefreshTokenRepository(db)

		now := time.Now()
		require.NoError(t, repo.Create(ctx, &entities.RefreshToken{
			Token: "expired", UserID: "u", ExpiresAt: now.Add(-time.Hour),
		}))
		require.NoError(t, repo.Create(ctx, &entities.RefreshToken{
			Token: "live", UserID: "u", ExpiresAt: now.Add(time.Hour),
		}))

		removed, err := repo.DeleteExpired(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, int64(1), removed)

		live, err := repo.FindByToken(ctx, "live")
		require.NoError(t, err)
		assert.NotNil(t, live)
	})
}

func TestContentRepository(t *testing.T) {
	ctx := context.Background()

	seedContent := func(t *testing.T, repo repositories.ContentRepository, slug, authorID string, status entities.ContentStatus, createdAt time.Time) *entities.Content {
		t.Helper()

		content := &entities.Content{
			Title:     "Title " + slug,
			Slug:      slug,
			Body:      "body",
			Status:    status,
			AuthorID:  authorID,
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		}
		require.NoError(t, repo.Create(ctx, content))
		return content
	}

	setup := func(t *testing.T) (*gorm.DB, repositories.ContentRepository, *entities.User, *entities.User) {
		db := setupTestDB(t)
		userRepo := NewUserRepository(db)

		editor := newTestUser(t, "editor@example.com", entities.RoleEditor)
		require.NoError(t, userRepo.Create(ctx, editor))
		other := newTestUser(t, "other@example.com", entities.RoleEditor)
		require.NoError(t, userRepo.Create(ctx, other))

		return db, NewContentRepository(db), editor, other
	}

	t.Run("busca por slug embute o autor", func(t *testing.T) {
		_, repo, editor, _ := setup(t)
		seedContent(t, repo, "with-author", editor.ID, entities.StatusPublished, time.Now())

		found, err := repo.FindBySlug(ctx, "with-author")
		require.NoError(t, err)
		require.NotNil(t, found)
		require.NotNil(t, found.Author)
		assert.Equal(t, editor.ID, found.Author.ID)
		assert.Equal(t, "editor@example.com", found.Author.Email)
	})

	t.Run("slug duplicado viola o índice único", func(t *testing.T) {
		_, repo, editor, _ := setup(t)
		seedContent(t, repo, "taken", editor.ID, entities.StatusDraft, time.Now())

		err := repo.Create(ctx, &entities.Content{
			Title: "T", Slug: "taken", Body: "b",
			Status: entities.StatusDraft, AuthorID: editor.ID,
		})
		assert.Error(t, err)
	})

	t.Run("escopo PublishedOnly filtra por cima de tudo", func(t *testing.T) {
		_, repo, editor, _ := setup(t)
		base := time.Now().Add(-time.Hour)
		seedContent(t, repo, "draft", editor.ID, entities.StatusDraft, base)
		seedContent(t, repo, "published", editor.ID, entities.StatusPublished, base.Add(time.Minute))

		filters := repositories.ContentFilters{
			Scope: repositories.ListScope{PublishedOnly: true},
		}
		found, err := repo.FindMany(ctx, filters)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "published", found[0].Slug)

		total, err := repo.Count(ctx, filters)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("escopo OwnOrPublishedFor combina autoria e status", func(t *testing.T) {
		_, repo, editor, other := setup(t)
		base := time.Now().Add(-time.Hour)
		seedContent(t, repo, "my-draft", editor.ID, entities.StatusDraft, base)
		seedContent(t, repo, "their-draft", other.ID, entities.StatusDraft, base.Add(time.Minute))
		seedContent(t, repo, "their-published", other.ID, entities.StatusPublished, base.Add(2*time.Minute))

		filters := repositories.ContentFilters{
			Scope: repositories.ListScope{OwnOrPublishedFor: editor.ID},
		}
		found, err := repo.FindMany(ctx, filters)
		require.NoError(t, err)
		require.Len(t, found, 2)

		slugs := []string{found[0].Slug, found[1].Slug}
		assert.Contains(t, slugs, "my-draft")
		assert.Contains(t, slugs, "their-published")
	})

	t.Run("escopo do editor com filtro DRAFT devolve só os próprios rascunhos", func(t *testing.T) {
		_, repo, editor, other := setup(t)
		base := time.Now().Add(-time.Hour)
		seedContent(t, repo, "my-draft", editor.ID, entities.StatusDraft, base)
		seedContent(t, repo, "their-draft", other.ID, entities.StatusDraft, base.Add(time.Minute))

		draft := entities.StatusDraft
		filters := repositories.ContentFilters{
			Status: &draft,
			Scope:  repositories.ListScope{OwnOrPublishedFor: editor.ID},
		}
		found, err := repo.FindMany(ctx, filters)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "my-draft", found[0].Slug)
	})

	t.Run("paginação do mais recente para o mais antigo", func(t *testing.T) {
		_, repo, editor, _ := setup(t)
		base := time.Now().Add(-time.Hour)
		for i, slug := range []string{"oldest", "middle", "newest"} {
			seedContent(t, repo, slug, editor.ID, entities.StatusPublished,
				base.Add(time.Duration(i)*time.Minute))
		}

		filters := repositories.ContentFilters{Page: 1, Limit: 2}
		found, err := repo.FindMany(ctx, filters)
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, "newest", found[0].Slug)
		assert.Equal(t, "middle", found[1].Slug)

		filters.Page = 2
		found, err = repo.FindMany(ctx, filters)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "oldest", found[0].Slug)
	})

	t.Run("atualização preserva publishedAt", func(t *testing.T) {
		_, repo, editor, _ := setup(t)
		publishedAt := time.Now().Add(-24 * time.Hour).Truncate(time.Second)

		content := seedContent(t, repo, "keeper", editor.ID, entities.StatusPublished, time.Now())
		content.PublishedAt = &publishedAt
		require.NoError(t, repo.Update(ctx, content))

		found, err := repo.FindByID(ctx, content.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		require.NotNil(t, found.PublishedAt)
		assert.True(t, found.PublishedAt.Equal(publishedAt))
	})
}

func TestUnitOfWork(t *testing.T) {
	ctx := context.Background()

	t.Run("commit persiste todas as escritas", func(t *testing.T) {
		db := setupTestDB(t)
		uow := NewUnitOfWork(db)
		userRepo := NewUserRepository(db)
		tokenRepo := NewRefreshTokenRepository(db)

		err := uow.WithTransaction(ctx, func(txCtx context.Context) error {
			user := newTestUser(t, "tx@example.com", entities.RoleViewer)
			if err := userRepo.Create(txCtx, user); err != nil {
				return err
			}
			return tokenRepo.Create(txCtx, &entities.RefreshToken{
				Token: "tx-token", UserID: user.ID, ExpiresAt: time.Now().Add(time.Hour),
			})
		})
		require.NoError(t, err)

		user, err := userRepo.FindByEmail(ctx, "tx@example.com")
		require.NoError(t, err)
		assert.NotNil(t, user)

		token, err := tokenRepo.FindByToken(ctx, "tx-token")
		require.NoError(t, err)
		assert.NotNil(t, token)
	})

	t.Run("erro desfaz todas as escritas", func(t *testing.T) {
		db := setupTestDB(t)
		uow := NewUnitOfWork(db)
		userRepo := NewUserRepository(db)

		sentinel := assert.AnError
		err := uow.WithTransaction(ctx, func(txCtx context.Context) error {
			if err := userRepo.Create(txCtx, newTestUser(t, "rollback@example.com", entities.RoleViewer)); err != nil {
				return err
			}
			return sentinel
		})
		assert.ErrorIs(t, err, sentinel)

		user, err := userRepo.FindByEmail(ctx, "rollback@example.com")
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestCategoryRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("cria, lista em ordem alfabética e deleta", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewCategoryRepository(db)

		require.NoError(t, repo.Create(ctx, &entities.Category{Name: "Technology", Slug: "technology"}))
		require.NoError(t, repo.Create(ctx, &entities.Category{Name: "Business", Slug: "business"}))

		categories, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, categories, 2)
		assert.Equal(t, "Business", categories[0].Name)
		assert.Equal(t, "Technology", categories[1].Name)

		found, err := repo.FindBySlug(ctx, "business")
		require.NoError(t, err)
		require.NotNil(t, found)

		require.NoError(t, repo.Delete(ctx, found.ID))
		gone, err := repo.FindBySlug(ctx, "business")
		require.NoError(t, err)
		assert.Nil(t, gone)
	})
}
