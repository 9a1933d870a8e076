package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rafabene/contenthub-backend/internal/domain/entities"
	"github.com/rafabene/contenthub-backend/internal/domain/repositories"
)

// ContentRepository implementa repositories.ContentRepository
type ContentRepository struct {
	db *gorm.DB
}

// NewContentRepository cria um novo ContentRepository
func NewContentRepository(db *gorm.DB) repositories.ContentRepository {
	return &ContentRepository{db: db}
}

func (r *ContentRepository) Create(ctx context.Context, content *entities.Content) error {
	model := r.toModel(content)
	if model.ID == "" {
		model.ID = uuid.NewString()
	}

	db := getDB(ctx, r.db)
	if err := db.Omit("Author", "Category").Create(model).Error; err != nil {
		return err
	}

	content.ID = model.ID
	content.CreatedAt = time.Unix(model.CreatedAt, 0)
	content.UpdatedAt = time.Unix(model.UpdatedAt, 0)
	return nil
}

func (r *ContentRepository) FindByID(ctx context.Context, id string) (*entities.Content, error) {
	var model ContentModel

	db := getDB(ctx, r.db)
	err := db.Preload("Author").Preload("Category").
		Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model), nil
}

func (r *ContentRepository) FindBySlug(ctx context.Context, slug string) (*entities.Content, error) {
	var model ContentModel

	db := getDB(ctx, r.db)
	err := db.Preload("Author").Preload("Category").
		Where("slug = ?", slug).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model), nil
}

func (r *ContentRepository) FindMany(ctx context.Context, filters repositories.ContentFilters) ([]*entities.Content, error) {
	var models []*ContentModel

	page := filters.Page
	if page < 1 {
		page = 1
	}
	limit := filters.Limit
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := getDB(ctx, r.db)
	query := applyFilters(db.Model(&ContentModel{}), filters)

	err := query.Preload("Author").Preload("Category").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	contents := make([]*entities.Content, 0, len(models))
	for _, model := range models {
		contents = append(contents, r.toEntity(model))
	}
	return contents, nil
}

func (r *ContentRepository) Count(ctx context.Context, filters repositories.ContentFilters) (int64, error) {
	var total int64

	db := getDB(ctx, r.db)
	query := applyFilters(db.Model(&ContentModel{}), filters)

	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *ContentRepository) Update(ctx context.Context, content *entities.Content) error {
	model := r.toModel(content)

	db := getDB(ctx, r.db)
	return db.Omit("Author", "Category").Save(model).Error
}

func (r *ContentRepository) Delete(ctx context.Context, id string) error {
	db := getDB(ctx, r.db)
	return db.Where("id = ?", id).Delete(&ContentModel{}).Error
}

// applyFilters monta o predicado compartilhado por FindMany e Count
func applyFilters(query *gorm.DB, filters repositories.ContentFilters) *gorm.DB {
	if filters.Status != nil {
		query = query.Where("status = ?", string(*filters.Status))
	}

	if filters.AuthorID != nil {
		query = query.Where("author_id = ?", *filters.AuthorID)
	}

	if filters.CategoryID != nil {
		query = query.Where("category_id = ?", *filters.CategoryID)
	}

	// O escopo do papel vale por cima de qualquer filtro do caller
	if filters.Scope.PublishedOnly {
		query = query.Where("status = ?", string(entities.StatusPublished))
	} else if filters.Scope.OwnOrPublishedFor != "" {
		query = query.Where("status = ? OR author_id = ?",
			string(entities.StatusPublished), filters.Scope.OwnOrPublishedFor)
	}

	return query
}

// Conversores
func (r *ContentRepository) toModel(content *entities.Content) *ContentModel {
	var publishedAt *int64
	if content.PublishedAt != nil {
		ts := content.PublishedAt.Unix()
		publishedAt = &ts
	}

	model := &ContentModel{
		ID:          content.ID,
		Title:       content.Title,
		Slug:        content.Slug,
		Body:        content.Body,
		Excerpt:     content.Excerpt,
		Status:      string(content.Status),
		AuthorID:    content.AuthorID,
		CategoryID:  content.CategoryID,
		PublishedAt: publishedAt,
	}

	// Zero value deixa o autoCreateTime/autoUpdateTime do GORM agir
	if !content.CreatedAt.IsZero() {
		model.CreatedAt = content.CreatedAt.Unix()
	}
	if !content.UpdatedAt.IsZero() {
		model.UpdatedAt = content.UpdatedAt.Unix()
	}

	return model
}

func (r *ContentRepository) toEntity(model *ContentModel) *entities.Content {
	var publishedAt *time.Time
	if model.PublishedAt != nil {
		ts := time.Unix(*model.PublishedAt, 0)
		publishedAt = &ts
	}

	content := &entities.Content{
		ID:          model.ID,
		Title:       model.Title,
		Slug:        model.Slug,
		Body:        model.Body,
		Excerpt:     model.Excerpt,
		Status:      entities.ContentStatus(model.Status),
		AuthorID:    model.AuthorID,
		CategoryID:  model.CategoryID,
		PublishedAt: publishedAt,
		CreatedAt:   time.Unix(model.CreatedAt, 0),
		UpdatedAt:   time.Unix(model.UpdatedAt, 0),
	}

	if model.Author.ID != "" {
		content.Author = &entities.AuthorSummary{
			ID:    model.Author.ID,
			Name:  model.Author.Name,
			Email: model.Author.Email,
		}
	}

	if model.Category != nil {
		content.Category = &entities.Category{
			ID:          model.Category.ID,
			Name:        model.Category.Name,
			Slug:        model.Category.Slug,
			Description: model.Category.Description,
		}
	}

	return content
}
