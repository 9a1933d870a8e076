package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rafabene/contenthub-backend/internal/domain/entities"
	"github.com/rafabene/contenthub-backend/internal/domain/repositories"
)

// CategoryRepository implementa repositories.CategoryRepository
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository cria um novo CategoryRepository
func NewCategoryRepository(db *gorm.DB) repositories.CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *entities.Category) error {
	model := r.toModel(category)
	if model.ID == "" {
		model.ID = uuid.NewString()
	}

	db := getDB(ctx, r.db)
	if err := db.Create(model).Error; err != nil {
		return err
	}

	category.ID = model.ID
	return nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*entities.Category, error) {
	var model CategoryModel

	db := getDB(ctx, r.db)
	if err := db.Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model), nil
}

func (r *CategoryRepository) FindBySlug(ctx context.Context, slug string) (*entities.Category, error) {
	var model CategoryModel

	db := getDB(ctx, r.db)
	if err := db.Where("slug = ?", slug).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model), nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]*entities.Category, error) {
	var models []*CategoryModel

	db := getDB(ctx, r.db)
	if err := db.Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	categories := make([]*entities.Category, 0, len(models))
	for _, model := range models {
		categories = append(categories, r.toEntity(model))
	}
	return categories, nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *entities.Category) error {
	db := getDB(ctx, r.db)
	return db.Save(r.toModel(category)).Error
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	db := getDB(ctx, r.db)
	return db.Where("id = ?", id).Delete(&CategoryModel{}).Error
}

// Conversores
func (r *CategoryRepository) toModel(category *entities.Category) *CategoryModel {
	return &CategoryModel{
		ID:          category.ID,
		Name:        category.Name,
		Slug:        category.Slug,
		Description: category.Description,
	}
}

func (r *CategoryRepository) toEntity(model *CategoryModel) *entities.Category {
	return &entities.Category{
		ID:          model.ID,
		Name:        model.Name,
		Slug:        model.Slug,
		Description: model.Description,
	}
}
