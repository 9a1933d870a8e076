package services

import (
	"context"

	"github.com/rafabene/contenthub-backend/internal/domain/entities"
	apperrors "github.com/rafabene/contenthub-backend/internal/domain/errors"
	"github.com/rafabene/contenthub-backend/internal/domain/ports"
	"github.com/rafabene/contenthub-backend/internal/domain/repositories"
)

// CategoryService contém a lógica de negócio para categorias
// (dados de referência; escrita restrita a ADMIN na camada de rotas)
type CategoryService struct {
	categoryRepo repositories.CategoryRepository
	logger       ports.Logger
}

// NewCategoryService cria um novo CategoryService
func NewCategoryService(categoryRepo repositories.CategoryRepository, logger ports.Logger) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// CategoryInput representa os dados para criar/atualizar uma categoria
type CategoryInput struct {
	Name        string
	Slug        string
	Description string
}

// List lista todas as categorias
func (s *CategoryService) List(ctx context.Context) ([]*entities.Category, error) {
	return s.categoryRepo.List(ctx)
}

// Get busca uma categoria por ID
func (s *CategoryService) Get(ctx context.Context, id string) (*entities.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperrors.ErrCategoryNotFound
	}
	return category, nil
}

// Create cria uma nova categoria
func (s *CategoryService) Create(ctx context.Context, input CategoryInput) (*entities.Category, error) {
	existing, err := s.categoryRepo.FindBySlug(ctx, input.Slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrSlugAlreadyExists
	}

	category := &entities.Category{
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("category created", "category_id", category.ID, "slug", category.Slug)
	return category, nil
}

// Update atualiza uma categoria existente
func (s *CategoryService) Update(ctx context.Context, id string, input CategoryInput) (*entities.Category, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Slug != category.Slug {
		existing, err := s.categoryRepo.FindBySlug(ctx, input.Slug)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperrors.ErrSlugAlreadyExists
		}
	}

	category.Name = input.Name
	category.Slug = input.Slug
	category.Description = input.Description

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete remove uma categoria
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.categoryRepo.Delete(ctx, id)
}
