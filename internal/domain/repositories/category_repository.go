package repositories

import (
	"context"

	"github.com/rafabene/contenthub-backend/internal/domain/entities"
)

// CategoryRepository define a interface para persistência de categorias
type CategoryRepository interface {
	Create(ctx context.Context, category *entities.Category) error
	FindByID(ctx context.Context, id string) (*entities.Category, error)
	FindBySlug(ctx context.Context, slug string) (*entities.Category, error)
	List(ctx context.Context) ([]*entities.Category, error)
	Update(ctx context.Context, category *entities.Category) error
	Delete(ctx context.Context, id string) error
}
