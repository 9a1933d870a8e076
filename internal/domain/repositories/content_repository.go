package repositories

import (
	"context"

	"github.com/rafabene/contenthub-backend/internal/domain/entities"
)

// ListScope restringe o que uma listagem pode enxergar, conforme o papel
// do ator. É aplicado por cima de qualquer filtro vindo do caller.
type ListScope struct {
	// PublishedOnly força a listagem a retornar apenas conteúdo publicado
	PublishedOnly bool
	// OwnOrPublishedFor limita a conteúdo do autor informado (qualquer
	// status) mais conteúdo publicado de terceiros
	OwnOrPublishedFor string
}

// ContentFilters contém filtros e paginação para listagem de conteúdo
type ContentFilters struct {
	Status     *entities.ContentStatus
	AuthorID   *string
	CategoryID *string
	Scope      ListScope
	Page       int // começa em 1
	Limit      int // default: 10
}

// ContentRepository define a interface para persistência de conteúdo
type ContentRepository interface {
	Create(ctx context.Context, content *entities.Content) error
	FindByID(ctx context.Context, id string) (*entities.Content, error)
	FindBySlug(ctx context.Context, slug string) (*entities.Content, error)
	// FindMany retorna a página pedida, do mais recente para o mais antigo
	FindMany(ctx context.Context, filters ContentFilters) ([]*entities.Content, error)
	// Count usa o mesmo predicado de FindMany
	Count(ctx context.Context, filters ContentFilters) (int64, error)
	Update(ctx context.Context, content *entities.Content) error
	Delete(ctx context.Context, id string) error
}
