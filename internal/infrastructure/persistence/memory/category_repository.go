package memory

import (
	"context"
	"sort"

	"github.com/rafabene/contenthub-backend/internal/domain/entities"
)

// CategoryRepository implementa repositories.CategoryRepository em memória
type CategoryRepository struct {
	s *store
}

func (r *CategoryRepository) Create(ctx context.Context, category *entities.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, c := range r.s.categories {
		if c.Slug == category.Slug {
			return ErrDuplicateKey
		}
	}

	if category.ID == "" {
		category.ID = newID()
	}
	r.s.categories[category.ID] = *category
	return nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*entities.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CategoryRepository) FindBySlug(ctx context.Context, slug string) (*entities.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, c := range r.s.categories {
		if c.Slug == slug {
			found := c
			return &found, nil
		}
	}
	return nil, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]*entities.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	categories := make([]*entities.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		found := c
		categories = append(categories, &found)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *entities.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.categories[category.ID] = *category
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.categories, id)
	return nil
}
