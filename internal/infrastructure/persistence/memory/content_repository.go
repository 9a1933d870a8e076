package memory

import (
	"context"
	"errors"

	"github.com/rafabene/contenthub-backend/internal/domain/entities"
	"github.com/rafabene/contenthub-backend/internal/domain/repositories"
)

// ContentRepository implementa repositories.ContentRepository em memória
type ContentRepository struct {
	s *store
}

func (r *ContentRepository) Create(ctx context.Context, content *entities.Content) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, c := range r.s.contents {
		if c.Slug == content.Slug {
			return ErrDuplicateKey
		}
	}

	if content.ID == "" {
		content.ID = newID()
	}
	now := r.s.now()
	content.CreatedAt = now
	content.UpdatedAt = now

	r.s.contents[content.ID] = *content
	r.s.contentSeq[content.ID] = r.s.nextSeq()
	return nil
}

func (r *ContentRepository) FindByID(ctx context.Context, id string) (*entities.Content, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.contents[id]
	if !ok {
		return nil, nil
	}
	r.attach(&c)
	return &c, nil
}

func (r *ContentRepository) FindBySlug(ctx context.Context, slug string) (*entities.Content, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, c := range r.s.contents {
		if c.Slug == slug {
			found := c
			r.attach(&found)
			return &found, nil
		}
	}
	return nil, nil
}

func (r *ContentRepository) FindMany(ctx context.Context, filters repositories.ContentFilters) ([]*entities.Content, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := r.matching(filters)
	sortByRecency(ids, r.s.contentSeq)

	page := filters.Page
	if page < 1 {
		page = 1
	}
	limit := filters.Limit
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	if offset >= len(ids) {
		return []*entities.Content{}, nil
	}
	end := offset + limit
	if end > len(ids) {
		end = len(ids)
	}

	contents := make([]*entities.Content, 0, end-offset)
	for _, id := range ids[offset:end] {
		c := r.s.contents[id]
		r.attach(&c)
		contents = append(contents, &c)
	}
	return contents, nil
}

func (r *ContentRepository) Count(ctx context.Context, filters repositories.ContentFilters) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return int64(len(r.matching(filters))), nil
}

func (r *ContentRepository) Update(ctx context.Context, content *entities.Content) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.contents[content.ID]; !ok {
		return errors.New("content not found")
	}
	content.UpdatedAt = r.s.now()
	r.s.contents[content.ID] = *content
	return nil
}

func (r *ContentRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.contents, id)
	delete(r.s.contentSeq, id)
	return nil
}

// matching aplica o mesmo predicado de FindMany e Count
func (r *ContentRepository) matching(filters repositories.ContentFilters) []string {
	var ids []string
	for id, c := range r.s.contents {
		if filters.Status != nil && c.Status != *filters.Status {
			continue
		}
		if filters.AuthorID != nil && c.AuthorID != *filters.AuthorID {
			continue
		}
		if filters.CategoryID != nil {
			if c.CategoryID == nil || *c.CategoryID != *filters.CategoryID {
				continue
			}
		}
		if filters.Scope.PublishedOnly && c.Status != entities.StatusPublished {
			continue
		}
		if owner := filters.Scope.OwnOrPublishedFor; owner != "" {
			if c.Status != entities.StatusPublished && c.AuthorID != owner {
				continue
			}
		}
		ids = append(ids, id)
	}
	return ids
}

// attach preenche as projeções de autor e categoria, como o Preload do gorm
func (r *ContentRepository) attach(c *entities.Content) {
	if u, ok := r.s.users[c.AuthorID]; ok {
		c.Author = &entities.AuthorSummary{
			ID:    u.ID,
			Name:  u.Name,
			Email: u.Email.String(),
		}
	}
	if c.CategoryID != nil {
		if cat, ok := r.s.categories[*c.CategoryID]; ok {
			found := cat
			c.Category = &found
		}
	}
}
