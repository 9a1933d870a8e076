package services

import (
	"context"
	"time"

	"github.com/rafabene/contenthub-backend/internal/domain/entities"
	apperrors "github.com/rafabene/contenthub-backend/internal/domain/errors"
	"github.com/rafabene/contenthub-backend/internal/domain/policy"
	"github.com/rafabene/contenthub-backend/internal/domain/ports"
	"github.com/rafabene/contenthub-backend/internal/domain/repositories"
)

// ContentService contém a lógica de negócio para conteúdo editorial
type ContentService struct {
	contentRepo repositories.ContentRepository
	logger      ports.Logger

	now func() time.Time
}

// NewContentService cria um novo ContentService
func NewContentService(contentRepo repositories.ContentRepository, logger ports.Logger) *ContentService {
	return &ContentService{
		contentRepo: contentRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// Actor identifica quem executa a operação
type Actor struct {
	ID   string
	Role entities.Role
}

// CreateContentInput representa os dados para criar um conteúdo
type CreateContentInput struct {
	Title      string
	Slug       string
	Body       string
	Excerpt    string
	Status     entities.ContentStatus
	CategoryID *string
}

// UpdateContentInput representa os dados para atualizar um conteúdo.
// Campos nil não são alterados.
type UpdateContentInput struct {
	Title      *string
	Slug       *string
	Body       *string
	Excerpt    *string
	Status     *entities.ContentStatus
	CategoryID *string
}

// ContentQuery representa filtros e paginação de uma listagem
type ContentQuery struct {
	Status     *entities.ContentStatus
	AuthorID   *string
	CategoryID *string
	Page       int
	Limit      int
}

// ContentPage é o resultado paginado de uma listagem
type ContentPage struct {
	Data       []*entities.Content
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// Create cria um novo conteúdo de autoria do ator
func (s *ContentService) Create(ctx context.Context, input CreateContentInput, actor Actor) (*entities.Content, error) {
	if !policy.CanCreate(actor.Role) {
		return nil, apperrors.ErrForbidden
	}

	existing, err := s.contentRepo.FindBySlug(ctx, input.Slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrSlugAlreadyExists
	}

	status := input.Status
	if status == "" {
		status = entities.StatusDraft
	}

	content := &entities.Content{
		Title:      input.Title,
		Slug:       input.Slug,
		Body:       input.Body,
		Excerpt:    input.Excerpt,
		Status:     status,
		AuthorID:   actor.ID,
		CategoryID: input.CategoryID,
	}
	if err := content.Validate(); err != nil {
		return nil, err
	}

	// Publicado já na criação: carimbar publishedAt agora
	if status == entities.StatusPublished {
		content.MarkPublished(s.now())
	}

	if err := s.contentRepo.Create(ctx, content); err != nil {
		return nil, err
	}

	s.logger.Info("content created",
		"content_id", content.ID,
		"slug", content.Slug,
		"author_id", actor.ID,
	)

	// Recarregar com autor/categoria embutidos
	return s.contentRepo.FindByID(ctx, content.ID)
}

// FindAll lista conteúdo com filtros, paginação e o escopo do papel do
// ator aplicado por cima de qualquer filtro do caller
func (s *ContentService) FindAll(ctx context.Context, query ContentQuery, actor Actor) (*ContentPage, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = 10
	}

	scope := policy.ListScope(actor.Role, actor.ID)

	// VIEWER: o filtro de status do caller é substituído, não combinado;
	// pedir DRAFT como VIEWER devolve os publicados mesmo assim
	status := query.Status
	if scope.PublishedOnly {
		published := entities.StatusPublished
		status = &published
	}

	filters := repositories.ContentFilters{
		Status:     status,
		AuthorID:   query.AuthorID,
		CategoryID: query.CategoryID,
		Scope:      scope,
		Page:       page,
		Limit:      limit,
	}

	contents, err := s.contentRepo.FindMany(ctx, filters)
	if err != nil {
		return nil, err
	}

	total, err := s.contentRepo.Count(ctx, filters)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &ContentPage{
		Data:       contents,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// FindByID busca um conteúdo por id, aplicando a matriz de acesso
func (s *ContentService) FindByID(ctx context.Context, id string, actor Actor) (*entities.Content, error) {
	content, err := s.contentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, apperrors.ErrContentNotFound
	}

	if !policy.CanRead(actor.Role, actor.ID, content) {
		return nil, apperrors.ErrForbidden
	}

	return content, nil
}

// FindBySlug busca um conteúdo por slug, com exatamente as mesmas
// permissões de FindByID
func (s *ContentService) FindBySlug(ctx context.Context, slug string, actor Actor) (*entities.Content, error) {
	content, err := s.contentRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, apperrors.ErrContentNotFound
	}

	if !policy.CanRead(actor.Role, actor.ID, content) {
		return nil, apperrors.ErrForbidden
	}

	return content, nil
}

// Update atualiza um conteúdo. EDITOR apenas o próprio; ADMIN qualquer.
// AuthorID é imutável. PublishedAt é carimbado na primeira transição para
// PUBLISHED e nunca sobrescrito depois.
func (s *ContentService) Update(ctx context.Context, id string, input UpdateContentInput, actor Actor) (*entities.Content, error) {
	content, err := s.contentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, apperrors.ErrContentNotFound
	}

	if !policy.CanMutate(actor.Role, actor.ID, content) {
		return nil, apperrors.ErrForbidden
	}

	// Troca de slug exige unicidade contra os demais registros
	if input.Slug != nil && *input.Slug != content.Slug {
		existing, err := s.contentRepo.FindBySlug(ctx, *input.Slug)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperrors.ErrSlugAlreadyExists
		}
		content.Slug = *input.Slug
	}

	if input.Title != nil {
		content.Title = *input.Title
	}
	if input.Body != nil {
		content.Body = *input.Body
	}
	if input.Excerpt != nil {
		content.Excerpt = *input.Excerpt
	}
	if input.CategoryID != nil {
		content.CategoryID = input.CategoryID
	}
	if input.Status != nil {
		content.Status = *input.Status
		if *input.Status == entities.StatusPublished {
			content.MarkPublished(s.now())
		}
	}

	if err := content.Validate(); err != nil {
		return nil, err
	}

	if err := s.contentRepo.Update(ctx, content); err != nil {
		return nil, err
	}

	return s.contentRepo.FindByID(ctx, content.ID)
}

// Delete remove um conteúdo. Mesmas permissões de Update.
func (s *ContentService) Delete(ctx context.Context, id string, actor Actor) error {
	content, err := s.contentRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if content == nil {
		return apperrors.ErrContentNotFound
	}

	if !policy.CanMutate(actor.Role, actor.ID, content) {
		return apperrors.ErrForbidden
	}

	if err := s.contentRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("content deleted", "content_id", id, "actor_id", actor.ID)
	return nil
}
