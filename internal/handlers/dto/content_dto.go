package dto

import (
	"time"

	"github.com/rafabene/contenthub-backend/internal/domain/entities"
	"github.com/rafabene/contenthub-backend/internal/services"
)

// CreateContentRequest representa a requisição para criar um conteúdo
type CreateContentRequest struct {
	Title      string  `json:"title" binding:"required,min=1,max=500"`
	Slug       string  `json:"slug" binding:"required,min=1,max=255"`
	Body       string  `json:"body" binding:"required"`
	Excerpt    string  `json:"excerpt"`
	Status     string  `json:"status" binding:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`
	CategoryID *string `json:"categoryId" binding:"omitempty,uuid"`
}

// UpdateContentRequest representa a requisição para atualizar um conteúdo
type UpdateContentRequest struct {
	Title      *string `json:"title" binding:"omitempty,min=1,max=500"`
	Slug       *string `json:"slug" binding:"omitempty,min=1,max=255"`
	Body       *string `json:"body" binding:"omitempty,min=1"`
	Excerpt    *string `json:"excerpt"`
	Status     *string `json:"status" binding:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`
	CategoryID *string `json:"categoryId" binding:"omitempty,uuid"`
}

// QueryContentRequest representa os filtros de listagem de conteúdo
type QueryContentRequest struct {
	Status     string `form:"status" binding:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`
	AuthorID   string `form:"authorId" binding:"omitempty,uuid"`
	CategoryID string `form:"categoryId" binding:"omitempty,uuid"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

// AuthorResponse é a projeção do autor embutida nas respostas de conteúdo
type AuthorResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CategoryResponse representa a resposta de uma categoria
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

// ContentResponse representa a resposta de um conteúdo
type ContentResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Slug        string            `json:"slug"`
	Body        string            `json:"body"`
	Excerpt     string            `json:"excerpt,omitempty"`
	Status      string            `json:"status"`
	AuthorID    string            `json:"authorId"`
	CategoryID  *string           `json:"categoryId,omitempty"`
	PublishedAt *time.Time        `json:"publishedAt,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	Author      *AuthorResponse   `json:"author,omitempty"`
	Category    *CategoryResponse `json:"category,omitempty"`
}

// PageMeta representa os metadados de paginação
type PageMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// ContentListResponse representa a resposta paginada de uma listagem
type ContentListResponse struct {
	Data []ContentResponse `json:"data"`
	Meta PageMeta          `json:"meta"`
}

// ToContentInput converte a requisição de criação para o input do serviço
func (r *CreateContentRequest) ToContentInput() services.CreateContentInput {
	return services.CreateContentInput{
		Title:      r.Title,
		Slug:       r.Slug,
		Body:       r.Body,
		Excerpt:    r.Excerpt,
		Status:     entities.ContentStatus(r.Status),
		CategoryID: r.CategoryID,
	}
}

// ToUpdateInput converte a requisição de atualização para o input do serviço
func (r *UpdateContentRequest) ToUpdateInput() services.UpdateContentInput {
	input := services.UpdateContentInput{
		Title:      r.Title,
		Slug:       r.Slug,
		Body:       r.Body,
		Excerpt:    r.Excerpt,
		CategoryID: r.CategoryID,
	}
	if r.Status != nil {
		status := entities.ContentStatus(*r.Status)
		input.Status = &status
	}
	return input
}

// ToContentQuery converte os filtros de listagem para o input do serviço
func (r *QueryContentRequest) ToContentQuery() services.ContentQuery {
	query := services.ContentQuery{
		Page:  r.Page,
		Limit: r.Limit,
	}
	if r.Status != "" {
		status := entities.ContentStatus(r.Status)
		query.Status = &status
	}
	if r.AuthorID != "" {
		authorID := r.AuthorID
		query.AuthorID = &authorID
	}
	if r.CategoryID != "" {
		categoryID := r.CategoryID
		query.CategoryID = &categoryID
	}
	return query
}

// ToContentResponse converte uma entidade Content para ContentResponse
func ToContentResponse(content *entities.Content) ContentResponse {
	response := ContentResponse{
		ID:          content.ID,
		Title:       content.Title,
		Slug:        content.Slug,
		Body:        content.Body,
		Excerpt:     content.Excerpt,
		Status:      string(content.Status),
		AuthorID:    content.AuthorID,
		CategoryID:  content.CategoryID,
		PublishedAt: content.PublishedAt,
		CreatedAt:   content.CreatedAt,
		UpdatedAt:   content.UpdatedAt,
	}

	if content.Author != nil {
		response.Author = &AuthorResponse{
			ID:    content.Author.ID,
			Name:  content.Author.Name,
			Email: content.Author.Email,
		}
	}

	if content.Category != nil {
		category := ToCategoryResponse(content.Category)
		response.Category = &category
	}

	return response
}

// ToContentListResponse monta a resposta paginada de uma listagem
func ToContentListResponse(page *services.ContentPage) ContentListResponse {
	data := make([]ContentResponse, len(page.Data))
	for i, content := range page.Data {
		data[i] = ToContentResponse(content)
	}

	return ContentListResponse{
		Data: data,
		Meta: PageMeta{
			Page:       page.Page,
			Limit:      page.Limit,
			Total:      page.Total,
			TotalPages: page.TotalPages,
		},
	}
}

// ToCategoryResponse converte uma entidade Category para CategoryResponse
func ToCategoryResponse(category *entities.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Slug:        category.Slug,
		Description: category.Description,
	}
}

// ToCategoryResponses converte uma lista de categorias
func ToCategoryResponses(categories []*entities.Category) []CategoryResponse {
	responses := make([]CategoryResponse, len(categories))
	for i, category := range categories {
		responses[i] = ToCategoryResponse(category)
	}
	return responses
}
