package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/contenthub-backend/internal/handlers/dto"
	"github.com/rafabene/contenthub-backend/internal/handlers/middleware"
	"github.com/rafabene/contenthub-backend/internal/services"
)

// ContentHandler lida com requisições HTTP de conteúdo
type ContentHandler struct {
	contentService *services.ContentService
}

// NewContentHandler cria um novo ContentHandler
func NewContentHandler(contentService *services.ContentService) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
	}
}

// currentActor monta o ator a partir da identidade autenticada no contexto
func currentActor(c *gin.Context) (services.Actor, bool) {
	userID, okID := middleware.CurrentUserID(c)
	role, okRole := middleware.CurrentRole(c)
	if !okID || !okRole {
		return services.Actor{}, false
	}
	return services.Actor{ID: userID, Role: role}, true
}

// Create cria um novo conteúdo
// POST /content
func (h *ContentHandler) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.UnauthorizedErrorResponseI18n(c, "error.unauthorized.detail"))
		return
	}

	var req dto.CreateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponseI18n(c, dto.ExtractValidationErrors(err)))
		return
	}

	content, err := h.contentService.Create(c.Request.Context(), req.ToContentInput(), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToContentResponse(content))
}

// List lista conteúdo com filtros e paginação
// GET /content
func (h *ContentHandler) List(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.UnauthorizedErrorResponseI18n(c, "error.unauthorized.detail"))
		return
	}

	var req dto.QueryContentRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponseI18n(c, dto.ExtractValidationErrors(err)))
		return
	}

	page, err := h.contentService.FindAll(c.Request.Context(), req.ToContentQuery(), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToContentListResponse(page))
}

// GetByID busca um conteúdo por id
// GET /content/:id
func (h *ContentHandler) GetByID(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.UnauthorizedErrorResponseI18n(c, "error.unauthorized.detail"))
		return
	}

	content, err := h.contentService.FindByID(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToContentResponse(content))
}

// GetBySlug busca um conteúdo por slug, com as mesmas permissões de GetByID
// GET /content/slug/:slug
func (h *ContentHandler) GetBySlug(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.UnauthorizedErrorResponseI18n(c, "error.unauthorized.detail"))
		return
	}

	content, err := h.contentService.FindBySlug(c.Request.Context(), c.Param("slug"), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToContentResponse(content))
}

// Update atualiza um conteúdo
// PATCH /content/:id
func (h *ContentHandler) Update(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.UnauthorizedErrorResponseI18n(c, "error.unauthorized.detail"))
		return
	}

	var req dto.UpdateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponseI18n(c, dto.ExtractValidationErrors(err)))
		return
	}

	content, err := h.contentService.Update(c.Request.Context(), c.Param("id"), req.ToUpdateInput(), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToContentResponse(content))
}

// Delete remove um conteúdo
// DELETE /content/:id
func (h *ContentHandler) Delete(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.UnauthorizedErrorResponseI18n(c, "error.unauthorized.detail"))
		return
	}

	if err := h.contentService.Delete(c.Request.Context(), c.Param("id"), actor); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: dto.T(c, "message.content_deleted")})
}
