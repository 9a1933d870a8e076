package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/contenthub-backend/internal/domain/entities"
	"github.com/rafabene/contenthub-backend/internal/handlers/dto"
	"github.com/rafabene/contenthub-backend/internal/services"
)

// UserHandler lida com requisições HTTP de administração de usuários.
// Todas as rotas são restritas a ADMIN na camada de rotas.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler cria um novo UserHandler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// List lista todos os usuários
// GET /users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponses(users))
}

// Get busca um usuário por ID
// GET /users/:id
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userService.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// Update atualiza nome, papel ou flag de atividade de um usuário
// PATCH /users/:id
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponseI18n(c, dto.ExtractValidationErrors(err)))
		return
	}

	input := services.UpdateUserInput{
		Name:     req.Name,
		IsActive: req.IsActive,
	}
	if req.Role != nil {
		role := entities.Role(*req.Role)
		input.Role = &role
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// Delete remove um usuário
// DELETE /users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: dto.T(c, "message.user_deleted")})
}
