package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/contenthub-backend/internal/handlers/dto"
	"github.com/rafabene/contenthub-backend/internal/handlers/middleware"
	"github.com/rafabene/contenthub-backend/internal/services"
)

// AuthHandler lida com requisições HTTP de autenticação
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler cria um novo AuthHandler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register registra um novo usuário
// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponseI18n(c, dto.ExtractValidationErrors(err)))
		return
	}

	user, pair, err := h.authService.Register(c.Request.Context(), services.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAuthResponse(user, pair))
}

// Login autentica um usuário por email e senha
// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponseI18n(c, dto.ExtractValidationErrors(err)))
		return
	}

	user, pair, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAuthResponse(user, pair))
}

// Refresh rotaciona o refresh token apresentado
// POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponseI18n(c, dto.ExtractValidationErrors(err)))
		return
	}

	pair, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Logout revoga o refresh token do caller
// POST /auth/logout (bearer requerido)
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.RefreshTokenRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponseI18n(c, dto.ExtractValidationErrors(err)))
		return
	}

	h.authService.Logout(c.Request.Context(), req.RefreshToken)

	c.JSON(http.StatusOK, dto.MessageResponse{Message: dto.T(c, "message.logout_successful")})
}

// Me retorna o perfil do usuário autenticado
// GET /auth/me (bearer requerido)
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.UnauthorizedErrorResponseI18n(c, "error.unauthorized.detail"))
		return
	}

	user, err := h.authService.Me(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
