package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/moogar0880/problems"

	"github.com/rafabene/contenthub-backend/internal/domain/entities"
	"github.com/rafabene/contenthub-backend/internal/infrastructure/i18n"
	"github.com/rafabene/contenthub-backend/internal/services"
)

const (
	// UserIDContextKey é a chave do id do usuário autenticado no contexto
	UserIDContextKey = "user_id"
	// UserEmailContextKey é a chave do email do usuário autenticado
	UserEmailContextKey = "user_email"
	// UserRoleContextKey é a chave do papel do usuário autenticado
	UserRoleContextKey = "user_role"
)

// AuthMiddleware valida o bearer token e popula a identidade no contexto
type AuthMiddleware struct {
	tokenService *services.TokenService
}

// NewAuthMiddleware cria um novo AuthMiddleware
func NewAuthMiddleware(tokenService *services.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenService: tokenService}
}

// RequireAuth exige um access token válido no header Authorization.
// A mensagem de erro é sempre genérica: token ausente, malformado e
// expirado respondem igual.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			abortProblem(c, http.StatusUnauthorized, "/problems/unauthorized",
				"error.unauthorized.title", "error.unauthorized.detail")
			return
		}

		claims, err := m.tokenService.VerifyAccess(token)
		if err != nil {
			abortProblem(c, http.StatusUnauthorized, "/problems/unauthorized",
				"error.unauthorized.title", "error.unauthorized.detail")
			return
		}

		c.Set(UserIDContextKey, claims.Subject)
		c.Set(UserEmailContextKey, claims.Email)
		c.Set(UserRoleContextKey, claims.Role)

		c.Next()
	}
}

// RequireRoles exige que o papel autenticado esteja entre os permitidos.
// Deve vir depois de RequireAuth na cadeia.
func (m *AuthMiddleware) RequireRoles(roles ...entities.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := CurrentRole(c)
		if !ok {
			abortProblem(c, http.StatusUnauthorized, "/problems/unauthorized",
				"error.unauthorized.title", "error.unauthorized.detail")
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		abortProblem(c, http.StatusForbidden, "/problems/forbidden",
			"error.forbidden.title", "error.forbidden.detail")
	}
}

// CurrentUserID retorna o id do usuário autenticado
func CurrentUserID(c *gin.Context) (string, bool) {
	id, ok := c.Value(UserIDContextKey).(string)
	return id, ok && id != ""
}

// CurrentRole retorna o papel do usuário autenticado
func CurrentRole(c *gin.Context) (entities.Role, bool) {
	raw, ok := c.Value(UserRoleContextKey).(string)
	if !ok {
		return "", false
	}
	return entities.ParseRole(raw)
}

// abortProblem corta a cadeia com uma resposta RFC 7807.
// Construída aqui, sem o pacote dto, porque dto depende deste pacote.
func abortProblem(c *gin.Context, status int, problemType, titleKey, detailKey string) {
	baseURL := c.GetString("base_url")
	if baseURL == "" {
		baseURL = "http://localhost:3001"
	}

	problem := problems.NewStatusProblem(status)
	problem.Type = baseURL + problemType
	problem.Title = translate(c, titleKey)
	problem.Detail = translate(c, detailKey)
	problem.Instance = c.Request.URL.Path

	c.AbortWithStatusJSON(status, problem)
}

func translate(c *gin.Context, key string) string {
	raw, exists := c.Get(I18nServiceContextKey)
	if !exists {
		return key
	}
	service, ok := raw.(*i18n.Service)
	if !ok {
		return key
	}

	lang, _ := c.Value(LanguageContextKey).(string)
	if lang == "" {
		lang = service.GetDefaultLanguage()
	}
	return service.T(lang, key)
}
