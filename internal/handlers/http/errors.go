package http

import (
	errs "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/contenthub-backend/internal/domain/errors"
	"github.com/rafabene/contenthub-backend/internal/domain/valueobjects"
	"github.com/rafabene/contenthub-backend/internal/handlers/dto"
)

// handleServiceError mapeia erros de domínio para o status HTTP e o corpo
// RFC 7807 correspondentes. Erros não mapeados viram 500 genérico.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, errors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.UnauthorizedErrorResponseI18n(c, "error.invalid_credentials"))
	case errs.Is(err, errors.ErrInvalidRefreshToken):
		c.JSON(http.StatusUnauthorized, dto.UnauthorizedErrorResponseI18n(c, "error.invalid_refresh_token"))
	case errs.Is(err, errors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, dto.UnauthorizedErrorResponseI18n(c, "error.unauthorized.detail"))
	case errs.Is(err, errors.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.ForbiddenErrorResponseI18n(c))
	case errs.Is(err, errors.ErrUserNotFound):
		c.JSON(http.StatusNotFound, dto.NotFoundErrorResponseI18n(c, "User"))
	case errs.Is(err, errors.ErrContentNotFound):
		c.JSON(http.StatusNotFound, dto.NotFoundErrorResponseI18n(c, "Content"))
	case errs.Is(err, errors.ErrCategoryNotFound):
		c.JSON(http.StatusNotFound, dto.NotFoundErrorResponseI18n(c, "Category"))
	case errs.Is(err, errors.ErrEmailAlreadyExists):
		c.JSON(http.StatusConflict, dto.ConflictErrorResponseI18n(c, "error.email_already_exists"))
	case errs.Is(err, errors.ErrSlugAlreadyExists):
		c.JSON(http.StatusConflict, dto.ConflictErrorResponseI18n(c, "error.slug_already_exists"))
	case errs.Is(err, valueobjects.ErrInvalidEmail):
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponseI18n(c, []dto.ValidationError{
			{Field: "email", Message: "must be a valid email", Tag: "email"},
		}))
	default:
		c.JSON(http.StatusInternalServerError, dto.InternalErrorResponseI18n(c))
	}
}
