package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/contenthub-backend/internal/infrastructure/i18n"
)

const (
	// LanguageContextKey é a chave do idioma resolvido no contexto do Gin
	LanguageContextKey = "language"
	// I18nServiceContextKey é a chave do serviço de i18n no contexto
	I18nServiceContextKey = "i18n_service"
)

// I18nMiddleware resolve o idioma de cada requisição
type I18nMiddleware struct {
	i18nService *i18n.Service
}

// NewI18nMiddleware cria um novo middleware de i18n
func NewI18nMiddleware(i18nService *i18n.Service) *I18nMiddleware {
	return &I18nMiddleware{i18nService: i18nService}
}

// DetectLanguage resolve o idioma da requisição e o publica no contexto,
// junto com o serviço de i18n, para os handlers montarem mensagens.
// Ordem de resolução: ?lang= explícito, depois Accept-Language, depois o
// idioma padrão.
func (m *I18nMiddleware) DetectLanguage() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := m.resolve(c)

		c.Set(LanguageContextKey, lang)
		c.Set(I18nServiceContextKey, m.i18nService)

		c.Next()
	}
}

func (m *I18nMiddleware) resolve(c *gin.Context) string {
	if queryLang := c.Query("lang"); m.i18nService.IsLanguageSupported(queryLang) {
		return queryLang
	}

	if lang := m.matchAcceptLanguage(c.GetHeader("Accept-Language")); lang != "" {
		return lang
	}

	return m.i18nService.GetDefaultLanguage()
}

// matchAcceptLanguage percorre o header Accept-Language na ordem em que o
// cliente listou os idiomas e devolve o primeiro suportado. Um código com
// região cai para o código base quando só ele é suportado (pt-BR -> pt).
// Os pesos q= são ignorados; a ordem do header já reflete a preferência.
func (m *I18nMiddleware) matchAcceptLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		lang, _, _ := strings.Cut(strings.TrimSpace(part), ";")
		if lang == "" {
			continue
		}

		if m.i18nService.IsLanguageSupported(lang) {
			return lang
		}

		if base, _, found := strings.Cut(lang, "-"); found && m.i18nService.IsLanguageSupported(base) {
			return base
		}
	}
	return ""
}
