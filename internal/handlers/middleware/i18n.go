package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/rafabene/cwsite-users/internal/infrastructure/i18n"
)

const (
	// LanguageContextKey é a chave usada para armazenar o idioma no contexto do Gin
	LanguageContextKey = "language"
	// I18nServiceContextKey é a chave usada para armazenar o serviço i18n no contexto
	I18nServiceContextKey = "i18n_service"
)

// I18nMiddleware gerencia a detecção de idioma nas requisições
type I18nMiddleware struct {
	i18nService *i18n.Service
}

// NewI18nMiddleware cria um novo middleware de i18n
func NewI18nMiddleware(i18nService *i18n.Service) *I18nMiddleware {
	return &I18nMiddleware{
		i18nService: i18nService,
	}
}

// DetectLanguage detecta e configura o idioma da requisição
// Prioridade:
// 1. Query parameter ?lang=pt-BR (override explícito)
// 2. Accept-Language header, negociado com golang.org/x/text/language
// 3. Idioma padrão (fallback)
func (m *I18nMiddleware) DetectLanguage() gin.HandlerFunc {
	return func(c *gin.Context) {
		var lang string

		if queryLang := c.Query("lang"); queryLang != "" && m.i18nService.IsLanguageSupported(queryLang) {
			lang = queryLang
		}

		if lang == "" {
			lang = m.i18nService.Match(c.GetHeader("Accept-Language"))
		}

		if lang == "" {
			lang = m.i18nService.GetDefaultLanguage()
		}

		c.Set(LanguageContextKey, lang)
		c.Set(I18nServiceContextKey, m.i18nService)
		c.Header("Content-Language", lang)

		c.Next()
	}
}
