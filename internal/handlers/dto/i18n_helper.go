package dto

import (
	"github.com/gin-gonic/gin"

	"github.com/rafabene/cwsite-users/internal/handlers/middleware"
	"github.com/rafabene/cwsite-users/internal/infrastructure/i18n"
)

// T é um helper para traduzir mensagens no contexto do Gin
// Uso: dto.T(c, "error.not_found.detail", map[string]interface{}{"Resource": "User"})
func T(c *gin.Context, key string, params ...map[string]interface{}) string {
	i18nService, exists := c.Get(middleware.I18nServiceContextKey)
	if !exists {
		return key
	}

	service, ok := i18nService.(*i18n.Service)
	if !ok {
		return key
	}

	return service.T(GetLanguage(c), key, params...)
}

// GetLanguage retorna o idioma configurado no contexto da requisição
func GetLanguage(c *gin.Context) string {
	if lang := c.GetString(middleware.LanguageContextKey); lang != "" {
		return lang
	}
	return "en"
}
