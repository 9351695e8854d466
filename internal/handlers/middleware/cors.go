package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS configura CORS para a API somente leitura
// "*" em allowedOrigins libera qualquer origem
func CORS(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Accept", "Accept-Language"},
		MaxAge:       12 * time.Hour,
	}

	allowAll := len(allowedOrigins) == 0
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
			break
		}
	}

	if allowAll {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowedOrigins
	}

	return cors.New(cfg)
}
