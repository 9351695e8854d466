package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/cwsite-users/internal/domain/ports"
)

// HealthChecker verifica uma dependência externa
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthHandler responde o health check da API
type HealthHandler struct {
	db     HealthChecker
	env    string
	logger ports.Logger
}

// NewHealthHandler cria um novo HealthHandler
func NewHealthHandler(db HealthChecker, env string, logger ports.Logger) *HealthHandler {
	return &HealthHandler{db: db, env: env, logger: logger}
}

// Health verifica o banco com timeout de 2s
//
//	@Summary	Health check
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Failure	503	{object}	map[string]string
//	@Router		/health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.logger.ErrorContext(ctx, "health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"env":    h.env,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"env":    h.env,
	})
}
