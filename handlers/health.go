package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"invoice-extract/database"
	"invoice-extract/logger"
)

// HealthHandler reports liveness.
type HealthHandler struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewHealthHandler(db *gorm.DB, log *zap.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: log}
}

// Health handles GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	if err := database.Ping(h.db); err != nil {
		logger.FromGin(c, h.logger).Error("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
}
