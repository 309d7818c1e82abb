package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"invoice-extract/logger"
	"invoice-extract/repository"
)

// AdminHandler exposes read-only views of registrations.
type AdminHandler struct {
	registrations *repository.RegistrationRepository
	transactions  *repository.TransactionRepository
	logger        *zap.Logger
}

func NewAdminHandler(registrations *repository.RegistrationRepository, transactions *repository.TransactionRepository, log *zap.Logger) *AdminHandler {
	return &AdminHandler{registrations: registrations, transactions: transactions, logger: log}
}

// GetRegistrations handles GET /api/registrations?page=&limit=.
func (h *AdminHandler) GetRegistrations(c *gin.Context) {
	page := pageFromQuery(c)
	regs, total, err := h.registrations.List(c.Request.Context(), page)
	if err != nil {
		logger.FromGin(c, h.logger).Error("failed to list registrations", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list registrations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": regs, "meta": pageMeta(page, total)})
}

// GetRegistrationStats handles GET /api/registrations/:phone/stats.
func (h *AdminHandler) GetRegistrationStats(c *gin.Context) {
	log := logger.FromGin(c, h.logger)
	phone := c.Param("phone")

	taxID, found, err := h.registrations.GetRegistration(c.Request.Context(), phone)
	if err != nil {
		log.Error("failed to load registration", zap.String("phone", phone), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load registration"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "registration not found"})
		return
	}

	stats, err := h.transactions.Stats(c.Request.Context(), taxID)
	if err != nil {
		log.Error("failed to load note stats", zap.String("phone", phone), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"registration": gin.H{
			"phone_number": phone,
			"tax_id":       taxID,
		},
		"stats": stats,
	})
}
