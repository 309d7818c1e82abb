package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"invoice-extract/logger"
	"invoice-extract/repository"
)

// TransactionHandler lists stored receipts.
type TransactionHandler struct {
	transactions *repository.TransactionRepository
	logger       *zap.Logger
}

func NewTransactionHandler(transactions *repository.TransactionRepository, log *zap.Logger) *TransactionHandler {
	return &TransactionHandler{transactions: transactions, logger: log}
}

// GetTransactions handles GET /api/transactions?tax_id=&page=&limit=.
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	taxID := c.Query("tax_id")
	if taxID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tax_id is required"})
		return
	}

	page := pageFromQuery(c)
	txs, total, err := h.transactions.ListByTaxID(c.Request.Context(), taxID, page)
	if err != nil {
		logger.FromGin(c, h.logger).Error("failed to list transactions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": txs, "meta": pageMeta(page, total)})
}
