package handlers

import (
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"invoice-extract/extractor"
	"invoice-extract/logger"
	"invoice-extract/models"
	"invoice-extract/repository"
)

const exportSheet = "Notas Fiscais"

var exportHeaders = []string{"No", "Transaction ID", "Date", "CNPJ", "Total", "Captured At"}

var unsafeFileChars = regexp.MustCompile(`[^0-9A-Za-z]+`)

// ExportHandler writes a tax identifier's receipts as a spreadsheet.
type ExportHandler struct {
	transactions *repository.TransactionRepository
	logger       *zap.Logger
	now          func() time.Time
}

func NewExportHandler(transactions *repository.TransactionRepository, log *zap.Logger) *ExportHandler {
	return &ExportHandler{transactions: transactions, logger: log, now: time.Now}
}

// ExportExcel handles GET /api/export?tax_id=.
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	log := logger.FromGin(c, h.logger)
	taxID := c.Query("tax_id")
	if taxID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tax_id is required"})
		return
	}

	txs, err := h.transactions.AllByTaxID(c.Request.Context(), taxID)
	if err != nil {
		log.Error("failed to load transactions for export", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load transactions"})
		return
	}

	f, err := buildWorkbook(txs)
	if err != nil {
		log.Error("failed to build workbook", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate excel"})
		return
	}
	defer f.Close()

	fileName := fmt.Sprintf("notas_%s_%s.xlsx", unsafeFileChars.ReplaceAllString(taxID, ""), h.now().Format("20060102"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", fileName))
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		log.Error("failed to write workbook", zap.Error(err))
	}
}

func buildWorkbook(txs []models.Transaction) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return nil, err
		}
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4F46E5"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(exportSheet, "A1", "F1", headerStyle); err != nil {
		return nil, err
	}

	for i, t := range txs {
		row := i + 2
		values := []any{
			i + 1,
			t.ID,
			deref(t.Date),
			deref(t.IssuerTaxID),
			totalCell(t.TotalValue),
			t.CapturedAt.UTC().Format(time.RFC3339),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	_ = f.SetColWidth(exportSheet, "A", "A", 5)
	_ = f.SetColWidth(exportSheet, "B", "B", 38)
	_ = f.SetColWidth(exportSheet, "C", "C", 12)
	_ = f.SetColWidth(exportSheet, "D", "D", 20)
	_ = f.SetColWidth(exportSheet, "E", "E", 12)
	_ = f.SetColWidth(exportSheet, "F", "F", 22)
	return f, nil
}

// totalCell writes parseable totals as numbers and keeps the rest verbatim,
// so "1.234.56" stays a string.
func totalCell(total *string) any {
	if total == nil {
		return ""
	}
	d, err := extractor.Fields{Total: total}.TotalDecimal()
	if err != nil {
		return *total
	}
	return d.InexactFloat64()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
