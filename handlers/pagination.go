package handlers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	"invoice-extract/repository"
)

func pageFromQuery(c *gin.Context) repository.Page {
	number, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	return repository.Page{Number: number, Limit: limit}.Normalize()
}

func pageMeta(page repository.Page, total int64) gin.H {
	return gin.H{
		"current_page": page.Number,
		"limit":        page.Limit,
		"total_data":   total,
		"total_pages":  math.Ceil(float64(total) / float64(page.Limit)),
	}
}
