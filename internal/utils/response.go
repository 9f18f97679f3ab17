package utils

import (
	"errors"
	"log"
	"strconv"

	"arts-market/internal/apperr"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Error writes the canonical error body. Unclassified errors are logged with
// their full cause and surfaced as a bare internal error.
func Error(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = apperr.Wrap(apperr.NotFound, err, "Record not found")
	}
	if apperr.KindOf(err) == apperr.Internal {
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
}

// Pagination reads page/pageSize query params, defaulting to 1 and 10.
func Pagination(c *gin.Context) (page int, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return page, pageSize
}

// Paginate applies the page/pageSize pair as a gorm scope.
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}
