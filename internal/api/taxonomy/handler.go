package taxonomy

import (
	"net/http"

	"arts-market/internal/apperr"
	"arts-market/internal/app/http/middleware"
	"arts-market/internal/domain/catalog"
	"arts-market/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// ------------------------------
// Categories
// ------------------------------

// GET /categories
func (h *Handler) ListCategories(c *gin.Context) {
	page, pageSize := utils.Pagination(c)

	var categories []catalog.Category
	if err := h.db.Scopes(utils.Paginate(page, pageSize)).Find(&categories).Error; err != nil {
		utils.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GET /categories/:id
func (h *Handler) GetCategory(c *gin.Context) {
	var category catalog.Category
	if err := h.db.First(&category, "id = ?", c.Param("id")).Error; err != nil {
		utils.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

// POST /categories (admin)
func (h *Handler) CreateCategory(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := middleware.SanitizeString(req.Name)

	var category catalog.Category
	err := h.db.Transaction(func(tx *gorm.DB) error {
		slug, _, err := catalog.UniqueSlug(tx, &catalog.Category{}, name)
		if err != nil {
			return err
		}
		category = catalog.Category{Name: name, Slug: slug}
		return tx.Create(&category).Error
	})
	if err != nil {
		utils.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": category})
}

// DELETE /categories/:id (admin)
func (h *Handler) DeleteCategory(c *gin.Context) {
	res := h.db.Delete(&catalog.Category{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		utils.Error(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(c, apperr.New(apperr.NotFound, "Category not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

// GET /categories/:id/arts
func (h *Handler) ArtsInCategory(c *gin.Context) {
	page, pageSize := utils.Pagination(c)

	var arts []catalog.Artwork
	err := h.db.Where("category_id = ?", c.Param("id")).
		Scopes(utils.Paginate(page, pageSize)).
		Find(&arts).Error
	if err != nil {
		utils.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"arts": arts})
}

// ------------------------------
// Mediums
// ------------------------------

// GET /mediums
func (h *Handler) ListMediums(c *gin.Context) {
	var mediums []catalog.Medium
	if err := h.db.Find(&mediums).Error; err != nil {
		utils.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mediums": mediums})
}

// GET /mediums/:id
func (h *Handler) GetMedium(c *gin.Context) {
	var medium catalog.Medium
	if err := h.db.First(&medium, "id = ?", c.Param("id")).Error; err != nil {
		utils.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"medium": medium})
}

// POST /mediums (admin)
func (h *Handler) CreateMedium(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	medium := catalog.Medium{Name: middleware.SanitizeString(req.Name)}
	if err := h.db.Create(&medium).Error; err != nil {
		utils.Error(c, apperr.Wrap(apperr.Conflict, err, "Medium already exists"))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": medium})
}

// GET /mediums/:id/arts
func (h *Handler) ArtsByMedium(c *gin.Context) {
	page, pageSize := utils.Pagination(c)

	var arts []catalog.Artwork
	err := h.db.Joins("JOIN artwork_mediums ON artwork_mediums.artwork_id = artworks.id").
		Where("artwork_mediums.medium_id = ?", c.Param("id")).
		Scopes(utils.Paginate(page, pageSize)).
		Find(&arts).Error
	if err != nil {
		utils.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"arts": arts})
}

// DELETE /mediums/:id (admin)
func (h *Handler) DeleteMedium(c *gin.Context) {
	res := h.db.Delete(&catalog.Medium{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		utils.Error(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(c, apperr.New(apperr.NotFound, "Medium not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Medium deleted successfully"})
}

// ------------------------------
// Tags
// ------------------------------

// GET /tags
func (h *Handler) ListTags(c *gin.Context) {
	var tags []catalog.Tag
	if err := h.db.Find(&tags).Error; err != nil {
		utils.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

// POST /tags (admin)
func (h *Handler) CreateTag(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tag := catalog.Tag{Name: middleware.SanitizeString(req.Name)}
	if err := h.db.Create(&tag).Error; err != nil {
		utils.Error(c, apperr.Wrap(apperr.Conflict, err, "Tag already exists"))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": tag})
}

// DELETE /tags/:id (admin)
func (h *Handler) DeleteTag(c *gin.Context) {
	res := h.db.Delete(&catalog.Tag{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		utils.Error(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(c, apperr.New(apperr.NotFound, "Tag not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tag deleted successfully"})
}
