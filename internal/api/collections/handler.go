package collections

import (
	"errors"
	"net/http"

	"arts-market/internal/apperr"
	"arts-market/internal/app/http/middleware"
	"arts-market/internal/domain/access"
	"arts-market/internal/domain/catalog"
	"arts-market/internal/domain/earnings"
	"arts-market/internal/infra/storage"
	"arts-market/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Handler struct {
	db       *gorm.DB
	uploader storage.Uploader
}

func New(db *gorm.DB, uploader storage.Uploader) *Handler {
	return &Handler{db: db, uploader: uploader}
}

// collectionView flattens tags and attaches the derived statistics.
func collectionView(col catalog.Collection) gin.H {
	stats := catalog.ComputeStats(col.Artworks)

	tagNames := make([]string, 0, len(col.Tags))
	for _, t := range col.Tags {
		tagNames = append(tagNames, t.Name)
	}

	view := gin.H{
		"id":                       col.ID,
		"name":                     col.Name,
		"slug":                     col.Slug,
		"description":              col.Description,
		"image":                    col.Image,
		"cover_photo":              col.CoverPhoto,
		"userId":                   col.UserID,
		"category_id":              col.CategoryID,
		"tag_names":                tagNames,
		"floor_price":              stats.FloorPrice,
		"total_collection_revenue": stats.TotalRevenue,
		"created_at":               col.CreatedAt,
	}
	if col.User != nil {
		view["username"] = col.User.Username
	}
	if col.Category != nil {
		view["category_name"] = col.Category.Name
	}
	return view
}

// GET /collections — public listing with derived stats.
func (h *Handler) List(c *gin.Context) {
	var cols []catalog.Collection
	err := h.db.Preload("Tags").
		Preload("Artworks").
		Preload("User").
		Find(&cols).Error
	if err != nil {
		utils.Error(c, err)
		return
	}

	views := make([]gin.H, 0, len(cols))
	for _, col := range cols {
		views = append(views, collectionView(col))
	}
	c.JSON(http.StatusOK, gin.H{"collectionsWithStats": views})
}

// GET /me/collections
func (h *Handler) ByCurrentUser(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.Error(c, err)
		return
	}
	h.listForUser(c, userID, false)
}

// GET /users/:id/collections
func (h *Handler) ByVisitedUser(c *gin.Context) {
	h.listForUser(c, c.Param("id"), true)
}

func (h *Handler) listForUser(c *gin.Context, userID string, paginate bool) {
	q := h.db.Where("user_id = ?", userID).
		Preload("Tags").
		Preload("Artworks")

	if paginate {
		page, pageSize := utils.Pagination(c)
		q = q.Scopes(utils.Paginate(page, pageSize))
	}

	var cols []catalog.Collection
	if err := q.Find(&cols).Error; err != nil {
		utils.Error(c, err)
		return
	}

	views := make([]gin.H, 0, len(cols))
	for _, col := range cols {
		views = append(views, collectionView(col))
	}
	c.JSON(http.StatusOK, gin.H{"collectionsWithStats": views})
}

// GET /collections/:id — detail with artworks, likes and earning totals.
func (h *Handler) GetByID(c *gin.Context) {
	var col catalog.Collection
	err := h.db.Preload("Tags").
		Preload("Artworks.Likes").
		Preload("User").
		Preload("Category").
		First(&col, "id = ?", c.Param("id")).Error
	if err != nil {
		utils.Error(c, err)
		return
	}

	var rows []earnings.Earning
	if err := h.db.Where("collection_id = ?", col.ID).Find(&rows).Error; err != nil {
		utils.Error(c, err)
		return
	}
	creatorEarning := decimal.Zero
	for _, row := range rows {
		creatorEarning = creatorEarning.Add(row.Amount)
	}

	view := collectionView(col)
	view["number_of_arts"] = len(col.Artworks)
	view["creator_earning"] = creatorEarning

	artViews := make([]gin.H, 0, len(col.Artworks))
	for _, art := range col.Artworks {
		likedBy := make([]string, 0, len(art.Likes))
		for _, like := range art.Likes {
			likedBy = append(likedBy, like.UserID)
		}
		artViews = append(artViews, gin.H{"art": art, "likes": likedBy})
	}
	view["artworks"] = artViews

	c.JSON(http.StatusOK, gin.H{"collectionData": view})
}

// ------------------------------
// POST /collections (multipart: image + fields)
// ------------------------------
func (h *Handler) Create(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.Error(c, err)
		return
	}

	name := middleware.SanitizeString(c.PostForm("name"))
	description := middleware.SanitizeString(c.PostForm("description"))
	categoryID := c.PostForm("categoryId")
	tagID := c.PostForm("tagId")

	if name == "" || categoryID == "" || tagID == "" {
		utils.Error(c, apperr.New(apperr.Validation, "Missing required fields"))
		return
	}

	var count int64
	if err := h.db.Model(&catalog.Collection{}).
		Where("name = ? AND user_id = ?", name, userID).
		Count(&count).Error; err != nil {
		utils.Error(c, err)
		return
	}
	if count > 0 {
		utils.Error(c, apperr.New(apperr.Conflict, "Collection with this name already exists for the user"))
		return
	}

	imageURL, err := utils.SaveUpload(c, h.uploader, nil, "image")
	if err != nil {
		utils.Error(c, err)
		return
	}

	var col catalog.Collection
	err = h.db.Transaction(func(tx *gorm.DB) error {
		slug, _, err := catalog.UniqueSlug(tx, &catalog.Collection{}, name)
		if err != nil {
			return err
		}

		col = catalog.Collection{
			Name:        name,
			Slug:        slug,
			Description: description,
			Image:       imageURL,
			CoverPhoto:  imageURL,
			UserID:      userID,
			CategoryID:  categoryID,
		}
		if err := tx.Create(&col).Error; err != nil {
			return err
		}

		var tag catalog.Tag
		if err := tx.First(&tag, "id = ?", tagID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.Validation, "Unknown tag id")
			}
			return err
		}
		return tx.Model(&col).Association("Tags").Append(&tag)
	})
	if err != nil {
		utils.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": col})
}

// PATCH /collections/:id — name and description only.
func (h *Handler) UpdateName(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.Error(c, err)
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var col catalog.Collection
	if err := h.db.First(&col, "id = ?", c.Param("id")).Error; err != nil {
		utils.Error(c, err)
		return
	}

	actor := access.Actor{ID: userID, Role: utils.CurrentRole(c)}
	if err := access.Authorize(actor, access.Resource{OwnerID: col.UserID}, access.ActionUpdate); err != nil {
		utils.Error(c, err)
		return
	}

	patch := map[string]interface{}{}
	if req.Name != nil {
		patch["name"] = middleware.SanitizeString(*req.Name)
	}
	if req.Description != nil {
		patch["description"] = middleware.SanitizeString(*req.Description)
	}
	if len(patch) == 0 {
		utils.Error(c, apperr.New(apperr.Validation, "No fields to update"))
		return
	}

	if err := h.db.Model(&col).Updates(patch).Error; err != nil {
		utils.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Collection name and description updated"})
}

// PATCH /collections/:id/image
func (h *Handler) ReplaceImage(c *gin.Context) {
	h.replaceImage(c, "image")
}

// PATCH /collections/:id/cover-image
func (h *Handler) ReplaceCoverImage(c *gin.Context) {
	h.replaceImage(c, "cover_photo")
}

func (h *Handler) replaceImage(c *gin.Context, column string) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.Error(c, err)
		return
	}

	var col catalog.Collection
	if err := h.db.First(&col, "id = ?", c.Param("id")).Error; err != nil {
		utils.Error(c, err)
		return
	}

	actor := access.Actor{ID: userID, Role: utils.CurrentRole(c)}
	if err := access.Authorize(actor, access.Resource{OwnerID: col.UserID}, access.ActionUpdate); err != nil {
		utils.Error(c, err)
		return
	}

	url, err := utils.SaveUpload(c, h.uploader, nil, "image")
	if err != nil {
		utils.Error(c, err)
		return
	}

	if err := h.db.Model(&col).Update(column, url).Error; err != nil {
		utils.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Collection updated", column: url})
}

// DELETE /collections/:id
func (h *Handler) Delete(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.Error(c, err)
		return
	}

	var col catalog.Collection
	if err := h.db.First(&col, "id = ?", c.Param("id")).Error; err != nil {
		utils.Error(c, err)
		return
	}

	actor := access.Actor{ID: userID, Role: utils.CurrentRole(c)}
	if err := access.Authorize(actor, access.Resource{OwnerID: col.UserID}, access.ActionDelete); err != nil {
		utils.Error(c, err)
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		// artworks stay in the catalog, just uncollected
		if err := tx.Model(&catalog.Artwork{}).
			Where("collection_id = ?", col.ID).
			Update("collection_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&col).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&col).Error
	})
	if err != nil {
		utils.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Collection deleted successfully"})
}
