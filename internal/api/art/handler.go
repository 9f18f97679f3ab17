package art

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"arts-market/internal/apperr"
	"arts-market/internal/app/http/middleware"
	"arts-market/internal/domain/access"
	"arts-market/internal/domain/catalog"
	"arts-market/internal/domain/ownership"
	"arts-market/internal/infra/moderation"
	"arts-market/internal/infra/storage"
	"arts-market/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	minPrice = 500
	maxPrice = 50_000_000
	minYear  = 1995
)

type Handler struct {
	db       *gorm.DB
	registry *ownership.Registry
	ledger   *ownership.Ledger
	uploader storage.Uploader
	screener moderation.Screener
}

func New(db *gorm.DB, registry *ownership.Registry, ledger *ownership.Ledger, uploader storage.Uploader, screener moderation.Screener) *Handler {
	return &Handler{db: db, registry: registry, ledger: ledger, uploader: uploader, screener: screener}
}

func validatePrice(price float64) error {
	if price < minPrice || price > maxPrice {
		return apperr.New(apperr.Validation, "Price should be between %d and %d", minPrice, maxPrice)
	}
	return nil
}

func validateYear(year int) error {
	currentYear := time.Now().Year()
	if year < minYear || year > currentYear {
		return apperr.New(apperr.Validation, "Year should be a valid year between %d and %d", minYear, currentYear)
	}
	return nil
}

// ------------------------------
// POST /arts  (multipart: image + catalog fields)
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
	collectionID := c.PostForm("collectionId")
	tagID := c.PostForm("tagId")

	if name == "" || categoryID == "" || collectionID == "" || tagID == "" {
		utils.Error(c, apperr.New(apperr.Validation, "Missing required fields"))
		return
	}

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil {
		utils.Error(c, apperr.New(apperr.Validation, "Price must be a number"))
		return
	}
	if err := validatePrice(price); err != nil {
		utils.Error(c, err)
		return
	}

	year, err := strconv.Atoi(c.PostForm("year"))
	if err != nil {
		utils.Error(c, apperr.New(apperr.Validation, "Year must be a number"))
		return
	}
	if err := validateYear(year); err != nil {
		utils.Error(c, err)
		return
	}

	width, _ := strconv.Atoi(c.PostForm("width"))
	height, _ := strconv.Atoi(c.PostForm("height"))
	if width <= 0 || height <= 0 {
		utils.Error(c, apperr.New(apperr.Validation, "Width and height are required"))
		return
	}

	var mediumIDs []string
	if err := json.Unmarshal([]byte(c.PostForm("mediumId")), &mediumIDs); err != nil || len(mediumIDs) == 0 {
		utils.Error(c, apperr.New(apperr.Validation, "mediumId should be a non-empty array"))
		return
	}

	isExplicit := c.PostForm("isExplicit") == "yes"

	imageURL, err := utils.SaveUpload(c, h.uploader, h.screener, "image")
	if err != nil {
		utils.Error(c, err)
		return
	}

	var art catalog.Artwork
	err = h.db.Transaction(func(tx *gorm.DB) error {
		slug, seq, err := catalog.UniqueSlug(tx, &catalog.Artwork{}, name)
		if err != nil {
			return err
		}

		var mediums []catalog.Medium
		if err := tx.Where("id IN ?", mediumIDs).Find(&mediums).Error; err != nil {
			return err
		}
		if len(mediums) != len(mediumIDs) {
			return apperr.New(apperr.Validation, "Unknown medium id")
		}

		art = catalog.Artwork{
			Name:         name,
			Slug:         slug,
			Serial:       fmt.Sprintf("ART-%d-%d", time.Now().UnixMilli(), seq),
			Description:  &description,
			Image:        imageURL,
			CategoryID:   &categoryID,
			CollectionID: &collectionID,
			Price:        &price,
			Width:        width,
			Height:       height,
			Year:         year,
			IsExplicit:   isExplicit,
			UserID:       userID,
		}
		if err := tx.Create(&art).Error; err != nil {
			return err
		}

		if err := tx.Model(&art).Association("Mediums").Append(&mediums); err != nil {
			return err
		}

		var tag catalog.Tag
		if err := tx.First(&tag, "id = ?", tagID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.Validation, "Unknown tag id")
			}
			return err
		}
		if err := tx.Model(&art).Association("Tags").Append(&tag); err != nil {
			return err
		}

		// reference + initial ownership belong to the same logical operation:
		// a failed artwork leaves neither behind
		ref, err := h.registry.CreateReference(tx, art.ID)
		if err != nil {
			return err
		}
		if _, err := h.ledger.Initialize(tx, ref.ID, userID); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		utils.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"art": art})
}

// ------------------------------
// GET /arts — random feed of fully catalogued art
// ------------------------------
func (h *Handler) Feed(c *gin.Context) {
	const batchSize = 20

	var arts []catalog.Artwork
	err := h.db.Where("collection_id IS NOT NULL AND price IS NOT NULL").
		Preload("Mediums").
		Order("RANDOM()").
		Limit(batchSize).
		Find(&arts).Error
	if err != nil {
		utils.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"arts": arts})
}

// GET /arts/hero
func (h *Handler) Hero(c *gin.Context) {
	var arts []catalog.Artwork
	if err := h.db.Preload("User").Find(&arts).Error; err != nil {
		utils.Error(c, err)
		return
	}

	combined := make([]gin.H, 0, len(arts))
	for _, art := range arts {
		entry := gin.H{"art": art}
		if art.User != nil {
			entry["username"] = art.User.Username
			entry["userImage"] = art.User.Image
		}
		combined = append(combined, entry)
	}

	c.JSON(http.StatusOK, gin.H{"combinedArtsData": combined})
}

// GET /me/arts
func (h *Handler) OfCurrentUser(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.Error(c, err)
		return
	}

	page, pageSize := utils.Pagination(c)

	var arts []catalog.Artwork
	err = h.db.Where("user_id = ?", userID).
		Scopes(utils.Paginate(page, pageSize)).
		Find(&arts).Error
	if err != nil {
		utils.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, arts)
}

// GET /users/:id/arts — only catalogued art of a visited user.
func (h *Handler) OfVisitedUser(c *gin.Context) {
	page, pageSize := utils.Pagination(c)

	var arts []catalog.Artwork
	err := h.db.Where("user_id = ? AND collection_id IS NOT NULL AND price IS NOT NULL", c.Param("id")).
		Scopes(utils.Paginate(page, pageSize)).
		Find(&arts).Error
	if err != nil {
		utils.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"arts": arts})
}

// ------------------------------
// GET /arts/:id — detail with derived fields
// ------------------------------
func (h *Handler) GetByID(c *gin.Context) {
	id := c.Param("id")

	var art catalog.Artwork
	err := h.db.Preload("Category").
		Preload("Collection").
		Preload("Mediums").
		First(&art, "id = ?", id).Error
	if err != nil {
		utils.Error(c, err)
		return
	}

	var likesCount int64
	if err := h.db.Model(&catalog.Like{}).Where("artwork_id = ?", id).Count(&likesCount).Error; err != nil {
		utils.Error(c, err)
		return
	}

	mediumNames := make([]string, 0, len(art.Mediums))
	for _, m := range art.Mediums {
		mediumNames = append(mediumNames, m.Name)
	}

	body := gin.H{
		"id":            art.ID,
		"name":          art.Name,
		"image":         art.Image,
		"category_id":   art.CategoryID,
		"collection_id": art.CollectionID,
		"price":         art.Price,
		"description":   art.Description,
		"width":         art.Width,
		"height":        art.Height,
		"year":          art.Year,
		"serial":        art.Serial,
		"status":        art.Status,
		"isExplicit":    art.IsExplicit,
		"created_at":    art.CreatedAt,
		"likesCount":    likesCount,
		"art_mediums":   mediumNames,
	}
	if art.Category != nil {
		body["category"] = art.Category.Name
	}
	if art.Collection != nil {
		body["collection"] = art.Collection.Name
	}

	// nudge a new owner to finish the catalog entry
	var message *string
	if !art.Catalogued() {
		m := "Congratulations on acquiring your new art!"
		if art.CollectionID == nil {
			m += " Add a collection."
		}
		if art.Price == nil {
			m += " Add a price."
		}
		message = &m
	}

	c.JSON(http.StatusOK, gin.H{"art": body, "message": message})
}

// ------------------------------
// PATCH /arts/:id — owner completes or edits the catalog entry
// ------------------------------
func (h *Handler) Update(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.Error(c, err)
		return
	}

	var req struct {
		Description  *string  `json:"description"`
		Price        *float64 `json:"price"`
		CollectionID *string  `json:"collection"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var art catalog.Artwork
	if err := h.db.First(&art, "id = ?", c.Param("id")).Error; err != nil {
		utils.Error(c, err)
		return
	}

	actor := access.Actor{ID: userID, Role: utils.CurrentRole(c)}
	if err := access.Authorize(actor, access.Resource{OwnerID: art.UserID}, access.ActionUpdate); err != nil {
		utils.Error(c, err)
		return
	}

	patch := map[string]interface{}{}
	if req.Description != nil {
		patch["description"] = middleware.SanitizeString(*req.Description)
	}
	if req.Price != nil {
		if err := validatePrice(*req.Price); err != nil {
			utils.Error(c, err)
			return
		}
		patch["price"] = *req.Price
	}
	if req.CollectionID != nil {
		var collection catalog.Collection
		if err := h.db.First(&collection, "id = ? AND user_id = ?", *req.CollectionID, userID).Error; err != nil {
			utils.Error(c, apperr.New(apperr.NotFound, "Collection not found"))
			return
		}
		patch["collection_id"] = collection.ID
	}
	if len(patch) == 0 {
		utils.Error(c, apperr.New(apperr.Validation, "No fields to update"))
		return
	}

	if err := h.db.Model(&art).Updates(patch).Error; err != nil {
		utils.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"art": art})
}

// ------------------------------
// DELETE /arts/:id — removes the artwork and its whole ownership chain
// ------------------------------
func (h *Handler) Delete(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.Error(c, err)
		return
	}

	var art catalog.Artwork
	if err := h.db.First(&art, "id = ?", c.Param("id")).Error; err != nil {
		utils.Error(c, err)
		return
	}

	actor := access.Actor{ID: userID, Role: utils.CurrentRole(c)}
	if err := access.Authorize(actor, access.Resource{OwnerID: art.UserID}, access.ActionDelete); err != nil {
		utils.Error(c, err)
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		var ref ownership.Reference
		if err := tx.First(&ref, "artwork_id = ?", art.ID).Error; err == nil {
			if err := tx.Delete(&ownership.Record{}, "reference_id = ?", ref.ID).Error; err != nil {
				return err
			}
			if err := tx.Delete(&ref).Error; err != nil {
				return err
			}
		}
		if err := tx.Delete(&catalog.Like{}, "artwork_id = ?", art.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&art).Error
	})
	if err != nil {
		utils.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GET /form-data — categories, tags, mediums and the caller's collections.
func (h *Handler) FormData(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.Error(c, err)
		return
	}

	var (
		categories  []catalog.Category
		tags        []catalog.Tag
		mediums     []catalog.Medium
		collections []catalog.Collection
	)
	if err := h.db.Find(&categories).Error; err != nil {
		utils.Error(c, err)
		return
	}
	if err := h.db.Find(&tags).Error; err != nil {
		utils.Error(c, err)
		return
	}
	if err := h.db.Find(&mediums).Error; err != nil {
		utils.Error(c, err)
		return
	}
	if err := h.db.Where("user_id = ?", userID).Find(&collections).Error; err != nil {
		utils.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories":  categories,
		"tags":        tags,
		"mediums":     mediums,
		"collections": collections,
	})
}
