package ownershipapi

import (
	"errors"
	"net/http"

	"arts-market/internal/apperr"
	"arts-market/internal/domain/access"
	"arts-market/internal/domain/catalog"
	"arts-market/internal/domain/ownership"
	"arts-market/internal/domain/users"
	"arts-market/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Handler struct {
	db       *gorm.DB
	registry *ownership.Registry
	ledger   *ownership.Ledger
}

func New(db *gorm.DB, registry *ownership.Registry, ledger *ownership.Ledger) *Handler {
	return &Handler{db: db, registry: registry, ledger: ledger}
}

// GET /ownership — paginated references with their artwork and category.
func (h *Handler) List(c *gin.Context) {
	page, pageSize := utils.Pagination(c)

	var refs []ownership.Reference
	err := h.db.Scopes(utils.Paginate(page, pageSize)).
		Preload("Artwork.Category").
		Find(&refs).Error
	if err != nil {
		utils.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"arts": refs})
}

// GET /ownership/:id — provenance of one reference, oldest record first.
func (h *Handler) History(c *gin.Context) {
	page, pageSize := utils.Pagination(c)

	records, err := h.ledger.History(c.Param("id"), page, pageSize)
	if err != nil {
		utils.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"artOwnershipRecords": records})
}

// GET /arts/:id/owner — the single current-owner record.
func (h *Handler) CurrentOwner(c *gin.Context) {
	ref, err := h.registry.Resolve(c.Param("id"))
	if err != nil {
		utils.Error(c, err)
		return
	}

	record, err := h.ledger.CurrentOwner(ref.ID)
	if err != nil {
		utils.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"currentOwner": record})
}

type ChangeOwnershipRequest struct {
	Username       string          `json:"username" binding:"required"`
	ArtID          string          `json:"art_id" binding:"required"`
	CollectionID   string          `json:"collection_id" binding:"required"`
	CollectionName string          `json:"collection_name"`
	Price          decimal.Decimal `json:"price"`
	CategoryID     string          `json:"category_id" binding:"required"`
}

// POST /ownership/change
//
// The authenticated caller is the relinquishing owner; Username names the new
// owner. The ledger performs the four writes in one transaction and credits
// the sale amount to the seller against CollectionID.
func (h *Handler) ChangeOwnership(c *gin.Context) {
	sellerID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.Error(c, err)
		return
	}

	var req ChangeOwnershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var buyer users.User
	if err := h.db.First(&buyer, "username = ?", req.Username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, apperr.New(apperr.NotFound, "User not found"))
			return
		}
		utils.Error(c, err)
		return
	}

	var category catalog.Category
	if err := h.db.First(&category, "id = ?", req.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, apperr.New(apperr.NotFound, "Category not found"))
			return
		}
		utils.Error(c, err)
		return
	}

	// the artwork lands in the buyer's same-named collection when one
	// exists, otherwise it arrives uncollected
	var newCollectionID *string
	var buyerCollection catalog.Collection
	err = h.db.First(&buyerCollection, "name = ? AND user_id = ?", req.CollectionName, buyer.ID).Error
	if err == nil {
		newCollectionID = &buyerCollection.ID
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(c, err)
		return
	}

	ref, err := h.registry.Resolve(req.ArtID)
	if err != nil {
		utils.Error(c, err)
		return
	}

	current, err := h.ledger.CurrentOwner(ref.ID)
	if err != nil {
		utils.Error(c, err)
		return
	}
	actor := access.Actor{ID: sellerID, Role: utils.CurrentRole(c)}
	if err := access.Authorize(actor, access.Resource{OwnerID: current.UserID}, access.ActionTransfer); err != nil {
		utils.Error(c, err)
		return
	}

	result, err := h.ledger.Transfer(ownership.TransferInput{
		ReferenceID:     ref.ID,
		FromOwnerID:     sellerID,
		ToOwnerID:       buyer.ID,
		Amount:          req.Price,
		CollectionID:    req.CollectionID,
		NewCollectionID: newCollectionID,
		NewCategoryID:   &category.ID,
	})
	if err != nil {
		utils.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"updateOwnership":    result.Previous,
		"createNewOwnership": result.Current,
		"earning":            result.Earning,
	})
}
