package art

import (
	"errors"
	"net/http"

	"arts-market/internal/apperr"
	"arts-market/internal/domain/catalog"
	"arts-market/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// POST /arts/likes — toggle: insert if absent, delete if present.
func (h *Handler) ToggleLike(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.Error(c, err)
		return
	}

	var req struct {
		ArtID string `json:"artId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var count int64
	if err := h.db.Model(&catalog.Artwork{}).Where("id = ?", req.ArtID).Count(&count).Error; err != nil {
		utils.Error(c, err)
		return
	}
	if count == 0 {
		utils.Error(c, apperr.New(apperr.NotFound, "Art not found"))
		return
	}

	var existing catalog.Like
	err = h.db.First(&existing, "user_id = ? AND artwork_id = ?", userID, req.ArtID).Error
	switch {
	case err == nil:
		if err := h.db.Delete(&existing).Error; err != nil {
			utils.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Like removed successfully"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		like := catalog.Like{UserID: userID, ArtworkID: req.ArtID}
		if err := h.db.Create(&like).Error; err != nil {
			utils.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, like)
	default:
		utils.Error(c, err)
	}
}

// GET /me/liked-arts
func (h *Handler) LikedByCurrentUser(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.Error(c, err)
		return
	}

	var likes []catalog.Like
	if err := h.db.Where("user_id = ?", userID).Find(&likes).Error; err != nil {
		utils.Error(c, err)
		return
	}

	artIDs := make([]string, 0, len(likes))
	for _, like := range likes {
		artIDs = append(artIDs, like.ArtworkID)
	}

	arts := make([]gin.H, 0, len(artIDs))
	if len(artIDs) > 0 {
		var rows []catalog.Artwork
		if err := h.db.Where("id IN ?", artIDs).Find(&rows).Error; err != nil {
			utils.Error(c, err)
			return
		}

		for _, art := range rows {
			var likesCount int64
			if err := h.db.Model(&catalog.Like{}).Where("artwork_id = ?", art.ID).Count(&likesCount).Error; err != nil {
				utils.Error(c, err)
				return
			}
			arts = append(arts, gin.H{"art": art, "likesCount": likesCount})
		}
	}

	c.JSON(http.StatusOK, gin.H{"arts": arts})
}
