package users

import (
	"net/http"

	"arts-market/internal/domain/users"
	"arts-market/internal/utils"

	"github.com/gin-gonic/gin"
)

// PATCH /me/image
func (h *Handler) ReplaceImage(c *gin.Context) {
	h.replaceImage(c, "image")
}

// PATCH /me/cover-image
func (h *Handler) ReplaceCoverImage(c *gin.Context) {
	h.replaceImage(c, "cover_photo")
}

func (h *Handler) replaceImage(c *gin.Context, column string) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.Error(c, err)
		return
	}

	var user users.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		utils.Error(c, err)
		return
	}

	url, err := utils.SaveUpload(c, h.uploader, nil, "image")
	if err != nil {
		utils.Error(c, err)
		return
	}

	if err := h.db.Model(&user).Update(column, url).Error; err != nil {
		utils.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated", column: url})
}
