package users

import (
	"net/http"

	"arts-market/internal/apperr"
	"arts-market/internal/domain/access"
	"arts-market/internal/domain/earnings"
	"arts-market/internal/domain/users"
	"arts-market/internal/infra/storage"
	"arts-market/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	db       *gorm.DB
	recorder *earnings.Recorder
	uploader storage.Uploader
}

func New(db *gorm.DB, recorder *earnings.Recorder, uploader storage.Uploader) *Handler {
	return &Handler{db: db, recorder: recorder, uploader: uploader}
}

// GET /users (admin)
func (h *Handler) List(c *gin.Context) {
	page, pageSize := utils.Pagination(c)

	var list []users.User
	err := h.db.Scopes(utils.Paginate(page, pageSize)).
		Preload("Roles").
		Find(&list).Error
	if err != nil {
		utils.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /users/active-split (admin)
func (h *Handler) ActiveSplit(c *gin.Context) {
	var list []users.User
	if err := h.db.Find(&list).Error; err != nil {
		utils.Error(c, err)
		return
	}

	activeUsers := make([]users.User, 0)
	inactiveUsers := make([]users.User, 0)
	for _, u := range list {
		if u.IsActive {
			activeUsers = append(activeUsers, u)
		} else {
			inactiveUsers = append(inactiveUsers, u)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"activeUsers":   activeUsers,
		"inactiveUsers": inactiveUsers,
	})
}

// GET /me — profile plus derived total earnings.
func (h *Handler) Me(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.Error(c, err)
		return
	}

	var user users.User
	if err := h.db.Preload("Roles").First(&user, "id = ?", userID).Error; err != nil {
		utils.Error(c, err)
		return
	}

	totalEarning, err := h.recorder.TotalFor(userID)
	if err != nil {
		utils.Error(c, err)
		return
	}

	roleNames := make([]string, 0, len(user.Roles))
	for _, r := range user.Roles {
		roleNames = append(roleNames, r.Role)
	}

	c.JSON(http.StatusOK, gin.H{
		"user":         user,
		"roleNames":    roleNames,
		"totalEarning": totalEarning,
	})
}

// GET /users/:id — public profile of a visited user.
func (h *Handler) GetByID(c *gin.Context) {
	var user users.User
	if err := h.db.Preload("Roles").First(&user, "id = ?", c.Param("id")).Error; err != nil {
		utils.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateProfileRequest uses pointer fields so "absent" and "set to empty" are
// distinguishable; only present fields are applied.
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Username  *string `json:"username"`
	Phone     *string `json:"phone"`
	Gender    *string `json:"gender"`
	City      *string `json:"city"`
	Address   *string `json:"address"`
	Country   *string `json:"country"`
	Bio       *string `json:"bio"`
}

func (r *UpdateProfileRequest) changes() map[string]interface{} {
	patch := map[string]interface{}{}
	set := func(col string, v *string) {
		if v != nil {
			patch[col] = *v
		}
	}
	set("first_name", r.FirstName)
	set("last_name", r.LastName)
	set("email", r.Email)
	set("username", r.Username)
	set("phone", r.Phone)
	set("gender", r.Gender)
	set("city", r.City)
	set("address", r.Address)
	set("country", r.Country)
	set("bio", r.Bio)
	return patch
}

// PATCH /me
func (h *Handler) Update(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.Error(c, err)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := req.changes()
	if len(patch) == 0 {
		utils.Error(c, apperr.New(apperr.Validation, "No fields to update"))
		return
	}

	var user users.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		utils.Error(c, err)
		return
	}

	if err := h.db.Model(&user).Updates(patch).Error; err != nil {
		utils.Error(c, apperr.Wrap(apperr.Conflict, err, "Email or username already taken"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User data updated successfully", "data": user})
}

// PATCH /users/:id/deactivate (admin) — soft: the account is never deleted.
func (h *Handler) Deactivate(c *gin.Context) {
	h.setActive(c, false)
}

// PATCH /users/:id/activate (admin)
func (h *Handler) Activate(c *gin.Context) {
	h.setActive(c, true)
}

func (h *Handler) setActive(c *gin.Context, active bool) {
	actor := access.Actor{ID: c.GetString("user_id"), Role: utils.CurrentRole(c)}
	if err := access.Authorize(actor, access.Resource{}, access.ActionManage); err != nil {
		utils.Error(c, err)
		return
	}

	res := h.db.Model(&users.User{}).Where("id = ?", c.Param("id")).Update("is_active", active)
	if res.Error != nil {
		utils.Error(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(c, apperr.New(apperr.NotFound, "User not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated", "isActive": active})
}

// GET /me/social-links
func (h *Handler) SocialLinks(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.Error(c, err)
		return
	}

	var links users.SocialLink
	if err := h.db.First(&links, "user_id = ?", userID).Error; err != nil {
		utils.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"socialLinks": links})
}

// PATCH /me/social-links
func (h *Handler) UpdateSocialLinks(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.Error(c, err)
		return
	}

	var req struct {
		Facebook  *string `json:"facebook"`
		Twitter   *string `json:"twitter"`
		Instagram *string `json:"instagram"`
		Reddit    *string `json:"reddit"`
		Pinterest *string `json:"pinterest"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := map[string]interface{}{}
	set := func(col string, v *string) {
		if v != nil {
			patch[col] = *v
		}
	}
	set("facebook", req.Facebook)
	set("twitter", req.Twitter)
	set("instagram", req.Instagram)
	set("reddit", req.Reddit)
	set("pinterest", req.Pinterest)

	if len(patch) == 0 {
		utils.Error(c, apperr.New(apperr.Validation, "No fields to update"))
		return
	}

	var links users.SocialLink
	if err := h.db.First(&links, "user_id = ?", userID).Error; err != nil {
		utils.Error(c, err)
		return
	}
	if err := h.db.Model(&links).Updates(patch).Error; err != nil {
		utils.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"socialLinks": links})
}
