package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"regexp"
	"time"

	"arts-market/config"
	"arts-market/internal/apperr"
	"arts-market/internal/domain/users"
	"arts-market/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Handler struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

func isPasswordStrong(password string) bool {
	if len(password) < 6 {
		return false
	}
	hasLetter := false
	hasDigit := false
	for _, c := range password {
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
			hasLetter = true
		case '0' <= c && c <= '9':
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

func isEmailValid(email string) bool {
	pattern := `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`
	matched, _ := regexp.MatchString(pattern, email)
	return matched
}

func generateRegistrationToken() string {
	bytes := make([]byte, 32)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

func signToken(user *users.User, ttl time.Duration) (string, error) {
	role := users.RoleArtist
	for _, r := range user.Roles {
		if r.Role == users.RoleAdmin {
			role = users.RoleAdmin
		}
	}
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    role,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.JWT_SECRET))
}

// POST /register
func (h *Handler) Register(c *gin.Context) {
	var input struct {
		FirstName string `json:"firstName" binding:"required,min=3"`
		LastName  string `json:"lastName" binding:"required,min=3"`
		Username  string `json:"username" binding:"required,min=4"`
		Email     string `json:"email" binding:"required,email"`
		Password  string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !isPasswordStrong(input.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 6 characters long and contain both letters and numbers"})
		return
	}
	if !isEmailValid(input.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
		return
	}

	var count int64
	if err := h.db.Model(&users.User{}).
		Where("email = ? OR username = ?", input.Email, input.Username).
		Count(&count).Error; err != nil {
		utils.Error(c, err)
		return
	}
	if count > 0 {
		utils.Error(c, apperr.New(apperr.Conflict, "Email or username already registered"))
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Error(c, err)
		return
	}

	user := users.User{
		FirstName:         input.FirstName,
		LastName:          input.LastName,
		Username:          input.Username,
		Email:             input.Email,
		Password:          string(hashedPassword),
		IsActive:          true,
		RegistrationToken: generateRegistrationToken(),
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		var role users.Role
		if err := tx.Where(users.Role{Role: users.RoleArtist}).
			Attrs(users.Role{RoleNumber: 2}).
			FirstOrCreate(&role).Error; err != nil {
			return err
		}
		if err := tx.Model(&user).Association("Roles").Append(&role); err != nil {
			return err
		}

		// every account starts with placeholder social links
		links := defaultSocialLinks(user.ID)
		return tx.Create(&links).Error
	})
	if err != nil {
		utils.Error(c, err)
		return
	}

	if err := SendRegistrationEmail(user.Email, user.RegistrationToken); err != nil {
		// registration stays valid; the link can be re-sent
		c.JSON(http.StatusCreated, gin.H{"user": user, "warning": "Could not send registration email"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

func defaultSocialLinks(userID string) users.SocialLink {
	return users.SocialLink{
		UserID:    userID,
		Facebook:  "https://facebook.com",
		Twitter:   "https://twitter.com",
		Instagram: "https://instagram.com",
		Reddit:    "https://reddit.com",
		Pinterest: "https://pinterest.com",
	}
}

// POST /login
func (h *Handler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user users.User
	err := h.db.Preload("Roles").First(&user, "email = ?", input.Email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		utils.Error(c, err)
		return
	}

	if !user.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is deactivated"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	accessToken, err := signToken(&user, 24*time.Hour)
	if err != nil {
		utils.Error(c, err)
		return
	}
	refreshToken, err := signToken(&user, 7*24*time.Hour)
	if err != nil {
		utils.Error(c, err)
		return
	}

	if err := h.db.Model(&user).Update("refresh_token", refreshToken).Error; err != nil {
		utils.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
		"user":         user,
	})
}

// POST /refresh-token
func (h *Handler) Refresh(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user users.User
	err := h.db.Preload("Roles").First(&user, "refresh_token = ?", input.RefreshToken).Error
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}

	accessToken, err := signToken(&user, 24*time.Hour)
	if err != nil {
		utils.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": accessToken})
}

// POST /change-password
func (h *Handler) ChangePassword(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.Error(c, err)
		return
	}

	var input struct {
		OldPassword string `json:"oldPassword" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !isPasswordStrong(input.NewPassword) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 6 characters long and contain both letters and numbers"})
		return
	}

	var user users.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		utils.Error(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.OldPassword)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Old password is incorrect"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.Error(c, err)
		return
	}

	if err := h.db.Model(&user).Update("password", string(hashed)).Error; err != nil {
		utils.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}
