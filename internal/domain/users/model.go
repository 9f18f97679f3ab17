package users

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	FirstName string `gorm:"column:first_name" json:"first_name"`
	LastName  string `gorm:"column:last_name" json:"last_name"`
	Email     string `gorm:"not null;uniqueIndex:idx_users_email" json:"email"`
	Username  string `gorm:"not null;uniqueIndex:idx_users_username" json:"username"`
	Password  string `json:"-"`

	Image      string `json:"image"`
	CoverPhoto string `gorm:"column:cover_photo" json:"cover_photo"`

	Phone   string `json:"phone"`
	Gender  string `json:"gender"`
	City    string `json:"city"`
	Address string `json:"address"`
	Country string `json:"country"`
	Bio     string `json:"bio"`

	IsActive bool `gorm:"not null;default:true" json:"isActive"`

	RegistrationToken string  `gorm:"uniqueIndex:idx_users_registration_token" json:"-"`
	RefreshToken      *string `gorm:"uniqueIndex:idx_users_refresh_token" json:"-"`

	Roles []Role `gorm:"many2many:user_roles;" json:"roles,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

type Role struct {
	ID         string `gorm:"type:uuid;primaryKey" json:"id"`
	Role       string `gorm:"not null;uniqueIndex:idx_roles_role" json:"role"`
	RoleNumber int    `gorm:"column:role_number" json:"role_number"`
}

func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

const (
	RoleAdmin  = "admin"
	RoleArtist = "artist"
)

type SocialLink struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"type:uuid;not null;uniqueIndex:idx_social_links_user" json:"userId"`

	Facebook  string `json:"facebook"`
	Twitter   string `json:"twitter"`
	Instagram string `json:"instagram"`
	Reddit    string `json:"reddit"`
	Pinterest string `json:"pinterest"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *SocialLink) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
