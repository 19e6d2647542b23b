package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID              string     `gorm:"primaryKey;size:36" json:"id"`
	Username        string     `gorm:"uniqueIndex;size:150" json:"username"`
	Password        string     `gorm:"size:255" json:"-"` // bcrypt hash, never returned in JSON
	Email           string     `gorm:"size:255" json:"email,omitempty"`
	FirstName       string     `gorm:"size:120" json:"firstName,omitempty"`
	LastName        string     `gorm:"size:120" json:"lastName,omitempty"`
	ProfileImageURL string     `gorm:"column:profile_image_url;size:512" json:"profileImageUrl,omitempty"`
	Role            string     `gorm:"size:32;default:user" json:"role"`
	LastLoginAt     *time.Time `gorm:"column:last_login_at" json:"lastLoginAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// BeforeCreate assigns a UUID when the caller didn't provide an id,
// so upsert-by-id from external identity providers keeps working.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
