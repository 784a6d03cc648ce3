package model

import (
	"fmt"
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type Vendor struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	UserID        uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	UserProfileID uint           `gorm:"not null" json:"user_profile_id"`
	ShopName      string         `gorm:"type:varchar(50);not null" json:"shop_name"`
	Slug          string         `gorm:"uniqueIndex" json:"slug"`
	IsApproved    bool           `gorm:"default:false;index" json:"is_approved"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	User        User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	UserProfile UserProfile `gorm:"foreignKey:UserProfileID" json:"user_profile,omitempty"`
	Categories  []Category  `gorm:"foreignKey:VendorID" json:"categories,omitempty"`
	Products    []Product   `gorm:"foreignKey:VendorID" json:"products,omitempty"`
}

func (Vendor) TableName() string {
	return "vendors"
}

// BeforeCreate assigns the vendor slug. The owning user's id is appended
// so two shops with the same name never collide.
func (v *Vendor) BeforeCreate(tx *gorm.DB) error {
	if v.Slug == "" {
		v.Slug = fmt.Sprintf("%s-%d", slug.Make(v.ShopName), v.UserID)
	}
	return nil
}

// BeforeUpdate regenerates the slug when the shop name changes.
func (v *Vendor) BeforeUpdate(tx *gorm.DB) error {
	var old Vendor
	if err := tx.First(&old, v.ID).Error; err != nil {
		return err
	}
	if v.ShopName != "" && v.ShopName != old.ShopName {
		v.Slug = fmt.Sprintf("%s-%d", slug.Make(v.ShopName), old.UserID)
	}
	return nil
}
