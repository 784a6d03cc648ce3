package model

import (
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// Category is a vendor-scoped product grouping. Names are unique per
// vendor, not globally.
type Category struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	VendorID    uint           `gorm:"not null;index:idx_vendor_category,unique" json:"vendor_id"`
	Name        string         `gorm:"type:varchar(50);not null;index:idx_vendor_category,unique" json:"name"`
	Slug        string         `gorm:"index" json:"slug"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Vendor   Vendor    `gorm:"foreignKey:VendorID" json:"-"`
	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}

func (c *Category) BeforeSave(tx *gorm.DB) error {
	if c.Name != "" {
		c.Slug = slug.Make(c.Name)
	}
	return nil
}
