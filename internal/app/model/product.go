package model

import (
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	VendorID    uint           `gorm:"not null;index" json:"vendor_id"`
	CategoryID  uint           `gorm:"not null;index" json:"category_id"`
	Name        string         `gorm:"type:varchar(50);not null" json:"name"`
	Slug        string         `gorm:"index" json:"slug"`
	Description string         `gorm:"type:text" json:"description"`
	Price       float64        `gorm:"not null" json:"price"`
	ImageURL    string         `json:"image_url"`
	IsAvailable bool           `gorm:"default:true;index" json:"is_available"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Vendor   Vendor     `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
	Category Category   `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CartItems []CartItem `gorm:"foreignKey:ProductID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

func (p *Product) BeforeSave(tx *gorm.DB) error {
	if p.Name != "" {
		p.Slug = slug.Make(p.Name)
	}
	return nil
}
