package model

import (
	"time"
)

// CartItem is one (user, product) line of unconfirmed purchase intent.
// Quantity never persists at zero; the row is deleted instead.
// Hard-deleted (no gorm.DeletedAt): a soft-deleted row would keep
// occupying the (user, product) unique index.
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_user_product_cart,unique" json:"user_id"`
	ProductID uint      `gorm:"not null;index:idx_user_product_cart,unique" json:"product_id"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	User    User    `gorm:"foreignKey:UserID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
