package repository

import (
	"github.com/toshniwal-akshay/ecommerce-project/internal/app/model"
	"github.com/toshniwal-akshay/ecommerce-project/pkg/logger"
	"gorm.io/gorm"
)

type CartRepository interface {
	Create(item *model.CartItem) error
	FindByID(id uint) (*model.CartItem, error)
	FindByUserAndProduct(userID, productID uint) (*model.CartItem, error)
	FindByUserID(userID uint) ([]model.CartItem, error)
	SumQuantities(userID uint) (int, error)
	Update(item *model.CartItem) error
	Delete(item *model.CartItem) error
	DeleteByUserID(db *gorm.DB, userID uint) error
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Create(item *model.CartItem) error {
	logger.Debug("Creating cart item in database", map[string]interface{}{
		"user_id":    item.UserID,
		"product_id": item.ProductID,
		"quantity":   item.Quantity,
	})

	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create cart item in database", err, map[string]interface{}{
			"user_id":    item.UserID,
			"product_id": item.ProductID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) FindByID(id uint) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.Preload("Product").First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) FindByUserAndProduct(userID, productID uint) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByUserID returns the user's cart ordered by insertion time, so the
// cart page renders items in the order they were added.
func (r *cartRepository) FindByUserID(userID uint) ([]model.CartItem, error) {
	var items []model.CartItem
	err := r.db.Preload("Product").Preload("Product.Vendor").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		logger.Error("Failed to find cart items in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return items, nil
}

func (r *cartRepository) SumQuantities(userID uint) (int, error) {
	var total int64
	err := r.db.Model(&model.CartItem{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	if err != nil {
		logger.Error("Failed to sum cart quantities in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return 0, err
	}
	return int(total), nil
}

func (r *cartRepository) Update(item *model.CartItem) error {
	if err := r.db.Save(item).Error; err != nil {
		logger.Error("Failed to update cart item in database", err, map[string]interface{}{
			"cart_item_id": item.ID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) Delete(item *model.CartItem) error {
	logger.Debug("Deleting cart item from database", map[string]interface{}{
		"cart_item_id": item.ID,
		"user_id":      item.UserID,
	})

	if err := r.db.Delete(item).Error; err != nil {
		logger.Error("Failed to delete cart item from database", err, map[string]interface{}{
			"cart_item_id": item.ID,
		})
		return err
	}
	return nil
}

// DeleteByUserID clears the whole cart. It takes the caller's transaction
// handle so payment confirmation can clear the cart atomically with the
// order update.
func (r *cartRepository) DeleteByUserID(db *gorm.DB, userID uint) error {
	if err := db.Where("user_id = ?", userID).Delete(&model.CartItem{}).Error; err != nil {
		logger.Error("Failed to clear cart in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}
	return nil
}
