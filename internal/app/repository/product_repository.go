package repository

import (
	"strings"

	"github.com/toshniwal-akshay/ecommerce-project/internal/app/model"
	"github.com/toshniwal-akshay/ecommerce-project/pkg/logger"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindByID(id uint) (*model.Product, error)
	FindByVendorID(vendorID uint) ([]model.Product, error)
	FindAvailableByVendorID(vendorID uint) ([]model.Product, error)
	Search(keyword string) ([]model.Product, error)
	Update(product *model.Product) error
	Delete(product *model.Product) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"vendor_id":   product.VendorID,
		"category_id": product.CategoryID,
		"name":        product.Name,
	})

	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"vendor_id": product.VendorID,
			"name":      product.Name,
		})
		return err
	}
	return nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Vendor").Preload("Category").First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindByVendorID(vendorID uint) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Category").
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		logger.Error("Failed to find products by vendor in database", err, map[string]interface{}{
			"vendor_id": vendorID,
		})
		return nil, err
	}
	return products, nil
}

func (r *productRepository) FindAvailableByVendorID(vendorID uint) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Category").
		Where("vendor_id = ? AND is_available = ?", vendorID, true).
		Order("name ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// Search matches available products whose name or category name contains
// the keyword, limited to approved vendors.
func (r *productRepository) Search(keyword string) ([]model.Product, error) {
	var products []model.Product
	pattern := "%" + strings.ToLower(keyword) + "%"
	err := r.db.Preload("Vendor").Preload("Category").
		Joins("JOIN vendors ON vendors.id = products.vendor_id AND vendors.is_approved = ?", true).
		Joins("JOIN categories ON categories.id = products.category_id").
		Where("products.is_available = ? AND (LOWER(products.name) LIKE ? OR LOWER(categories.name) LIKE ?)", true, pattern, pattern).
		Find(&products).Error
	if err != nil {
		logger.Error("Failed to search products in database", err, map[string]interface{}{
			"keyword": keyword,
		})
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Update(product *model.Product) error {
	if err := r.db.Save(product).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}

func (r *productRepository) Delete(product *model.Product) error {
	logger.Debug("Deleting product from database", map[string]interface{}{
		"product_id": product.ID,
	})

	if err := r.db.Delete(product).Error; err != nil {
		logger.Error("Failed to delete product from database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}
