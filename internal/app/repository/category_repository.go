package repository

import (
	"github.com/toshniwal-akshay/ecommerce-project/internal/app/model"
	"github.com/toshniwal-akshay/ecommerce-project/pkg/logger"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(category *model.Category) error
	FindByID(id uint) (*model.Category, error)
	FindByVendorID(vendorID uint) ([]model.Category, error)
	FindByVendorAndSlug(vendorID uint, slug string) (*model.Category, error)
	Update(category *model.Category) error
	Delete(category *model.Category) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *model.Category) error {
	logger.Debug("Creating category in database", map[string]interface{}{
		"vendor_id": category.VendorID,
		"name":      category.Name,
	})

	if err := r.db.Create(category).Error; err != nil {
		logger.Error("Failed to create category in database", err, map[string]interface{}{
			"vendor_id": category.VendorID,
			"name":      category.Name,
		})
		return err
	}
	return nil
}

func (r *categoryRepository) FindByID(id uint) (*model.Category, error) {
	var category model.Category
	err := r.db.First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindByVendorID(vendorID uint) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.Where("vendor_id = ?", vendorID).Order("name ASC").Find(&categories).Error
	if err != nil {
		logger.Error("Failed to find categories by vendor in database", err, map[string]interface{}{
			"vendor_id": vendorID,
		})
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) FindByVendorAndSlug(vendorID uint, slug string) (*model.Category, error) {
	var category model.Category
	err := r.db.Where("vendor_id = ? AND slug = ?", vendorID, slug).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) Update(category *model.Category) error {
	if err := r.db.Save(category).Error; err != nil {
		logger.Error("Failed to update category in database", err, map[string]interface{}{
			"category_id": category.ID,
		})
		return err
	}
	return nil
}

func (r *categoryRepository) Delete(category *model.Category) error {
	logger.Debug("Deleting category from database", map[string]interface{}{
		"category_id": category.ID,
	})

	if err := r.db.Delete(category).Error; err != nil {
		logger.Error("Failed to delete category from database", err, map[string]interface{}{
			"category_id": category.ID,
		})
		return err
	}
	return nil
}
