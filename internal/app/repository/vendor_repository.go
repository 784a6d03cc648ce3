package repository

import (
	"github.com/toshniwal-akshay/ecommerce-project/internal/app/model"
	"github.com/toshniwal-akshay/ecommerce-project/pkg/logger"
	"gorm.io/gorm"
)

type VendorRepository interface {
	Create(vendor *model.Vendor) error
	FindByID(id uint) (*model.Vendor, error)
	FindByUserID(userID uint) (*model.Vendor, error)
	FindBySlug(slug string) (*model.Vendor, error)
	FindApproved() ([]model.Vendor, error)
	FindByIDs(ids []uint) ([]model.Vendor, error)
	Update(vendor *model.Vendor) error
}

type vendorRepository struct {
	db *gorm.DB
}

func NewVendorRepository(db *gorm.DB) VendorRepository {
	return &vendorRepository{db: db}
}

func (r *vendorRepository) Create(vendor *model.Vendor) error {
	logger.Debug("Creating vendor in database", map[string]interface{}{
		"user_id":   vendor.UserID,
		"shop_name": vendor.ShopName,
	})

	if err := r.db.Create(vendor).Error; err != nil {
		logger.Error("Failed to create vendor in database", err, map[string]interface{}{
			"user_id": vendor.UserID,
		})
		return err
	}
	return nil
}

func (r *vendorRepository) FindByID(id uint) (*model.Vendor, error) {
	var vendor model.Vendor
	err := r.db.Preload("User").First(&vendor, id).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *vendorRepository) FindByUserID(userID uint) (*model.Vendor, error) {
	var vendor model.Vendor
	err := r.db.Where("user_id = ?", userID).First(&vendor).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *vendorRepository) FindBySlug(slug string) (*model.Vendor, error) {
	var vendor model.Vendor
	err := r.db.Where("slug = ?", slug).First(&vendor).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *vendorRepository) FindApproved() ([]model.Vendor, error) {
	var vendors []model.Vendor
	err := r.db.Where("is_approved = ?", true).
		Joins("JOIN users ON users.id = vendors.user_id AND users.is_active = ?", true).
		Order("vendors.shop_name ASC").
		Find(&vendors).Error
	if err != nil {
		logger.Error("Failed to find approved vendors in database", err, nil)
		return nil, err
	}
	return vendors, nil
}

func (r *vendorRepository) FindByIDs(ids []uint) ([]model.Vendor, error) {
	var vendors []model.Vendor
	err := r.db.Preload("User").Where("id IN ?", ids).Find(&vendors).Error
	if err != nil {
		return nil, err
	}
	return vendors, nil
}

func (r *vendorRepository) Update(vendor *model.Vendor) error {
	logger.Debug("Updating vendor in database", map[string]interface{}{
		"vendor_id": vendor.ID,
	})

	if err := r.db.Save(vendor).Error; err != nil {
		logger.Error("Failed to update vendor in database", err, map[string]interface{}{
			"vendor_id": vendor.ID,
		})
		return err
	}
	return nil
}
