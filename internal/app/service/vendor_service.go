package service

import (
	"errors"
	"fmt"

	"github.com/toshniwal-akshay/ecommerce-project/internal/app/model"
	"github.com/toshniwal-akshay/ecommerce-project/internal/app/repository"
	"github.com/toshniwal-akshay/ecommerce-project/pkg/logger"
	"github.com/toshniwal-akshay/ecommerce-project/pkg/mailer"
	"gorm.io/gorm"
)

var (
	ErrVendorNotFound    = errors.New("vendor not found")
	ErrVendorNotApproved = errors.New("vendor is not approved")
)

// VendorDetail is an approved vendor's storefront: its categories with
// only the available products attached.
type VendorDetail struct {
	Vendor     model.Vendor     `json:"vendor"`
	Categories []model.Category `json:"categories"`
}

type VendorService interface {
	ListApproved() ([]model.Vendor, error)
	GetBySlug(slug string) (*VendorDetail, error)
	GetByUserID(userID uint) (*model.Vendor, error)
	UpdateShop(userID uint, shopName string) (*model.Vendor, error)
	Approve(vendorID uint, approved bool) (*model.Vendor, error)
}

type vendorService struct {
	vendorRepo   repository.VendorRepository
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	mailer       mailer.Mailer
}

func NewVendorService(
	vendorRepo repository.VendorRepository,
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	m mailer.Mailer,
) VendorService {
	return &vendorService{
		vendorRepo:   vendorRepo,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		mailer:       m,
	}
}

// ListApproved returns the vendors shown on the marketplace listing:
// approved, with an active owning account.
func (s *vendorService) ListApproved() ([]model.Vendor, error) {
	vendors, err := s.vendorRepo.FindApproved()
	if err != nil {
		logger.Error("Failed to list approved vendors", err, nil)
		return nil, err
	}

	logger.Debug("Listed approved vendors", map[string]interface{}{
		"count": len(vendors),
	})
	return vendors, nil
}

// GetBySlug loads one vendor's public storefront. Unapproved vendors
// are indistinguishable from missing ones.
func (s *vendorService) GetBySlug(slug string) (*VendorDetail, error) {
	vendor, err := s.vendorRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Vendor not found by slug", map[string]interface{}{
				"slug": slug,
			})
			return nil, ErrVendorNotFound
		}
		return nil, err
	}

	if !vendor.IsApproved {
		logger.Warn("Vendor storefront requested but not approved", map[string]interface{}{
			"vendor_id": vendor.ID,
			"slug":      slug,
		})
		return nil, ErrVendorNotFound
	}

	categories, err := s.categoryRepo.FindByVendorID(vendor.ID)
	if err != nil {
		return nil, err
	}

	products, err := s.productRepo.FindAvailableByVendorID(vendor.ID)
	if err != nil {
		return nil, err
	}

	// Attach only the available products to their categories.
	byCategory := make(map[uint][]model.Product, len(categories))
	for _, p := range products {
		byCategory[p.CategoryID] = append(byCategory[p.CategoryID], p)
	}
	for i := range categories {
		categories[i].Products = byCategory[categories[i].ID]
	}

	return &VendorDetail{
		Vendor:     *vendor,
		Categories: categories,
	}, nil
}

func (s *vendorService) GetByUserID(userID uint) (*model.Vendor, error) {
	vendor, err := s.vendorRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVendorNotFound
		}
		return nil, err
	}
	return vendor, nil
}

func (s *vendorService) UpdateShop(userID uint, shopName string) (*model.Vendor, error) {
	vendor, err := s.vendorRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVendorNotFound
		}
		return nil, err
	}

	vendor.ShopName = shopName
	if err := s.vendorRepo.Update(vendor); err != nil {
		return nil, err
	}

	logger.Info("Vendor shop updated", map[string]interface{}{
		"vendor_id": vendor.ID,
		"shop_name": shopName,
	})
	return vendor, nil
}

// Approve flips a vendor's approval flag and notifies the owner by
// email. The notification is fire-and-forget.
func (s *vendorService) Approve(vendorID uint, approved bool) (*model.Vendor, error) {
	logger.Info("Updating vendor approval", map[string]interface{}{
		"vendor_id": vendorID,
		"approved":  approved,
	})

	vendor, err := s.vendorRepo.FindByID(vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVendorNotFound
		}
		return nil, err
	}

	vendor.IsApproved = approved
	if err := s.vendorRepo.Update(vendor); err != nil {
		return nil, err
	}

	if s.mailer != nil && vendor.User.Email != "" {
		go s.sendApprovalMail(vendor, approved)
	}

	return vendor, nil
}

func (s *vendorService) sendApprovalMail(vendor *model.Vendor, approved bool) {
	var subject, body string
	if approved {
		subject = "Congratulations! Your shop has been approved"
		body = fmt.Sprintf(
			"Hello %s,\r\n\r\nYour shop %q is now approved and visible on the marketplace. You can start adding products right away.\r\n",
			vendor.User.FirstName, vendor.ShopName,
		)
	} else {
		subject = "We are sorry! You are not eligible for publishing your shop on our marketplace"
		body = fmt.Sprintf(
			"Hello %s,\r\n\r\nYour shop %q is currently not approved for the marketplace. Please contact support for details.\r\n",
			vendor.User.FirstName, vendor.ShopName,
		)
	}

	msg := mailer.Message{
		To:      []string{vendor.User.Email},
		Subject: subject,
		Body:    body,
	}
	if err := s.mailer.Send(msg); err != nil {
		logger.Error("Failed to send vendor approval mail", err, map[string]interface{}{
			"vendor_id": vendor.ID,
		})
	}
}
