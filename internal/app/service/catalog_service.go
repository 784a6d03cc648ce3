package service

import (
	"errors"

	"github.com/toshniwal-akshay/ecommerce-project/internal/app/model"
	"github.com/toshniwal-akshay/ecommerce-project/internal/app/repository"
	"github.com/toshniwal-akshay/ecommerce-project/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrProductNotFound  = errors.New("product not found")
)

// CategoryInput carries the editable category fields.
type CategoryInput struct {
	Name        string
	Description string
}

// ProductInput carries the editable product fields.
type ProductInput struct {
	CategoryID  uint
	Name        string
	Description string
	Price       float64
	ImageURL    string
	IsAvailable *bool
}

// CatalogService manages a vendor's categories and products. Every
// mutating call is scoped to the calling vendor: touching another
// vendor's record reports not-found, never forbidden.
type CatalogService interface {
	ListCategories(vendorID uint) ([]model.Category, error)
	CreateCategory(vendorID uint, input CategoryInput) (*model.Category, error)
	UpdateCategory(vendorID, categoryID uint, input CategoryInput) (*model.Category, error)
	DeleteCategory(vendorID, categoryID uint) error

	ListProducts(vendorID uint) ([]model.Product, error)
	GetProduct(productID uint) (*model.Product, error)
	CreateProduct(vendorID uint, input ProductInput) (*model.Product, error)
	UpdateProduct(vendorID, productID uint, input ProductInput) (*model.Product, error)
	DeleteProduct(vendorID, productID uint) error

	SearchProducts(keyword string) ([]model.Product, error)
}

type catalogService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
) CatalogService {
	return &catalogService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

func (s *catalogService) ListCategories(vendorID uint) ([]model.Category, error) {
	return s.categoryRepo.FindByVendorID(vendorID)
}

func (s *catalogService) CreateCategory(vendorID uint, input CategoryInput) (*model.Category, error) {
	logger.Info("Creating category", map[string]interface{}{
		"vendor_id": vendorID,
		"name":      input.Name,
	})

	category := &model.Category{
		VendorID:    vendorID,
		Name:        input.Name,
		Description: input.Description,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *catalogService) UpdateCategory(vendorID, categoryID uint, input CategoryInput) (*model.Category, error) {
	category, err := s.findOwnedCategory(vendorID, categoryID)
	if err != nil {
		return nil, err
	}

	category.Name = input.Name
	category.Description = input.Description
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}

	logger.Info("Category updated", map[string]interface{}{
		"vendor_id":   vendorID,
		"category_id": categoryID,
	})
	return category, nil
}

func (s *catalogService) DeleteCategory(vendorID, categoryID uint) error {
	category, err := s.findOwnedCategory(vendorID, categoryID)
	if err != nil {
		return err
	}

	if err := s.categoryRepo.Delete(category); err != nil {
		return err
	}

	logger.Info("Category deleted", map[string]interface{}{
		"vendor_id":   vendorID,
		"category_id": categoryID,
	})
	return nil
}

func (s *catalogService) ListProducts(vendorID uint) ([]model.Product, error) {
	return s.productRepo.FindByVendorID(vendorID)
}

func (s *catalogService) GetProduct(productID uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *catalogService) CreateProduct(vendorID uint, input ProductInput) (*model.Product, error) {
	logger.Info("Creating product", map[string]interface{}{
		"vendor_id":   vendorID,
		"category_id": input.CategoryID,
		"name":        input.Name,
	})

	// The target category must belong to the calling vendor.
	if _, err := s.findOwnedCategory(vendorID, input.CategoryID); err != nil {
		return nil, err
	}

	available := true
	if input.IsAvailable != nil {
		available = *input.IsAvailable
	}

	product := &model.Product{
		VendorID:    vendorID,
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		IsAvailable: available,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *catalogService) UpdateProduct(vendorID, productID uint, input ProductInput) (*model.Product, error) {
	product, err := s.findOwnedProduct(vendorID, productID)
	if err != nil {
		return nil, err
	}

	if input.CategoryID != 0 && input.CategoryID != product.CategoryID {
		if _, err := s.findOwnedCategory(vendorID, input.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = input.CategoryID
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	if input.ImageURL != "" {
		product.ImageURL = input.ImageURL
	}
	if input.IsAvailable != nil {
		product.IsAvailable = *input.IsAvailable
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}

	logger.Info("Product updated", map[string]interface{}{
		"vendor_id":  vendorID,
		"product_id": productID,
	})
	return product, nil
}

func (s *catalogService) DeleteProduct(vendorID, productID uint) error {
	product, err := s.findOwnedProduct(vendorID, productID)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(product); err != nil {
		return err
	}

	logger.Info("Product deleted", map[string]interface{}{
		"vendor_id":  vendorID,
		"product_id": productID,
	})
	return nil
}

func (s *catalogService) SearchProducts(keyword string) ([]model.Product, error) {
	if keyword == "" {
		return []model.Product{}, nil
	}
	return s.productRepo.Search(keyword)
}

func (s *catalogService) findOwnedCategory(vendorID, categoryID uint) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	if category.VendorID != vendorID {
		logger.Warn("Category ownership mismatch", map[string]interface{}{
			"vendor_id":   vendorID,
			"category_id": categoryID,
		})
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

func (s *catalogService) findOwnedProduct(vendorID, productID uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if product.VendorID != vendorID {
		logger.Warn("Product ownership mismatch", map[string]interface{}{
			"vendor_id":  vendorID,
			"product_id": productID,
		})
		return nil, ErrProductNotFound
	}
	return product, nil
}
