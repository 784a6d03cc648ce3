package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/toshniwal-akshay/ecommerce-project/internal/app/model"
	"github.com/toshniwal-akshay/ecommerce-project/internal/app/service"
	"github.com/toshniwal-akshay/ecommerce-project/internal/errors"
	"github.com/toshniwal-akshay/ecommerce-project/internal/middleware"
)

// CatalogController exposes the vendor dashboard's category and product
// management plus the public product search. Dashboard routes resolve
// the calling vendor from the authenticated user, never from the
// payload.
type CatalogController struct {
	catalogService service.CatalogService
	vendorService  service.VendorService
}

func NewCatalogController(
	catalogService service.CatalogService,
	vendorService service.VendorService,
) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
		vendorService:  vendorService,
	}
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type ProductRequest struct {
	CategoryID  uint    `json:"category_id" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	ImageURL    string  `json:"image_url"`
	IsAvailable *bool   `json:"is_available"`
}

// ListCategories returns the calling vendor's categories
// GET /api/v1/vendor/categories
func (ctrl *CatalogController) ListCategories(c *gin.Context) {
	vendor, ok := ctrl.callingVendor(c)
	if !ok {
		return
	}

	categories, err := ctrl.catalogService.ListCategories(vendor.ID)
	if err != nil {
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
	})
}

// CreateCategory adds a category to the calling vendor's menu
// POST /api/v1/vendor/categories
func (ctrl *CatalogController) CreateCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	vendor, ok := ctrl.callingVendor(c)
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid category data")
		return
	}

	category, err := ctrl.catalogService.CreateCategory(vendor.ID, service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		log.Error("Failed to create category", err, map[string]interface{}{
			"vendor_id": vendor.ID,
		})
		info := errors.ParseError(err, "category create")
		errors.RespondWithError(c, http.StatusConflict, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"category": category,
		"message":  "Category added",
	})
}

// UpdateCategory renames a category owned by the calling vendor
// PUT /api/v1/vendor/categories/:id
func (ctrl *CatalogController) UpdateCategory(c *gin.Context) {
	vendor, ok := ctrl.callingVendor(c)
	if !ok {
		return
	}

	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid category id")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid category data")
		return
	}

	category, err := ctrl.catalogService.UpdateCategory(vendor.ID, uint(categoryID), service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		if err == service.ErrCategoryNotFound {
			errors.NotFound(c, errors.CategoryNotFound, "Category could not be found")
			return
		}
		info := errors.ParseError(err, "category update")
		errors.RespondWithError(c, http.StatusConflict, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": category,
		"message":  "Category updated",
	})
}

// DeleteCategory removes a category owned by the calling vendor
// DELETE /api/v1/vendor/categories/:id
func (ctrl *CatalogController) DeleteCategory(c *gin.Context) {
	vendor, ok := ctrl.callingVendor(c)
	if !ok {
		return
	}

	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid category id")
		return
	}

	if err := ctrl.catalogService.DeleteCategory(vendor.ID, uint(categoryID)); err != nil {
		if err == service.ErrCategoryNotFound {
			errors.NotFound(c, errors.CategoryNotFound, "Category could not be found")
			return
		}
		info := errors.ParseError(err, "category delete")
		errors.RespondWithError(c, http.StatusConflict, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Category has been deleted!",
	})
}

// ListProducts returns the calling vendor's products
// GET /api/v1/vendor/products
func (ctrl *CatalogController) ListProducts(c *gin.Context) {
	vendor, ok := ctrl.callingVendor(c)
	if !ok {
		return
	}

	products, err := ctrl.catalogService.ListProducts(vendor.ID)
	if err != nil {
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
	})
}

// CreateProduct adds a product under one of the vendor's categories
// POST /api/v1/vendor/products
func (ctrl *CatalogController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	vendor, ok := ctrl.callingVendor(c)
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid product data")
		return
	}

	product, err := ctrl.catalogService.CreateProduct(vendor.ID, service.ProductInput{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		if err == service.ErrCategoryNotFound {
			errors.NotFound(c, errors.CategoryNotFound, "Category could not be found")
			return
		}
		log.Error("Failed to create product", err, map[string]interface{}{
			"vendor_id": vendor.ID,
		})
		info := errors.ParseError(err, "product create")
		errors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"product": product,
		"message": "Product added",
	})
}

// UpdateProduct edits a product owned by the calling vendor
// PUT /api/v1/vendor/products/:id
func (ctrl *CatalogController) UpdateProduct(c *gin.Context) {
	vendor, ok := ctrl.callingVendor(c)
	if !ok {
		return
	}

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid product id")
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid product data")
		return
	}

	product, err := ctrl.catalogService.UpdateProduct(vendor.ID, uint(productID), service.ProductInput{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		switch err {
		case service.ErrProductNotFound:
			errors.NotFound(c, errors.ProductNotFound, "This product does not exist!")
		case service.ErrCategoryNotFound:
			errors.NotFound(c, errors.CategoryNotFound, "Category could not be found")
		default:
			info := errors.ParseError(err, "product update")
			errors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
		"message": "Product updated",
	})
}

// DeleteProduct removes a product owned by the calling vendor
// DELETE /api/v1/vendor/products/:id
func (ctrl *CatalogController) DeleteProduct(c *gin.Context) {
	vendor, ok := ctrl.callingVendor(c)
	if !ok {
		return
	}

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid product id")
		return
	}

	if err := ctrl.catalogService.DeleteProduct(vendor.ID, uint(productID)); err != nil {
		if err == service.ErrProductNotFound {
			errors.NotFound(c, errors.ProductNotFound, "This product does not exist!")
			return
		}
		info := errors.ParseError(err, "product delete")
		errors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product has been deleted!",
	})
}

// SearchProducts searches available products across approved vendors
// GET /api/v1/marketplace/search?keyword=
func (ctrl *CatalogController) SearchProducts(c *gin.Context) {
	keyword := c.Query("keyword")

	products, err := ctrl.catalogService.SearchProducts(keyword)
	if err != nil {
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products":      products,
		"product_count": len(products),
	})
}

// callingVendor resolves the vendor record behind the authenticated
// user. Writes the error response itself on failure.
func (ctrl *CatalogController) callingVendor(c *gin.Context) (*model.Vendor, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return nil, false
	}

	vendor, err := ctrl.vendorService.GetByUserID(userID)
	if err != nil {
		if err == service.ErrVendorNotFound {
			errors.NotFound(c, errors.VendorNotFound, "Vendor could not be found")
			return nil, false
		}
		errors.InternalError(c, "")
		return nil, false
	}

	return vendor, true
}
