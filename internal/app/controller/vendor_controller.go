package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/toshniwal-akshay/ecommerce-project/internal/app/service"
	"github.com/toshniwal-akshay/ecommerce-project/internal/errors"
	"github.com/toshniwal-akshay/ecommerce-project/internal/middleware"
)

type VendorController struct {
	vendorService service.VendorService
}

func NewVendorController(vendorService service.VendorService) *VendorController {
	return &VendorController{
		vendorService: vendorService,
	}
}

type UpdateShopRequest struct {
	ShopName string `json:"shop_name" binding:"required"`
}

type ApproveVendorRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}

// ListVendors returns all approved vendors for the marketplace listing
// GET /api/v1/marketplace
func (ctrl *VendorController) ListVendors(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	vendors, err := ctrl.vendorService.ListApproved()
	if err != nil {
		log.Error("Failed to list vendors", err, nil)
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"vendors":      vendors,
		"vendor_count": len(vendors),
	})
}

// GetVendorDetail returns one vendor's storefront with its categories
// and available products
// GET /api/v1/marketplace/:vendor_slug
func (ctrl *VendorController) GetVendorDetail(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	slug := c.Param("vendor_slug")
	detail, err := ctrl.vendorService.GetBySlug(slug)
	if err != nil {
		if err == service.ErrVendorNotFound {
			errors.NotFound(c, errors.VendorNotFound, "Vendor could not be found")
			return
		}
		log.Error("Failed to fetch vendor detail", err, map[string]interface{}{
			"slug": slug,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, detail)
}

// GetMyShop returns the calling vendor's shop record
// GET /api/v1/vendor/shop
func (ctrl *VendorController) GetMyShop(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	vendor, err := ctrl.vendorService.GetByUserID(userID)
	if err != nil {
		if err == service.ErrVendorNotFound {
			errors.NotFound(c, errors.VendorNotFound, "Vendor could not be found")
			return
		}
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"vendor": vendor,
	})
}

// UpdateShop renames the calling vendor's shop (slug regenerates)
// PUT /api/v1/vendor/shop
func (ctrl *VendorController) UpdateShop(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	userID, _ := middleware.GetUserID(c)

	var req UpdateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid shop data")
		return
	}

	vendor, err := ctrl.vendorService.UpdateShop(userID, req.ShopName)
	if err != nil {
		if err == service.ErrVendorNotFound {
			errors.NotFound(c, errors.VendorNotFound, "Vendor could not be found")
			return
		}
		log.Error("Failed to update shop", err, map[string]interface{}{
			"user_id": userID,
		})
		info := errors.ParseError(err, "vendor update")
		errors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"vendor":  vendor,
		"message": "Shop updated",
	})
}

// ApproveVendor flips a vendor's marketplace approval (admin only)
// PATCH /api/v1/admin/vendors/:id/approval
func (ctrl *VendorController) ApproveVendor(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	vendorID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid vendor id")
		return
	}

	var req ApproveVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid approval data")
		return
	}

	vendor, err := ctrl.vendorService.Approve(uint(vendorID), *req.Approved)
	if err != nil {
		if err == service.ErrVendorNotFound {
			errors.NotFound(c, errors.VendorNotFound, "Vendor could not be found")
			return
		}
		log.Error("Failed to update vendor approval", err, map[string]interface{}{
			"vendor_id": vendorID,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"vendor":  vendor,
		"message": "Vendor approval updated",
	})
}
