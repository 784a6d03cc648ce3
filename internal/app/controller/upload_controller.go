package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/toshniwal-akshay/ecommerce-project/internal/errors"
	"github.com/toshniwal-akshay/ecommerce-project/internal/middleware"
	"github.com/toshniwal-akshay/ecommerce-project/internal/storage"
)

type UploadController struct {
	storage *storage.S3Storage
}

func NewUploadController(storage *storage.S3Storage) *UploadController {
	return &UploadController{
		storage: storage,
	}
}

type PresignUploadRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	Folder      string `json:"folder"` // products, profile-photos, cover-photos
}

var allowedImageTypes = []string{
	"image/jpeg",
	"image/jpg",
	"image/png",
	"image/gif",
	"image/webp",
}

var allowedFolders = map[string]bool{
	"products":       true,
	"profile-photos": true,
	"cover-photos":   true,
}

// PresignUpload hands out a pre-signed S3 PUT URL for an image upload
// POST /api/v1/upload/presigned-url
func (ctrl *UploadController) PresignUpload(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req PresignUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid presigned URL request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid upload data")
		return
	}

	if err := ctrl.storage.ValidateContentType(req.ContentType, allowedImageTypes); err != nil {
		log.Warn("Invalid content type", map[string]interface{}{
			"content_type": req.ContentType,
		})
		errors.BadRequest(c, errors.UploadInvalidFileType, "Only image files are allowed (JPEG, PNG, GIF, WEBP)")
		return
	}

	folder := req.Folder
	if folder == "" {
		folder = "products"
	}
	if !allowedFolders[folder] {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Unknown upload folder")
		return
	}

	upload, err := ctrl.storage.PresignUpload(req.Filename, req.ContentType, folder)
	if err != nil {
		log.Error("Failed to generate presigned URL", err, map[string]interface{}{
			"filename":     req.Filename,
			"content_type": req.ContentType,
			"folder":       folder,
		})
		errors.RespondWithError(c, http.StatusInternalServerError, errors.UploadFailed, "Failed to prepare upload")
		return
	}

	log.Info("Presigned URL generated", map[string]interface{}{
		"folder": folder,
		"key":    upload.Key,
	})

	c.JSON(http.StatusOK, upload)
}
