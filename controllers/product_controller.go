package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thao-tran/glowcare-admin-api/config"
	"github.com/thao-tran/glowcare-admin-api/models"
	"github.com/thao-tran/glowcare-admin-api/services"
	"github.com/thao-tran/glowcare-admin-api/utils"
	"gorm.io/gorm"
)

// productSortFields whitelists the sortable product list fields
var productSortFields = map[string]string{
	"name":           "name",
	"stock_quantity": "stock_quantity",
	"created_at":     "created_at",
}

// ProductRequest is the create/update body for a catalog product
type ProductRequest struct {
	Name          string            `json:"name" binding:"required"`
	Function      string            `json:"function" binding:"omitempty,oneof=lotion wash cream serum mask other"`
	SkinGroup     string            `json:"skin_group" binding:"omitempty,oneof=oily dry combination sensitive normal"`
	AgeGroup      string            `json:"age_group"`
	GenderTarget  string            `json:"gender_target" binding:"omitempty,oneof=male female unisex"`
	StockQuantity int               `json:"stock_quantity" binding:"gte=0"`
	Features      map[string]string `json:"features"`
	BrandID       uint              `json:"brand_id" binding:"required"`
	CategoryID    uint              `json:"category_id" binding:"required"`
}

// ListProducts handles GET /api/admin/products - paginated product list
// with optional case-insensitive search over the product name
func ListProducts(c *gin.Context) {
	params, err := services.ParseListParams(c.Request.URL.Query())
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	db := config.GetDB()
	var products []models.Product
	page, err := services.PaginatedList(db, &models.Product{}, params,
		[]string{"name"}, productSortFields, &products, "Brand", "Category")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products":    products,
		"totalPages":  page.TotalPages,
		"currentPage": page.CurrentPage,
		"total":       page.Total,
	})
}

// GetProduct handles GET /api/admin/products/:id
func GetProduct(c *gin.Context) {
	id, err := parseIDParam(c, "product")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	db := config.GetDB()
	var product models.Product
	if err := db.Preload("Brand").Preload("Category").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, utils.NewNotFoundError("product not found"))
			return
		}
		utils.RespondError(c, utils.NewInternalError(err))
		return
	}

	resolveProductImageURL(&product)

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// CreateProduct handles POST /api/admin/products
func CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewValidationError(err.Error()))
		return
	}

	db := config.GetDB()
	if err := checkCatalogReferences(db, req.BrandID, req.CategoryID); err != nil {
		utils.RespondError(c, err)
		return
	}

	product := models.Product{
		Name:          req.Name,
		Function:      defaultString(req.Function, "other"),
		SkinGroup:     defaultString(req.SkinGroup, "normal"),
		AgeGroup:      req.AgeGroup,
		GenderTarget:  defaultString(req.GenderTarget, "unisex"),
		StockQuantity: req.StockQuantity,
		Features:      req.Features,
		BrandID:       req.BrandID,
		CategoryID:    req.CategoryID,
	}

	if err := db.Create(&product).Error; err != nil {
		utils.RespondError(c, utils.NewInternalError(err))
		return
	}

	// Load the catalog relationships to return complete data
	if err := db.Preload("Brand").Preload("Category").First(&product, product.ID).Error; err != nil {
		utils.RespondError(c, utils.NewInternalError(err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// UpdateProduct handles PUT /api/admin/products/:id
func UpdateProduct(c *gin.Context) {
	id, err := parseIDParam(c, "product")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewValidationError(err.Error()))
		return
	}

	db := config.GetDB()
	var product models.Product
	if err := db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, utils.NewNotFoundError("product not found"))
			return
		}
		utils.RespondError(c, utils.NewInternalError(err))
		return
	}

	if err := checkCatalogReferences(db, req.BrandID, req.CategoryID); err != nil {
		utils.RespondError(c, err)
		return
	}

	product.Name = req.Name
	product.Function = defaultString(req.Function, "other")
	product.SkinGroup = defaultString(req.SkinGroup, "normal")
	product.AgeGroup = req.AgeGroup
	product.GenderTarget = defaultString(req.GenderTarget, "unisex")
	product.StockQuantity = req.StockQuantity
	product.Features = req.Features
	product.BrandID = req.BrandID
	product.CategoryID = req.CategoryID

	if err := db.Save(&product).Error; err != nil {
		utils.RespondError(c, utils.NewInternalError(err))
		return
	}

	if err := db.Preload("Brand").Preload("Category").First(&product, product.ID).Error; err != nil {
		utils.RespondError(c, utils.NewInternalError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// DeleteProduct handles DELETE /api/admin/products/:id - soft delete
func DeleteProduct(c *gin.Context) {
	id, err := parseIDParam(c, "product")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	db := config.GetDB()
	var product models.Product
	if err := db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, utils.NewNotFoundError("product not found"))
			return
		}
		utils.RespondError(c, utils.NewInternalError(err))
		return
	}

	if err := db.Delete(&product).Error; err != nil {
		utils.RespondError(c, utils.NewInternalError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

// UploadProductImage handles POST /api/admin/products/:id/image - stores a
// product image in S3 and persists its key, replacing any previous image
func UploadProductImage(c *gin.Context) {
	id, err := parseIDParam(c, "product")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	db := config.GetDB()
	var product models.Product
	if err := db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, utils.NewNotFoundError("product not found"))
			return
		}
		utils.RespondError(c, utils.NewInternalError(err))
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		utils.RespondError(c, utils.NewValidationError("image file is required"))
		return
	}

	imageService := services.GetImageService()
	if imageService == nil {
		utils.RespondError(c, utils.NewInternalError(errors.New("image service not configured")))
		return
	}

	imageKey, err := imageService.UploadImage(fileHeader)
	if err != nil {
		var uploadErr *utils.FileUploadError
		if errors.As(err, &uploadErr) {
			utils.RespondError(c, utils.NewValidationError(uploadErr.Message))
			return
		}
		utils.RespondError(c, utils.NewInternalError(err))
		return
	}

	// Best-effort cleanup of the replaced image; the new key is already
	// stored in S3 so a stale object must not fail the request
	if product.ImageS3Key != nil && *product.ImageS3Key != "" {
		if err := imageService.DeleteImage(*product.ImageS3Key); err != nil {
			log.Printf("warning: failed to delete previous product image %s: %v", *product.ImageS3Key, err)
		}
	}

	product.ImageS3Key = &imageKey
	if err := db.Model(&product).Update("image_s3_key", imageKey).Error; err != nil {
		utils.RespondError(c, utils.NewInternalError(err))
		return
	}

	resolveProductImageURL(&product)

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// resolveProductImageURL fills the computed presigned URL field when the
// product has an uploaded image and the image service is configured
func resolveProductImageURL(product *models.Product) {
	if product.ImageS3Key == nil || *product.ImageS3Key == "" {
		return
	}

	imageService := services.GetImageService()
	if imageService == nil {
		return
	}

	url, err := imageService.GetImageURL(*product.ImageS3Key)
	if err != nil {
		log.Printf("warning: failed to resolve image URL for product %d: %v", product.ID, err)
		return
	}
	product.ImageURL = &url
}

// checkCatalogReferences verifies the referenced brand and category exist
func checkCatalogReferences(db *gorm.DB, brandID, categoryID uint) error {
	var count int64
	if err := db.Model(&models.Brand{}).Where("id = ?", brandID).Count(&count).Error; err != nil {
		return utils.NewInternalError(err)
	}
	if count == 0 {
		return utils.NewValidationError("referenced brand does not exist")
	}

	if err := db.Model(&models.Category{}).Where("id = ?", categoryID).Count(&count).Error; err != nil {
		return utils.NewInternalError(err)
	}
	if count == 0 {
		return utils.NewValidationError("referenced category does not exist")
	}
	return nil
}

// defaultString returns fallback when value is empty
func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
