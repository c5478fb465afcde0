package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thao-tran/glowcare-admin-api/config"
	"github.com/thao-tran/glowcare-admin-api/models"
	"github.com/thao-tran/glowcare-admin-api/utils"
)

// ListBrands handles GET /api/admin/brands
func ListBrands(c *gin.Context) {
	var brands []models.Brand
	if err := config.GetDB().Order("name ASC").Find(&brands).Error; err != nil {
		utils.RespondError(c, utils.NewInternalError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"brands": brands})
}

// ListCategories handles GET /api/admin/categories
func ListCategories(c *gin.Context) {
	var categories []models.Category
	if err := config.GetDB().Order("name ASC").Find(&categories).Error; err != nil {
		utils.RespondError(c, utils.NewInternalError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
