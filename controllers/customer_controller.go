package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/thao-tran/glowcare-admin-api/config"
	"github.com/thao-tran/glowcare-admin-api/models"
	"github.com/thao-tran/glowcare-admin-api/services"
	"github.com/thao-tran/glowcare-admin-api/utils"
	"gorm.io/gorm"
)

// customerSortFields whitelists the sortable customer list fields
var customerSortFields = map[string]string{
	"name":       "name",
	"email":      "email",
	"status":     "status",
	"created_at": "created_at",
}

// ListCustomers handles GET /api/admin/customers - paginated customer list
// with optional case-insensitive search over name and email
func ListCustomers(c *gin.Context) {
	params, err := services.ParseListParams(c.Request.URL.Query())
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	db := config.GetDB()
	var customers []models.Customer
	page, err := services.PaginatedList(db, &models.Customer{}, params,
		[]string{"name", "email"}, customerSortFields, &customers)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customers":   customers,
		"totalPages":  page.TotalPages,
		"currentPage": page.CurrentPage,
		"total":       page.Total,
	})
}

// CustomerOrderView is an order row with its staff attribution resolved to
// a display name
type CustomerOrderView struct {
	models.Order
	StaffName string `json:"staffName"`
}

// GetCustomer handles GET /api/admin/customers/:id - a customer together
// with their orders, most recent first
func GetCustomer(c *gin.Context) {
	id, err := parseIDParam(c, "customer")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	db := config.GetDB()
	var customer models.Customer
	if err := db.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, utils.NewNotFoundError("customer not found"))
			return
		}
		utils.RespondError(c, utils.NewInternalError(err))
		return
	}

	var orders []models.Order
	if err := db.Preload("Staff").
		Where("customer_id = ?", customer.ID).
		Order("order_date DESC").
		Find(&orders).Error; err != nil {
		utils.RespondError(c, utils.NewInternalError(err))
		return
	}

	views := make([]CustomerOrderView, len(orders))
	for i, order := range orders {
		views[i] = CustomerOrderView{Order: order, StaffName: order.Staff.Name}
	}

	c.JSON(http.StatusOK, gin.H{
		"customer": customer,
		"orders":   views,
	})
}

// UpdateCustomerStatusRequest is the PATCH body for a status change
type UpdateCustomerStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateCustomerStatus handles PATCH /api/admin/customers/:id/status.
// The status value is checked against the enum before persisting.
// Concurrent updates to the same customer are last-write-wins at the
// store; there is no optimistic-concurrency token.
func UpdateCustomerStatus(c *gin.Context) {
	id, err := parseIDParam(c, "customer")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var req UpdateCustomerStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewValidationError("status is required"))
		return
	}

	if !models.ValidCustomerStatus(req.Status) {
		utils.RespondError(c, utils.NewValidationError(
			fmt.Sprintf("status must be %q or %q", models.CustomerStatusActive, models.CustomerStatusBlocked)))
		return
	}

	db := config.GetDB()
	var customer models.Customer
	if err := db.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, utils.NewNotFoundError("customer not found"))
			return
		}
		utils.RespondError(c, utils.NewInternalError(err))
		return
	}

	if err := db.Model(&customer).Update("status", req.Status).Error; err != nil {
		utils.RespondError(c, utils.NewInternalError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

// parseIDParam parses the :id path parameter as a positive integer
func parseIDParam(c *gin.Context, entity string) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, utils.NewValidationError(fmt.Sprintf("invalid %s id %q", entity, raw))
	}
	return uint(id), nil
}
