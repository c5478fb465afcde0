package controllers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/thao-tran/glowcare-admin-api/config"
	"github.com/thao-tran/glowcare-admin-api/models"
	"gorm.io/gorm"
)

// seedShop creates a brand, category, three products, a customer and a
// staff account, returning the product ids in creation order
func seedShop(t *testing.T, db *gorm.DB) (models.Customer, models.Account, []models.Product) {
	t.Helper()

	brand := models.Brand{Name: "Vita Derm"}
	category := models.Category{Name: "Skincare"}
	assert.NoError(t, db.Create(&brand).Error)
	assert.NoError(t, db.Create(&category).Error)

	products := []models.Product{
		{Name: "Hydra Lotion", Function: "lotion", StockQuantity: 50, BrandID: brand.ID, CategoryID: category.ID},
		{Name: "Glow Serum", Function: "serum", StockQuantity: 5, BrandID: brand.ID, CategoryID: category.ID},
		{Name: "Clay Mask", Function: "mask", StockQuantity: 30, BrandID: brand.ID, CategoryID: category.ID},
	}
	for i := range products {
		assert.NoError(t, db.Create(&products[i]).Error)
	}

	customer := models.Customer{Name: "John Carter", Email: "john@example.com"}
	assert.NoError(t, db.Create(&customer).Error)

	staff := models.Account{Username: "mai.staff", Password: "s3cret-pw", Name: "Mai Le", Role: models.RoleStaff}
	assert.NoError(t, db.Create(&staff).Error)

	return customer, staff, products
}

func seedCompletedOrder(t *testing.T, db *gorm.DB, customer models.Customer, staff models.Account,
	date time.Time, total float64, productID uint, quantity int, unitPrice float64) {
	t.Helper()

	order := models.Order{
		CustomerID:  customer.ID,
		StaffID:     staff.ID,
		OrderDate:   date,
		TotalAmount: total,
		Status:      models.OrderStatusCompleted,
	}
	assert.NoError(t, db.Create(&order).Error)
	assert.NoError(t, db.Create(&models.OrderDetail{
		OrderID:   order.ID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}).Error)
}

func TestGetSalesAnalytics(t *testing.T) {
	db := setupCustomerTestDB(t)
	config.SetDB(db)

	customer, staff, products := seedShop(t, db)
	seedCompletedOrder(t, db, customer, staff,
		time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), 100, products[0].ID, 3, 10)

	t.Run("returns monthly buckets and top sellers", func(t *testing.T) {
		w := performRequest(GetSalesAnalytics, "GET",
			"/api/admin/analytics/sales?startDate=2024-01-01&endDate=2024-01-31", nil, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

		salesByMonth := response["salesByMonth"].([]interface{})
		assert.Len(t, salesByMonth, 1)
		bucket := salesByMonth[0].(map[string]interface{})
		id := bucket["_id"].(map[string]interface{})
		assert.Equal(t, float64(2024), id["year"])
		assert.Equal(t, float64(1), id["month"])
		assert.Equal(t, float64(100), bucket["totalSales"])
		assert.Equal(t, float64(1), bucket["orderCount"])

		topSelling := response["topSellingProducts"].([]interface{})
		assert.Len(t, topSelling, 1)
		top := topSelling[0].(map[string]interface{})
		assert.Equal(t, float64(3), top["totalQuantity"])
		assert.Equal(t, float64(30), top["totalRevenue"])
		product := top["product"].(map[string]interface{})
		assert.Equal(t, "Hydra Lotion", product["name"])
	})

	t.Run("endDate is inclusive of the entire day", func(t *testing.T) {
		seedCompletedOrder(t, db, customer, staff,
			time.Date(2024, 1, 31, 18, 30, 0, 0, time.UTC), 55, products[1].ID, 1, 55)

		w := performRequest(GetSalesAnalytics, "GET",
			"/api/admin/analytics/sales?startDate=2024-01-01&endDate=2024-01-31", nil, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

		salesByMonth := response["salesByMonth"].([]interface{})
		assert.Len(t, salesByMonth, 1)
		bucket := salesByMonth[0].(map[string]interface{})
		assert.Equal(t, float64(155), bucket["totalSales"])
		assert.Equal(t, float64(2), bucket["orderCount"])
	})

	t.Run("malformed startDate is a validation error", func(t *testing.T) {
		w := performRequest(GetSalesAnalytics, "GET",
			"/api/admin/analytics/sales?startDate=01-15-2024", nil, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Contains(t, response["message"], "startDate")
	})

	t.Run("endDate before startDate is a validation error", func(t *testing.T) {
		w := performRequest(GetSalesAnalytics, "GET",
			"/api/admin/analytics/sales?startDate=2024-02-01&endDate=2024-01-01", nil, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetProductAnalytics(t *testing.T) {
	db := setupCustomerTestDB(t)
	config.SetDB(db)

	customer, staff, products := seedShop(t, db)

	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	previousNow := analyticsNow
	analyticsNow = func() time.Time { return now }
	defer func() { analyticsNow = previousNow }()

	// Lotion sold inside the window, serum before it, mask never
	seedCompletedOrder(t, db, customer, staff, now.AddDate(0, 0, -10), 50, products[0].ID, 5, 10)
	seedCompletedOrder(t, db, customer, staff, now.AddDate(0, 0, -45), 80, products[1].ID, 4, 20)

	w := performRequest(GetProductAnalytics, "GET", "/api/admin/analytics/products", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	// Low stock: only the serum (stock 5)
	lowStock := response["lowStockProducts"].([]interface{})
	assert.Len(t, lowStock, 1)
	assert.Equal(t, "Glow Serum", lowStock[0].(map[string]interface{})["name"])

	// No-sales: everything except the lotion sold in the trailing 30 days
	noSales := response["noSalesProducts"].([]interface{})
	noSalesNames := make([]string, len(noSales))
	for i, raw := range noSales {
		noSalesNames[i] = raw.(map[string]interface{})["name"].(string)
	}
	assert.ElementsMatch(t, []string{"Glow Serum", "Clay Mask"}, noSalesNames)

	// The raw window aggregation rides along
	productSales := response["productSales"].([]interface{})
	assert.Len(t, productSales, 1)
	sale := productSales[0].(map[string]interface{})
	assert.Equal(t, float64(products[0].ID), sale["_id"])
	assert.Equal(t, float64(5), sale["totalSales"])
}
