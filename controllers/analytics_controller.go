package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/thao-tran/glowcare-admin-api/config"
	"github.com/thao-tran/glowcare-admin-api/services"
	"github.com/thao-tran/glowcare-admin-api/utils"
)

// analyticsNow supplies the clock for the trailing-window aggregations.
// Overridden in tests to pin the 30-day no-sales window.
var analyticsNow = time.Now

const dateLayout = "2006-01-02"

// GetSalesAnalytics handles GET /api/admin/analytics/sales - monthly sales
// buckets plus the top-selling products, optionally restricted to an
// inclusive [startDate, endDate] range
func GetSalesAnalytics(c *gin.Context) {
	start, end, err := parseDateRange(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	svc := services.NewAnalyticsService(config.GetDB()).WithClock(analyticsNow)

	salesByMonth, err := svc.SalesByMonth(start, end)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	topSelling, err := svc.TopSellingProducts(start, end)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"salesByMonth":       salesByMonth,
		"topSellingProducts": topSelling,
	})
}

// GetProductAnalytics handles GET /api/admin/analytics/products - products
// needing restock and products without a completed sale in the trailing 30
// days, together with that window's per-product sales aggregation
func GetProductAnalytics(c *gin.Context) {
	svc := services.NewAnalyticsService(config.GetDB()).WithClock(analyticsNow)

	lowStock, err := svc.LowStockProducts()
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	noSales, productSales, err := svc.NoSalesProducts()
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"lowStockProducts": lowStock,
		"noSalesProducts":  noSales,
		"productSales":     productSales,
	})
}

// parseDateRange reads optional startDate/endDate query parameters.
// endDate is extended to the end of its day so the range is inclusive.
func parseDateRange(c *gin.Context) (time.Time, time.Time, error) {
	var start, end time.Time

	if raw := c.Query("startDate"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return time.Time{}, time.Time{}, utils.NewValidationError(
				fmt.Sprintf("startDate must be formatted as %s, got %q", dateLayout, raw))
		}
		start = parsed
	}

	if raw := c.Query("endDate"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return time.Time{}, time.Time{}, utils.NewValidationError(
				fmt.Sprintf("endDate must be formatted as %s, got %q", dateLayout, raw))
		}
		end = parsed.Add(24*time.Hour - time.Nanosecond)
	}

	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return time.Time{}, time.Time{}, utils.NewValidationError("endDate must not be before startDate")
	}

	return start, end, nil
}
