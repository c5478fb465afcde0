package services

import (
	"fmt"
	"time"

	"github.com/thao-tran/glowcare-admin-api/models"
	"github.com/thao-tran/glowcare-admin-api/utils"
	"gorm.io/gorm"
)

const (
	// LowStockThreshold marks products that need restocking
	LowStockThreshold = 10
	// TopSellersLimit caps the top-selling products list
	TopSellersLimit = 10
	// NoSalesWindowDays is the trailing window for no-sales detection
	NoSalesWindowDays = 30
)

// MonthKey identifies a (year, month) sales bucket
type MonthKey struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// MonthlySales is one sales-by-month bucket
type MonthlySales struct {
	ID         MonthKey `json:"_id"`
	TotalSales float64  `json:"totalSales"`
	OrderCount int64    `json:"orderCount"`
}

// TopSellingProduct is one top-sellers row with its product resolved
type TopSellingProduct struct {
	Product       models.Product `json:"product"`
	TotalQuantity int64          `json:"totalQuantity"`
	TotalRevenue  float64        `json:"totalRevenue"`
}

// ProductSales is the per-product quantity aggregation over a window
type ProductSales struct {
	ProductID  uint  `gorm:"column:product_id" json:"_id"`
	TotalSales int64 `gorm:"column:total_sales" json:"totalSales"`
}

// AnalyticsService computes read-only analytical views over the store.
// All methods are pure reads: given identical store contents and an
// identical clock, results are reproducible. Store failures surface
// unwrapped as internal errors; there is no retry or partial result.
type AnalyticsService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewAnalyticsService creates an analytics service using the wall clock
func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db, now: time.Now}
}

// WithClock overrides the clock (primarily for testing the trailing
// 30-day window)
func (s *AnalyticsService) WithClock(now func() time.Time) *AnalyticsService {
	s.now = now
	return s
}

// completedOrders scopes the orders table to completed orders within the
// optional inclusive [start, end] range. Zero times mean unbounded.
func (s *AnalyticsService) completedOrders(start, end time.Time) *gorm.DB {
	query := s.db.Model(&models.Order{}).Where("orders.status = ?", models.OrderStatusCompleted)
	if !start.IsZero() {
		query = query.Where("orders.order_date >= ?", start)
	}
	if !end.IsZero() {
		query = query.Where("orders.order_date <= ?", end)
	}
	return query
}

// datePartExprs returns SQL expressions extracting year and month from a
// timestamp column. The syntax differs between the production database
// (PostgreSQL) and the in-memory test database (SQLite).
func (s *AnalyticsService) datePartExprs(column string) (string, string) {
	if s.db.Dialector.Name() == "sqlite" {
		return fmt.Sprintf("CAST(strftime('%%Y', %s) AS INTEGER)", column),
			fmt.Sprintf("CAST(strftime('%%m', %s) AS INTEGER)", column)
	}
	return fmt.Sprintf("EXTRACT(YEAR FROM %s)::int", column),
		fmt.Sprintf("EXTRACT(MONTH FROM %s)::int", column)
}

type monthlySalesRow struct {
	Year       int
	Month      int
	TotalSales float64
	OrderCount int64
}

// SalesByMonth groups completed orders in [start, end] by calendar month,
// summing totals and counting orders, sorted ascending by (year, month)
func (s *AnalyticsService) SalesByMonth(start, end time.Time) ([]MonthlySales, error) {
	yearExpr, monthExpr := s.datePartExprs("orders.order_date")

	var rows []monthlySalesRow
	err := s.completedOrders(start, end).
		Select(fmt.Sprintf(
			"%s AS year, %s AS month, SUM(orders.total_amount) AS total_sales, COUNT(*) AS order_count",
			yearExpr, monthExpr)).
		Group("year").Group("month").
		Order("year ASC, month ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, utils.NewInternalError(err)
	}

	result := make([]MonthlySales, len(rows))
	for i, row := range rows {
		result[i] = MonthlySales{
			ID:         MonthKey{Year: row.Year, Month: row.Month},
			TotalSales: row.TotalSales,
			OrderCount: row.OrderCount,
		}
	}
	return result, nil
}

type productTotalsRow struct {
	ProductID     uint
	TotalQuantity int64
	TotalRevenue  float64
}

// TopSellingProducts flattens completed orders in [start, end] into line
// items, groups them by product, and returns the ten products with the
// highest total quantity, each resolved to its catalog document. Rows whose
// product no longer resolves are dropped.
func (s *AnalyticsService) TopSellingProducts(start, end time.Time) ([]TopSellingProduct, error) {
	var rows []productTotalsRow
	err := s.lineItems(start, end).
		Select("order_details.product_id AS product_id, " +
			"SUM(order_details.quantity) AS total_quantity, " +
			"SUM(order_details.quantity * order_details.unit_price) AS total_revenue").
		Group("order_details.product_id").
		Order("total_quantity DESC").
		Limit(TopSellersLimit).
		Scan(&rows).Error
	if err != nil {
		return nil, utils.NewInternalError(err)
	}

	if len(rows) == 0 {
		return []TopSellingProduct{}, nil
	}

	ids := make([]uint, len(rows))
	for i, row := range rows {
		ids[i] = row.ProductID
	}

	var products []models.Product
	if err := s.db.Preload("Brand").Preload("Category").Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, utils.NewInternalError(err)
	}

	byID := make(map[uint]models.Product, len(products))
	for _, product := range products {
		byID[product.ID] = product
	}

	result := make([]TopSellingProduct, 0, len(rows))
	for _, row := range rows {
		product, ok := byID[row.ProductID]
		if !ok {
			continue
		}
		result = append(result, TopSellingProduct{
			Product:       product,
			TotalQuantity: row.TotalQuantity,
			TotalRevenue:  row.TotalRevenue,
		})
	}
	return result, nil
}

// lineItems joins order_details to their completed parent orders within
// the optional inclusive [start, end] range
func (s *AnalyticsService) lineItems(start, end time.Time) *gorm.DB {
	query := s.db.Model(&models.OrderDetail{}).
		Joins("JOIN orders ON orders.id = order_details.order_id AND orders.deleted_at IS NULL").
		Where("orders.status = ?", models.OrderStatusCompleted)
	if !start.IsZero() {
		query = query.Where("orders.order_date >= ?", start)
	}
	if !end.IsZero() {
		query = query.Where("orders.order_date <= ?", end)
	}
	return query
}

// LowStockProducts returns products with stock below the restock
// threshold, brand resolved
func (s *AnalyticsService) LowStockProducts() ([]models.Product, error) {
	var products []models.Product
	err := s.db.Preload("Brand").
		Where("stock_quantity < ?", LowStockThreshold).
		Find(&products).Error
	if err != nil {
		return nil, utils.NewInternalError(err)
	}
	return products, nil
}

// ProductSalesLast30Days returns the per-product quantity sums over
// completed orders in the trailing 30-day window
func (s *AnalyticsService) ProductSalesLast30Days() ([]ProductSales, error) {
	cutoff := s.now().AddDate(0, 0, -NoSalesWindowDays)

	var sales []ProductSales
	err := s.lineItems(cutoff, time.Time{}).
		Select("order_details.product_id AS product_id, SUM(order_details.quantity) AS total_sales").
		Group("order_details.product_id").
		Scan(&sales).Error
	if err != nil {
		return nil, utils.NewInternalError(err)
	}
	return sales, nil
}

// NoSalesProducts returns every product absent from the trailing 30-day
// sales set (brand resolved) together with that window's per-product
// aggregation. The two sets partition the catalog: a product either sold
// in the window or is reported here.
func (s *AnalyticsService) NoSalesProducts() ([]models.Product, []ProductSales, error) {
	sales, err := s.ProductSalesLast30Days()
	if err != nil {
		return nil, nil, err
	}

	soldIDs := make([]uint, len(sales))
	for i, sale := range sales {
		soldIDs[i] = sale.ProductID
	}

	query := s.db.Preload("Brand")
	if len(soldIDs) > 0 {
		query = query.Where("id NOT IN ?", soldIDs)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, nil, utils.NewInternalError(err)
	}
	return products, sales, nil
}
