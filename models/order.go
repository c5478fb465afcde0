package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderStatusCompleted is the only status the analytics pipelines filter on
const OrderStatusCompleted = "completed"

// Order represents a customer purchase handled by a staff member
type Order struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CustomerID  uint           `gorm:"not null;index" json:"customer_id"` // foreign key to customers table
	Customer    Customer       `gorm:"foreignKey:CustomerID" json:"-"`
	StaffID     uint           `gorm:"not null;index" json:"staff_id"` // foreign key to accounts table
	Staff       Account        `gorm:"foreignKey:StaffID" json:"-"`
	OrderDate   time.Time      `gorm:"not null;index" json:"order_date"`
	TotalAmount float64        `gorm:"not null" json:"total_amount"`
	Status      string         `gorm:"not null;default:'pending'" json:"status"` // pending, completed, cancelled
	Details     []OrderDetail  `gorm:"foreignKey:OrderID" json:"details,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderDetail represents a single line item of an order.
// Line revenue = Quantity * UnitPrice.
type OrderDetail struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"not null;index" json:"order_id"`
	ProductID uint    `gorm:"not null;index" json:"product_id"`
	Product   Product `gorm:"foreignKey:ProductID" json:"-"`
	Quantity  int     `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice float64 `gorm:"not null" json:"unit_price"`
}

// TableName specifies the table name for the OrderDetail model
func (OrderDetail) TableName() string {
	return "order_details"
}
