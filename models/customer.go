package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer status values. Customers are never hard-deleted by the admin
// API; blocking is the terminal admin action.
const (
	CustomerStatusActive  = "active"
	CustomerStatusBlocked = "blocked"
)

// Customer represents a registered shop customer
type Customer struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	Phone     string         `json:"phone"`
	Address   string         `json:"address"`
	Status    string         `gorm:"not null;default:'active'" json:"status"` // "active" or "blocked"
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// ValidCustomerStatus reports whether s is an accepted status value
func ValidCustomerStatus(s string) bool {
	return s == CustomerStatusActive || s == CustomerStatusBlocked
}
