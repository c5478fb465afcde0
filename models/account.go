package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Account roles
const (
	RoleAdmin    = "admin"
	RoleStaff    = "staff"
	RoleCustomer = "customer"
)

// Account is an authentication identity (admin, staff or customer login).
// The plaintext Password field is never persisted; it is hashed into
// PasswordHash by the BeforeSave hook, and only when it is set, so loading
// and re-saving an account does not rehash the stored value.
type Account struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	Username           string         `gorm:"uniqueIndex;not null" json:"username"`
	Password           string         `gorm:"-" json:"-"`
	PasswordHash       string         `gorm:"not null" json:"-"`
	Name               string         `gorm:"not null" json:"name"`
	Role               string         `gorm:"not null;default:'customer'" json:"role"` // "admin", "staff" or "customer"
	IsVerified         bool           `gorm:"not null;default:false" json:"is_verified"`
	VerificationToken  *string        `json:"-"`
	VerificationExpiry *time.Time     `json:"-"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Account model
func (Account) TableName() string {
	return "accounts"
}

// BeforeSave hashes the plaintext password when one was provided
func (a *Account) BeforeSave(tx *gorm.DB) error {
	if a.Password == "" {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	a.PasswordHash = string(hash)
	a.Password = ""
	return nil
}

// CheckPassword compares a plaintext password against the stored hash
func (a *Account) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
}
