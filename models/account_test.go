package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAccountTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&Account{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func TestAccountPasswordHashing(t *testing.T) {
	db := setupAccountTestDB(t)

	account := Account{
		Username: "admin",
		Password: "correct-horse-battery",
		Name:     "Admin User",
		Role:     RoleAdmin,
	}
	assert.NoError(t, db.Create(&account).Error)

	// The plaintext is consumed by the hook, never stored
	assert.Empty(t, account.Password)
	assert.NotEmpty(t, account.PasswordHash)
	assert.NotEqual(t, "correct-horse-battery", account.PasswordHash)

	// One-way compare
	assert.True(t, account.CheckPassword("correct-horse-battery"))
	assert.False(t, account.CheckPassword("wrong-password"))
}

func TestAccountRehashOnlyWhenPasswordSet(t *testing.T) {
	db := setupAccountTestDB(t)

	account := Account{Username: "staff", Password: "initial-pw", Name: "Staff User", Role: RoleStaff}
	assert.NoError(t, db.Create(&account).Error)
	originalHash := account.PasswordHash

	// Saving without touching the password keeps the stored hash
	account.Name = "Renamed Staff User"
	assert.NoError(t, db.Save(&account).Error)
	assert.Equal(t, originalHash, account.PasswordHash)

	// Setting a new plaintext rehashes
	account.Password = "rotated-pw"
	assert.NoError(t, db.Save(&account).Error)
	assert.NotEqual(t, originalHash, account.PasswordHash)
	assert.True(t, account.CheckPassword("rotated-pw"))
	assert.False(t, account.CheckPassword("initial-pw"))
}
