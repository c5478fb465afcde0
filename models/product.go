package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// FeatureMap holds AI-derived product features as opaque key/value pairs.
// Stored as a JSON text column; keys are not schema-checked.
type FeatureMap map[string]string

// Value implements driver.Valuer so gorm can persist the map
func (m FeatureMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner so gorm can load the map
func (m *FeatureMap) Scan(value interface{}) error {
	if value == nil {
		*m = FeatureMap{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into FeatureMap", value)
	}

	if len(data) == 0 {
		*m = FeatureMap{}
		return nil
	}
	return json.Unmarshal(data, m)
}

// Product represents a pharmacy/cosmetics product in the catalog
type Product struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"not null;index" json:"name"`
	Function      string         `gorm:"not null;default:'other'" json:"function"`     // lotion, wash, cream, serum, mask, other
	SkinGroup     string         `gorm:"not null;default:'normal'" json:"skin_group"`  // oily, dry, combination, sensitive, normal
	AgeGroup      string         `json:"age_group"`                                    // free text, e.g. "18-25"
	GenderTarget  string         `gorm:"not null;default:'unisex'" json:"gender_target"` // male, female, unisex
	StockQuantity int            `gorm:"not null;default:0;check:stock_quantity >= 0" json:"stock_quantity"`
	Features      FeatureMap     `gorm:"type:text" json:"features"`
	BrandID       uint           `gorm:"not null;index" json:"brand_id"`
	Brand         Brand          `gorm:"foreignKey:BrandID" json:"brand"`
	CategoryID    uint           `gorm:"not null;index" json:"category_id"`
	Category      Category       `gorm:"foreignKey:CategoryID" json:"category"`
	ImageS3Key    *string        `json:"image_s3_key"`                 // nullable, S3 key for uploaded image
	ImageURL      *string        `gorm:"-" json:"image_url,omitempty"` // computed field, presigned URL for image
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}
