package domain

import (
	"time"

	"gorm.io/gorm"
)

// Product is the canonical catalog record. ExternalID and Sku are unique
// across all rows including soft-deleted ones; the sync engine relies on
// those constraints to reject duplicate creation.
type Product struct {
	ID                int64          `json:"id,string" gorm:"primaryKey"`
	ExternalID        string         `gorm:"uniqueIndex;size:64" json:"external_id"`
	Sku               string         `gorm:"uniqueIndex;size:64" json:"sku"`
	Name              string         `gorm:"index" json:"name"`
	Brand             string         `gorm:"index" json:"brand"`
	Model             string         `json:"model"`
	Category          string         `gorm:"index" json:"category"`
	Color             string         `json:"color"`
	Price             *float64       `gorm:"index;type:decimal(10,2)" json:"price"`
	Currency          *string        `gorm:"size:8" json:"currency"`
	Stock             int            `json:"stock"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	ExternalCreatedAt time.Time      `json:"external_created_at"`
	ExternalUpdatedAt time.Time      `json:"external_updated_at"`
	LastSyncAt        time.Time      `json:"last_sync_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "products"
}
