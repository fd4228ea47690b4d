package models

import "time"

// Item status values
const (
	ItemStatusInStock = "in_stock"
	ItemStatusListed  = "listed"
	ItemStatusSold    = "sold"
)

// Item is one inventory entry. Custom field values attach to it through
// CustomFieldValue.EntityID.
type Item struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	Title         string    `gorm:"size:300;not null" json:"title"`
	SKU           string    `gorm:"size:100;index" json:"sku"`
	Category      string    `gorm:"size:100;index" json:"category"`
	Brand         string    `gorm:"size:100" json:"brand"`
	PurchasePrice float64   `json:"purchase_price"`
	Quantity      int       `gorm:"default:1" json:"quantity"`
	Status        string    `gorm:"size:20;index;default:in_stock" json:"status"`
	Condition     string    `gorm:"size:50" json:"condition"`
	Notes         string    `gorm:"type:text" json:"notes"`
	DateAdded     time.Time `json:"date_added"`
}

func (Item) TableName() string { return "items" }
