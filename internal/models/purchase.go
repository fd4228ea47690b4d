package models

import "time"

// Purchase is one sourcing batch.
type Purchase struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	BatchName     string    `gorm:"size:200;not null" json:"batch_name"`
	Supplier      string    `gorm:"size:200;index" json:"supplier"`
	Cost          float64   `json:"cost"`
	Notes         string    `gorm:"type:text" json:"notes"`
	DatePurchased time.Time `json:"date_purchased"`
}

func (Purchase) TableName() string { return "purchases" }
