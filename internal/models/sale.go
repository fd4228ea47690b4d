package models

import "time"

// Sale records one sold item. ItemTitle is denormalized so sales stay readable
// after the item is deleted.
type Sale struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	ItemID    string    `gorm:"size:36;index" json:"item_id"`
	ItemTitle string    `gorm:"size:300" json:"item_title"`
	Platform  string    `gorm:"size:100;index" json:"platform"`
	SoldPrice float64   `json:"sold_price"`
	Fees      float64   `json:"fees"`
	Profit    float64   `json:"profit"`
	DateSold  time.Time `json:"date_sold"`
}

func (Sale) TableName() string { return "sales" }
