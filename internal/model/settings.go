package model

import "github.com/shopspring/decimal"

// Settings is a singleton row, lazily created with defaults on first read.
type Settings struct {
	BaseModel
	StoreName         string          `gorm:"type:varchar(255);not null" json:"store_name"`
	Currency          string          `gorm:"type:varchar(10);not null" json:"currency"`
	Timezone          string          `gorm:"type:varchar(64);not null" json:"timezone"`
	LowStockThreshold int             `gorm:"not null" json:"low_stock_threshold" validate:"gte=0"`
	VatRate           decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"vat_rate" validate:"dgte0"`
}

func DefaultSettings() *Settings {
	return &Settings{
		StoreName:         "Default Store",
		Currency:          "USD",
		Timezone:          "UTC",
		LowStockThreshold: 10,
		VatRate:           decimal.NewFromInt(20),
	}
}
