package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Ticker is the denormalized price cache, upserted on every buy and
// refreshed on every portfolio view. It is not authoritative.
type Ticker struct {
	gorm.Model
	Symbol string `gorm:"uniqueIndex;not null"`
	Name   string
	Price  decimal.Decimal `gorm:"type:numeric(20,4)"`
}
