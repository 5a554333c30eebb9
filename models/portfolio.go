package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Holding is one position in a user's portfolio. A holding only exists
// while its share count is positive; selling down to zero deletes the row
// for real, so no gorm.Model here: a soft-deleted row would block the
// upsert on the next buy of the same symbol.
type Holding struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    uint   `gorm:"uniqueIndex:idx_holdings_user_symbol"`
	Symbol    string `gorm:"uniqueIndex:idx_holdings_user_symbol"`
	Shares    int64
}

// Transaction is one entry in the append-only trade log. Shares are signed:
// positive for buys, negative for sells. CreatedAt is the audit timestamp.
type Transaction struct {
	gorm.Model
	UserID uint `gorm:"index"`
	Symbol string
	Shares int64
	Price  decimal.Decimal `gorm:"type:numeric(20,4)"`
}
