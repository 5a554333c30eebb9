package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username     string          `gorm:"uniqueIndex;not null"`
	PasswordHash string          `gorm:"not null"`
	Cash         decimal.Decimal `gorm:"type:numeric(20,4);not null"`
}
