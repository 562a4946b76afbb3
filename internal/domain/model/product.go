package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 部品マスタ。IDは作成時に採番して以後不変。
type Product struct {
	ID        string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	Code      string          `gorm:"type:varchar(64);not null" json:"code"`
	Name      string          `gorm:"type:varchar(255);not null" json:"name"`
	Category  string          `gorm:"type:varchar(64)" json:"category,omitempty"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Stock     int64           `gorm:"not null" json:"stock"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
