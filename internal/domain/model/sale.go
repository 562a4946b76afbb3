package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 確定済みの売上。確定後は不変（全件削除のみ可）。
// Total は確定時点の明細合計と一致する。
type Sale struct {
	ID        string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	Total     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	Items     []SaleItem      `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
