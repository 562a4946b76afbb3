package model

import "github.com/shopspring/decimal"

// 売上明細。商品が後で削除・変更されても履歴が変わらないよう
// コード・名前・単価をスナップショットで持つ。
type SaleItem struct {
	ID                int64           `gorm:"primaryKey;autoIncrement" json:"-"`
	SaleID            string          `gorm:"type:varchar(36);not null;index" json:"-"`
	ProductID         string          `gorm:"type:varchar(36);not null;index" json:"product_id"`
	CodeSnapshot      string          `gorm:"type:varchar(64);not null" json:"code"`
	NameSnapshot      string          `gorm:"type:varchar(255);not null" json:"name"`
	UnitPriceSnapshot decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price_snapshot"`
	Quantity          int64           `gorm:"not null" json:"quantity"`
}
