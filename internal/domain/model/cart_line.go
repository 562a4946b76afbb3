package model

import "github.com/shopspring/decimal"

// 売上カートの明細。確定前だけ存在し、永続化しない。
// 追加時点の価格（UnitPriceSnapshot）を必ず保存。
type CartLine struct {
	ProductID         string          `json:"product_id"`
	Code              string          `json:"code"`
	Name              string          `json:"name"`
	UnitPriceSnapshot decimal.Decimal `json:"unit_price_snapshot"`
	Quantity          int64           `json:"quantity"`
}
