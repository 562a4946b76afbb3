package repository

import (
	"app/internal/domain/model"
	"context"
)

// 売上履歴は追記のみ（時系列順）。
type SaleRepository interface {
	List(ctx context.Context) ([]model.Sale, error)
	// 新しい順に最大limit件
	ListRecent(ctx context.Context, limit int) ([]model.Sale, error)

	Create(ctx context.Context, s model.Sale) (model.Sale, error)
	// 全売上を消す。在庫は戻さない
	DeleteAll(ctx context.Context) error

	// インポート用。全件を置き換える
	ReplaceAll(ctx context.Context, sales []model.Sale) error
}
