package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// 商品の永続化（保存・取得）だけを約束。
// 一覧はカタログ順（登録順）で返す。
type ProductRepository interface {
	List(ctx context.Context) ([]model.Product, error)
	// 在庫ありのみ
	ListInStock(ctx context.Context) ([]model.Product, error)
	// stock <= threshold のみ
	ListLowStock(ctx context.Context, threshold int64) ([]model.Product, error)
	FindByID(ctx context.Context, id string) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id string) error

	// インポート用。全件を置き換える
	ReplaceAll(ctx context.Context, products []model.Product) error
}
