package usecase

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase は作成中の売上（カート）を持つ。
// カートは確定前だけの一時状態なのでメモリにしか置かない。
// 追加時に在庫を見るが、確定時にも必ず再チェックする（追加後に
// カタログ側で在庫が編集されることがあるため）。
type CartUsecase struct {
	mu          sync.Mutex
	lines       []model.CartLine
	productRepo repo.ProductRepository
}

// DI
func NewCartUsecase(productRepo repo.ProductRepository) *CartUsecase {
	return &CartUsecase{productRepo: productRepo}
}

type CartOutput struct {
	Items []model.CartLine `json:"items"`
	Total decimal.Decimal  `json:"total"`
}

type AddCartLineInput struct {
	ProductID string
	Quantity  int64
}

func (u *CartUsecase) GetCart(ctx context.Context) CartOutput {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.buildOutputLocked()
}

// AddLine はカートに追加（同一商品は数量加算）。
// 加算後の数量が現在在庫を超えるならカートは変えない。
func (u *CartUsecase) AddLine(ctx context.Context, in AddCartLineInput) (CartOutput, error) {
	if in.ProductID == "" {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if in.Quantity < 1 {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if err == repo.ErrNotFound {
		return CartOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	var existingQty int64 = 0
	existing := -1
	for i, line := range u.lines {
		if line.ProductID == in.ProductID {
			existingQty = line.Quantity
			existing = i
			break
		}
	}

	newQty := existingQty + in.Quantity
	if newQty > p.Stock {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("stock exceeded: %s %s", p.Code, p.Name))
	}

	if existing >= 0 {
		u.lines[existing].Quantity = newQty
	} else {
		// スナップショットは追加時点の値
		u.lines = append(u.lines, model.CartLine{
			ProductID:         p.ID,
			Code:              p.Code,
			Name:              p.Name,
			UnitPriceSnapshot: p.Price,
			Quantity:          in.Quantity,
		})
	}

	return u.buildOutputLocked(), nil
}

func (u *CartUsecase) RemoveLine(ctx context.Context, index int) (CartOutput, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if index < 0 || index >= len(u.lines) {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "invalid line index")
	}

	u.lines = append(u.lines[:index], u.lines[index+1:]...)
	return u.buildOutputLocked(), nil
}

// 確定後・キャンセル時に呼ぶ
func (u *CartUsecase) Clear(ctx context.Context) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.lines = nil
}

// Lines は確定処理に渡すためのコピーを返す。
func (u *CartUsecase) Lines(ctx context.Context) []model.CartLine {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]model.CartLine(nil), u.lines...)
}

func (u *CartUsecase) buildOutputLocked() CartOutput {
	items := make([]model.CartLine, len(u.lines))
	copy(items, u.lines)

	total := decimal.Zero
	for _, line := range u.lines {
		total = total.Add(line.UnitPriceSnapshot.Mul(decimal.NewFromInt(line.Quantity)))
	}

	return CartOutput{Items: items, Total: total}
}
