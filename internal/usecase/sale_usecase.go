package usecase

import (
	"context"
	"fmt"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// SaleUsecase は売上の確定と履歴を扱う台帳。
type SaleUsecase struct {
	tx    repo.TransactionManager
	idGen IDGenerator
	clock Clock
}

// DI
func NewSaleUsecase(tx repo.TransactionManager, idGen IDGenerator, clock Clock) *SaleUsecase {
	return &SaleUsecase{tx: tx, idGen: idGen, clock: clock}
}

// Checkout はカート明細を1件の売上として確定する。
// 在庫はカート追加時のスナップショットを信用せず、確定時点の
// 現在値に対して再チェックする。1行でも足りなければ全行を捨てる。
// カート自体はここでは触らない（クリアは呼び出し側の責務）。
func (u *SaleUsecase) Checkout(ctx context.Context, lines []model.CartLine) (model.Sale, error) {
	if len(lines) == 0 {
		return model.Sale{}, NewHTTPError(http.StatusBadRequest, "cart empty")
	}

	var created model.Sale

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		items := make([]model.SaleItem, 0, len(lines))
		total := decimal.Zero
		saleID := u.idGen.NewID()

		for _, line := range lines {
			p, err := r.Products().FindByID(ctx, line.ProductID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest,
					fmt.Sprintf("product no longer available: %s %s", line.Code, line.Name))
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "storage error")
			}

			//在庫減算（足りないなら false）
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, line.ProductID, line.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "storage error")
			}
			if !ok {
				return NewHTTPError(http.StatusBadRequest,
					fmt.Sprintf("stock exceeded: %s %s", p.Code, p.Name))
			}

			//明細はカート追加時のスナップショットで固定
			items = append(items, model.SaleItem{
				SaleID:            saleID,
				ProductID:         line.ProductID,
				CodeSnapshot:      line.Code,
				NameSnapshot:      line.Name,
				UnitPriceSnapshot: line.UnitPriceSnapshot,
				Quantity:          line.Quantity,
			})

			total = total.Add(line.UnitPriceSnapshot.Mul(decimal.NewFromInt(line.Quantity)))
		}

		s, err := r.Sales().Create(ctx, model.Sale{
			ID:        saleID,
			Total:     total,
			Items:     items,
			CreatedAt: u.clock.Now(),
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "storage error")
		}

		created = s
		return nil
	})

	if err != nil {
		return model.Sale{}, err
	}
	return created, nil
}

func (u *SaleUsecase) ListSales(ctx context.Context, limit int) ([]model.Sale, error) {
	if limit < 1 {
		return []model.Sale{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	var sales []model.Sale
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var err error
		sales, err = r.Sales().ListRecent(ctx, limit)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "storage error")
		}
		return nil
	})
	if err != nil {
		return []model.Sale{}, err
	}
	return sales, nil
}

type VoidSalesOutput struct {
	Deleted    int             `json:"deleted"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// VoidAllSales は売上履歴を全消去する。
// 消した売上ぶんの在庫は戻さない（取り消し不可の運用）。
func (u *SaleUsecase) VoidAllSales(ctx context.Context) (VoidSalesOutput, error) {
	out := VoidSalesOutput{TotalValue: decimal.Zero}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		sales, err := r.Sales().List(ctx)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "storage error")
		}

		for _, s := range sales {
			out.TotalValue = out.TotalValue.Add(s.Total)
		}
		out.Deleted = len(sales)

		if len(sales) == 0 {
			return nil
		}
		if err := r.Sales().DeleteAll(ctx); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "storage error")
		}
		return nil
	})

	if err != nil {
		return VoidSalesOutput{TotalValue: decimal.Zero}, err
	}
	return out, nil
}
