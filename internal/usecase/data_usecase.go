package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// DataUsecase はスナップショットのエクスポート／インポート。
// インポートは現在の全状態を置き換えるので明示的な確認を要求する。
type DataUsecase struct {
	tx    repo.TransactionManager
	clock Clock
}

// DI
func NewDataUsecase(tx repo.TransactionManager, clock Clock) *DataUsecase {
	return &DataUsecase{tx: tx, clock: clock}
}

// Export は現時点のカタログと売上履歴を1つのドキュメントにまとめる。
// 一貫したビューになるようTx内で読む。
func (u *DataUsecase) Export(ctx context.Context) (model.Snapshot, error) {
	snap := model.Snapshot{
		Produtos: []model.Product{},
		Vendas:   []model.Sale{},
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		products, err := r.Products().List(ctx)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "storage error")
		}
		sales, err := r.Sales().List(ctx)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "storage error")
		}
		snap.Produtos = products
		snap.Vendas = sales
		return nil
	})
	if err != nil {
		return model.Snapshot{}, err
	}

	snap.LastUpdated = u.clock.Now()
	return snap, nil
}

type ImportOutput struct {
	Products int `json:"products"`
	Sales    int `json:"sales"`
}

// Import はスナップショットを検証してから全状態を置き換える。
// パースや検証に失敗したら現状維持。
func (u *DataUsecase) Import(ctx context.Context, raw []byte, confirm bool) (ImportOutput, error) {
	if !confirm {
		return ImportOutput{}, NewHTTPError(http.StatusBadRequest, "confirmation required")
	}

	var snap model.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return ImportOutput{}, NewHTTPError(http.StatusBadRequest, "invalid import file")
	}

	if err := validateSnapshot(snap); err != nil {
		return ImportOutput{}, err
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Products().ReplaceAll(ctx, snap.Produtos); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "storage error")
		}
		if err := r.Sales().ReplaceAll(ctx, snap.Vendas); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "storage error")
		}
		return nil
	})
	if err != nil {
		return ImportOutput{}, err
	}

	return ImportOutput{Products: len(snap.Produtos), Sales: len(snap.Vendas)}, nil
}

func validateSnapshot(snap model.Snapshot) error {
	seen := map[string]bool{}
	for _, p := range snap.Produtos {
		if strings.TrimSpace(p.ID) == "" ||
			strings.TrimSpace(p.Code) == "" ||
			strings.TrimSpace(p.Name) == "" {
			return NewHTTPError(http.StatusBadRequest, "invalid import file")
		}
		if p.Price.IsNegative() || p.Stock < 0 {
			return NewHTTPError(http.StatusBadRequest, "invalid import file")
		}
		if seen[p.ID] {
			return NewHTTPError(http.StatusBadRequest, "invalid import file")
		}
		seen[p.ID] = true
	}

	for _, s := range snap.Vendas {
		if strings.TrimSpace(s.ID) == "" || s.Total.IsNegative() {
			return NewHTTPError(http.StatusBadRequest, "invalid import file")
		}
		for _, it := range s.Items {
			if it.Quantity < 1 || it.UnitPriceSnapshot.IsNegative() {
				return NewHTTPError(http.StatusBadRequest, "invalid import file")
			}
		}
	}

	return nil
}
