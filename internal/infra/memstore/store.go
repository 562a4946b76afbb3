package memstore

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"
)

// Store はDBなし運用のデフォルトバックエンド。
// 状態は全てメモリに持ち、変更のたびにスナップショットJSONを書き出す。
// 単一ファイル {produtos, vendas, lastUpdated} が唯一の永続化先。
type Store struct {
	mu       sync.Mutex
	path     string
	products []model.Product
	sales    []model.Sale
}

// Open はデータファイルを読んでStoreを作る。
// ファイルが無い・壊れている場合は空の状態で始める（起動は止めない）。
func Open(path string) *Store {
	s := &Store{
		path:     path,
		products: []model.Product{},
		sales:    []model.Sale{},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("memstore: cannot read %s, starting empty: %v", path, err)
		}
		return s
	}

	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		log.Printf("memstore: corrupt data file %s, starting empty: %v", path, err)
		return s
	}

	if snap.Produtos != nil {
		s.products = snap.Produtos
	}
	if snap.Vendas != nil {
		s.sales = snap.Vendas
	}
	return s
}

// Repositories（非Txモード。メソッドごとにロックして即保存）
func (s *Store) ProductRepo() repository.ProductRepository {
	return &productRepo{s: s}
}

func (s *Store) SaleRepo() repository.SaleRepository {
	return &saleRepo{s: s}
}

func (s *Store) InventoryRepo() repository.InventoryRepository {
	return &inventoryRepo{s: s}
}

// WithinTx は状態のコピーを取ってfnを実行する。
// fnがerrorを返したらコピーへ巻き戻す（all-or-nothing）。
// 成功時のみスナップショットを書く。
func (s *Store) WithinTx(ctx context.Context, fn func(r repository.TxRepos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products := cloneProducts(s.products)
	sales := cloneSales(s.sales)

	if err := fn(&txRepos{s: s}); err != nil {
		s.products = products
		s.sales = sales
		return err
	}

	return s.persistLocked()
}

// persistLocked はmu保持前提。write-temp-then-renameで
// クラッシュしても中途半端なファイルを残さない。
func (s *Store) persistLocked() error {
	snap := model.Snapshot{
		Produtos:    s.products,
		Vendas:      s.sales,
		LastUpdated: time.Now().UTC(),
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func cloneProducts(in []model.Product) []model.Product {
	out := make([]model.Product, len(in))
	copy(out, in)
	return out
}

func cloneSales(in []model.Sale) []model.Sale {
	out := make([]model.Sale, len(in))
	for i, sale := range in {
		sale.Items = append([]model.SaleItem(nil), sale.Items...)
		out[i] = sale
	}
	return out
}
