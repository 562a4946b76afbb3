package memstore

import (
	"context"

	"app/internal/domain/model"
	"app/internal/repository"
)

// tx=true のときは呼び出し元（WithinTx）がロックと保存を持つ。

type productRepo struct {
	s  *Store
	tx bool
}

func (r *productRepo) List(ctx context.Context) ([]model.Product, error) {
	if !r.tx {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	return cloneProducts(r.s.products), nil
}

func (r *productRepo) ListInStock(ctx context.Context) ([]model.Product, error) {
	if !r.tx {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	out := []model.Product{}
	for _, p := range r.s.products {
		if p.Stock > 0 {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *productRepo) ListLowStock(ctx context.Context, threshold int64) ([]model.Product, error) {
	if !r.tx {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	out := []model.Product{}
	for _, p := range r.s.products {
		if p.Stock <= threshold {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *productRepo) FindByID(ctx context.Context, id string) (model.Product, error) {
	if !r.tx {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	for _, p := range r.s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Product{}, repository.ErrNotFound
}

func (r *productRepo) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if !r.tx {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	r.s.products = append(r.s.products, p)
	if !r.tx {
		if err := r.s.persistLocked(); err != nil {
			return model.Product{}, err
		}
	}
	return p, nil
}

func (r *productRepo) Update(ctx context.Context, p model.Product) error {
	if !r.tx {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	for i := range r.s.products {
		if r.s.products[i].ID != p.ID {
			continue
		}
		// IDとCreatedAtは据え置き
		r.s.products[i].Code = p.Code
		r.s.products[i].Name = p.Name
		r.s.products[i].Category = p.Category
		r.s.products[i].Price = p.Price
		r.s.products[i].Stock = p.Stock
		r.s.products[i].UpdatedAt = p.UpdatedAt
		if !r.tx {
			return r.s.persistLocked()
		}
		return nil
	}
	return repository.ErrNotFound
}

func (r *productRepo) Delete(ctx context.Context, id string) error {
	if !r.tx {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	for i := range r.s.products {
		if r.s.products[i].ID != id {
			continue
		}
		r.s.products = append(r.s.products[:i], r.s.products[i+1:]...)
		if !r.tx {
			return r.s.persistLocked()
		}
		return nil
	}
	return repository.ErrNotFound
}

func (r *productRepo) ReplaceAll(ctx context.Context, products []model.Product) error {
	if !r.tx {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	r.s.products = cloneProducts(products)
	if !r.tx {
		return r.s.persistLocked()
	}
	return nil
}

type inventoryRepo struct {
	s  *Store
	tx bool
}

func (r *inventoryRepo) SetStock(ctx context.Context, productID string, newStock int64) error {
	if !r.tx {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	for i := range r.s.products {
		if r.s.products[i].ID != productID {
			continue
		}
		r.s.products[i].Stock = newStock
		if !r.tx {
			return r.s.persistLocked()
		}
		return nil
	}
	return repository.ErrNotFound
}

// 足りないとき・商品が無いときは (false, nil)。gorm実装と同じ契約。
func (r *inventoryRepo) DecreaseStockIfEnough(ctx context.Context, productID string, qty int64) (bool, error) {
	if !r.tx {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	for i := range r.s.products {
		if r.s.products[i].ID != productID {
			continue
		}
		if r.s.products[i].Stock < qty {
			return false, nil
		}
		r.s.products[i].Stock -= qty
		if !r.tx {
			if err := r.s.persistLocked(); err != nil {
				return false, err
			}
		}
		return true, nil
	}
	return false, nil
}

func (r *inventoryRepo) IncreaseStock(ctx context.Context, productID string, qty int64) error {
	if !r.tx {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	for i := range r.s.products {
		if r.s.products[i].ID != productID {
			continue
		}
		r.s.products[i].Stock += qty
		if !r.tx {
			return r.s.persistLocked()
		}
		return nil
	}
	return repository.ErrNotFound
}

type saleRepo struct {
	s  *Store
	tx bool
}

func (r *saleRepo) List(ctx context.Context) ([]model.Sale, error) {
	if !r.tx {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	return cloneSales(r.s.sales), nil
}

func (r *saleRepo) ListRecent(ctx context.Context, limit int) ([]model.Sale, error) {
	if !r.tx {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	out := []model.Sale{}
	for i := len(r.s.sales) - 1; i >= 0 && len(out) < limit; i-- {
		sale := r.s.sales[i]
		sale.Items = append([]model.SaleItem(nil), sale.Items...)
		out = append(out, sale)
	}
	return out, nil
}

func (r *saleRepo) Create(ctx context.Context, s model.Sale) (model.Sale, error) {
	if !r.tx {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	s.Items = append([]model.SaleItem(nil), s.Items...)
	r.s.sales = append(r.s.sales, s)
	if !r.tx {
		if err := r.s.persistLocked(); err != nil {
			return model.Sale{}, err
		}
	}
	return s, nil
}

func (r *saleRepo) DeleteAll(ctx context.Context) error {
	if !r.tx {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	r.s.sales = []model.Sale{}
	if !r.tx {
		return r.s.persistLocked()
	}
	return nil
}

func (r *saleRepo) ReplaceAll(ctx context.Context, sales []model.Sale) error {
	if !r.tx {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	r.s.sales = cloneSales(sales)
	if !r.tx {
		return r.s.persistLocked()
	}
	return nil
}

type txRepos struct {
	s *Store
}

func (r *txRepos) Products() repository.ProductRepository {
	return &productRepo{s: r.s, tx: true}
}

func (r *txRepos) Sales() repository.SaleRepository {
	return &saleRepo{s: r.s, tx: true}
}

func (r *txRepos) Inventory() repository.InventoryRepository {
	return &inventoryRepo{s: r.s, tx: true}
}
