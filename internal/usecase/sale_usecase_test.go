package usecase_test

import (
	"context"
	"path/filepath"
	"testing"

	"app/internal/infra/memstore"
	"app/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// 実ストア（memstore）で確定フローを通すフィクスチャ。
type ledgerFixture struct {
	store     *memstore.Store
	productUC *usecase.ProductUsecase
	cartUC    *usecase.CartUsecase
	saleUC    *usecase.SaleUsecase
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()

	store := memstore.Open(filepath.Join(t.TempDir(), "parts.json"))
	idGen := &seqIDGen{}
	clock := &fixedClock{t: testTime()}

	return &ledgerFixture{
		store:     store,
		productUC: usecase.NewProductUsecase(store.ProductRepo(), store.InventoryRepo(), idGen, clock),
		cartUC:    usecase.NewCartUsecase(store.ProductRepo()),
		saleUC:    usecase.NewSaleUsecase(store, idGen, clock),
	}
}

func (f *ledgerFixture) createProduct(t *testing.T, code, name, price string, stock int64) string {
	t.Helper()
	p, err := f.productUC.CreateProduct(context.Background(), usecase.ProductInput{
		Code:  code,
		Name:  name,
		Price: decimal.RequireFromString(price),
		Stock: stock,
	})
	assert.NoError(t, err)
	return p.ID
}

func TestSaleUsecase_Checkout_EmptyCart(t *testing.T) {
	f := newLedgerFixture(t)

	_, err := f.saleUC.Checkout(context.Background(), nil)
	assertErrContains(t, err, "cart empty")
}

// カタログ登録→2個カートに入れて確定。
// 売上合計20.00、在庫は3→1、履歴は1件。
func TestSaleUsecase_Checkout_Basic(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)

	id := f.createProduct(t, "A1", "Filter", "10.00", 3)

	_, err := f.cartUC.AddLine(ctx, usecase.AddCartLineInput{ProductID: id, Quantity: 2})
	assert.NoError(t, err)

	sale, err := f.saleUC.Checkout(ctx, f.cartUC.Lines(ctx))
	assert.NoError(t, err)

	assert.True(t, sale.Total.Equal(decimal.RequireFromString("20.00")))
	assert.Equal(t, 1, len(sale.Items))
	assert.Equal(t, testTime(), sale.CreatedAt)

	p, err := f.productUC.GetProduct(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), p.Stock)

	sales, err := f.saleUC.ListSales(ctx, 10)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(sales))
}

// 合計は明細ごとの「スナップショット単価×数量」の総和と厳密一致
func TestSaleUsecase_Checkout_TotalMatchesLines(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)

	id1 := f.createProduct(t, "A1", "Filter", "10.25", 5)
	id2 := f.createProduct(t, "B2", "Brake Pad", "33.10", 5)

	_, err := f.cartUC.AddLine(ctx, usecase.AddCartLineInput{ProductID: id1, Quantity: 3})
	assert.NoError(t, err)
	_, err = f.cartUC.AddLine(ctx, usecase.AddCartLineInput{ProductID: id2, Quantity: 2})
	assert.NoError(t, err)

	sale, err := f.saleUC.Checkout(ctx, f.cartUC.Lines(ctx))
	assert.NoError(t, err)

	sum := decimal.Zero
	for _, it := range sale.Items {
		sum = sum.Add(it.UnitPriceSnapshot.Mul(decimal.NewFromInt(it.Quantity)))
	}
	assert.True(t, sale.Total.Equal(sum))
	assert.True(t, sale.Total.Equal(decimal.RequireFromString("96.95")))
}

// カート投入後にカタログ側で在庫が減らされたら確定は全行失敗。
// どの商品の在庫も変わらず、売上も増えない（all-or-nothing）。
func TestSaleUsecase_Checkout_AllOrNothing(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)

	id1 := f.createProduct(t, "A1", "Filter", "10.00", 5)
	id2 := f.createProduct(t, "B2", "Brake Pad", "25.00", 5)

	_, err := f.cartUC.AddLine(ctx, usecase.AddCartLineInput{ProductID: id1, Quantity: 2})
	assert.NoError(t, err)
	_, err = f.cartUC.AddLine(ctx, usecase.AddCartLineInput{ProductID: id2, Quantity: 3})
	assert.NoError(t, err)

	// 別画面で在庫が1に編集された想定
	_, err = f.productUC.UpdateProduct(ctx, id2, usecase.ProductInput{
		Code: "B2", Name: "Brake Pad", Price: decimal.RequireFromString("25.00"), Stock: 1,
	})
	assert.NoError(t, err)

	_, err = f.saleUC.Checkout(ctx, f.cartUC.Lines(ctx))
	assertErrContains(t, err, "stock exceeded: B2 Brake Pad")

	p1, _ := f.productUC.GetProduct(ctx, id1)
	p2, _ := f.productUC.GetProduct(ctx, id2)
	assert.Equal(t, int64(5), p1.Stock)
	assert.Equal(t, int64(1), p2.Stock)

	sales, err := f.saleUC.ListSales(ctx, 10)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(sales))
}

// 確定はカートを触らない。クリアするのは呼び出し側
func TestSaleUsecase_Checkout_LeavesCartAlone(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)

	id := f.createProduct(t, "A1", "Filter", "10.00", 3)

	_, err := f.cartUC.AddLine(ctx, usecase.AddCartLineInput{ProductID: id, Quantity: 1})
	assert.NoError(t, err)

	_, err = f.saleUC.Checkout(ctx, f.cartUC.Lines(ctx))
	assert.NoError(t, err)

	out := f.cartUC.GetCart(ctx)
	assert.Equal(t, 1, len(out.Items))
}

// 商品を削除しても過去の売上明細はそのまま
func TestSaleUsecase_DeleteProduct_KeepsHistory(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)

	id := f.createProduct(t, "A1", "Filter", "10.00", 3)

	_, err := f.cartUC.AddLine(ctx, usecase.AddCartLineInput{ProductID: id, Quantity: 1})
	assert.NoError(t, err)
	_, err = f.saleUC.Checkout(ctx, f.cartUC.Lines(ctx))
	assert.NoError(t, err)

	assert.NoError(t, f.productUC.DeleteProduct(ctx, id))

	sales, err := f.saleUC.ListSales(ctx, 10)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(sales))
	assert.Equal(t, "Filter", sales[0].Items[0].NameSnapshot)
}

// 全売上消去。在庫は戻らない
func TestSaleUsecase_VoidAllSales(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)

	id := f.createProduct(t, "A1", "Filter", "10.00", 3)

	_, err := f.cartUC.AddLine(ctx, usecase.AddCartLineInput{ProductID: id, Quantity: 2})
	assert.NoError(t, err)
	_, err = f.saleUC.Checkout(ctx, f.cartUC.Lines(ctx))
	assert.NoError(t, err)

	out, err := f.saleUC.VoidAllSales(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, out.Deleted)
	assert.True(t, out.TotalValue.Equal(decimal.RequireFromString("20.00")))

	sales, err := f.saleUC.ListSales(ctx, 10)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(sales))

	// 在庫は消費されたまま
	p, err := f.productUC.GetProduct(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), p.Stock)
}

func TestSaleUsecase_VoidAllSales_Empty(t *testing.T) {
	f := newLedgerFixture(t)

	out, err := f.saleUC.VoidAllSales(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 0, out.Deleted)
	assert.True(t, out.TotalValue.IsZero())
}

// 一覧は新しい順
func TestSaleUsecase_ListSales_RecentFirst(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)

	id := f.createProduct(t, "A1", "Filter", "10.00", 10)

	for i := 0; i < 3; i++ {
		_, err := f.cartUC.AddLine(ctx, usecase.AddCartLineInput{ProductID: id, Quantity: 1})
		assert.NoError(t, err)
		_, err = f.saleUC.Checkout(ctx, f.cartUC.Lines(ctx))
		assert.NoError(t, err)
		f.cartUC.Clear(ctx)
	}

	sales, err := f.saleUC.ListSales(ctx, 2)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(sales))
	// memstoreは挿入順を保持するので末尾＝最新
	all, err := f.store.SaleRepo().List(ctx)
	assert.NoError(t, err)
	assert.Equal(t, all[2].ID, sales[0].ID)
	assert.Equal(t, all[1].ID, sales[1].ID)
}
