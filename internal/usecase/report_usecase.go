package usecase

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// ReportUsecase はカタログと売上履歴の読み取り専用集計。
// どのメソッドも状態を変えない。
type ReportUsecase struct {
	productRepo repo.ProductRepository
	saleRepo    repo.SaleRepository
	clock       Clock
	shopName    string
	threshold   int64 // 低在庫アラートのデフォルト閾値
}

// DI
func NewReportUsecase(
	productRepo repo.ProductRepository,
	saleRepo repo.SaleRepository,
	clock Clock,
	shopName string,
	threshold int64,
) *ReportUsecase {
	return &ReportUsecase{
		productRepo: productRepo,
		saleRepo:    saleRepo,
		clock:       clock,
		shopName:    shopName,
		threshold:   threshold,
	}
}

type BestSellerOutput struct {
	ProductID string          `json:"product_id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

type DashboardOutput struct {
	TotalRevenue    decimal.Decimal    `json:"total_revenue"`
	TotalStockUnits int64              `json:"total_stock_units"`
	ProductCount    int                `json:"product_count"`
	LowStockCount   int                `json:"low_stock_count"`
	BestSellers     []BestSellerOutput `json:"best_sellers"`
}

// ダッシュボードのカード類とTop5チャートをまとめて返す。
func (u *ReportUsecase) Dashboard(ctx context.Context) (DashboardOutput, error) {
	products, err := u.productRepo.List(ctx)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	sales, err := u.saleRepo.List(ctx)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}

	out := DashboardOutput{TotalRevenue: decimal.Zero}
	for _, s := range sales {
		out.TotalRevenue = out.TotalRevenue.Add(s.Total)
	}
	for _, p := range products {
		out.TotalStockUnits += p.Stock
		if p.Stock <= u.threshold {
			out.LowStockCount++
		}
	}
	out.ProductCount = len(products)
	out.BestSellers = bestSellersFrom(sales, 5)

	return out, nil
}

// BestSellers は全売上明細を商品単位に集計して販売数の多い順に返す。
// 同数のときは先に売れた商品が先（安定ソート）。
func (u *ReportUsecase) BestSellers(ctx context.Context, limit int) ([]BestSellerOutput, error) {
	if limit < 1 {
		return []BestSellerOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	sales, err := u.saleRepo.List(ctx)
	if err != nil {
		return []BestSellerOutput{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	return bestSellersFrom(sales, limit), nil
}

func bestSellersFrom(sales []model.Sale, limit int) []BestSellerOutput {
	byProduct := map[string]*BestSellerOutput{}
	order := []string{}

	for _, s := range sales {
		for _, it := range s.Items {
			agg, ok := byProduct[it.ProductID]
			if !ok {
				agg = &BestSellerOutput{
					ProductID: it.ProductID,
					Code:      it.CodeSnapshot,
					Name:      it.NameSnapshot,
					Revenue:   decimal.Zero,
				}
				byProduct[it.ProductID] = agg
				order = append(order, it.ProductID)
			}
			agg.Quantity += it.Quantity
			agg.Revenue = agg.Revenue.Add(it.UnitPriceSnapshot.Mul(decimal.NewFromInt(it.Quantity)))
		}
	}

	out := make([]BestSellerOutput, 0, len(order))
	for _, id := range order {
		out = append(out, *byProduct[id])
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Quantity > out[j].Quantity
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

type StockAlert struct {
	ProductID string `json:"product_id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Stock     int64  `json:"stock"`
	// 通知側がそのまま使うレベル: error / warning
	Level   string `json:"level"`
	Message string `json:"message"`
}

type LowStockOutput struct {
	Threshold int64        `json:"threshold"`
	Critical  []StockAlert `json:"critical"`
	Warning   []StockAlert `json:"warning"`
}

// LowStockAlerts は在庫が閾値以下の商品を
// critical（在庫0）と warning（1〜閾値）に分けて返す。
// threshold < 0 のときはデフォルト閾値を使う。
func (u *ReportUsecase) LowStockAlerts(ctx context.Context, threshold int64) (LowStockOutput, error) {
	if threshold < 0 {
		threshold = u.threshold
	}

	products, err := u.productRepo.ListLowStock(ctx, threshold)
	if err != nil {
		return LowStockOutput{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}

	out := LowStockOutput{
		Threshold: threshold,
		Critical:  []StockAlert{},
		Warning:   []StockAlert{},
	}

	for _, p := range products {
		alert := StockAlert{
			ProductID: p.ID,
			Code:      p.Code,
			Name:      p.Name,
			Stock:     p.Stock,
		}
		if p.Stock == 0 {
			alert.Level = "error"
			alert.Message = fmt.Sprintf("%s %s is out of stock", p.Code, p.Name)
			out.Critical = append(out.Critical, alert)
		} else {
			alert.Level = "warning"
			alert.Message = fmt.Sprintf("%s %s is low on stock (%d left)", p.Code, p.Name, p.Stock)
			out.Warning = append(out.Warning, alert)
		}
	}

	return out, nil
}

func (u *ReportUsecase) RecentSales(ctx context.Context, limit int) ([]model.Sale, error) {
	if limit < 1 {
		return []model.Sale{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	sales, err := u.saleRepo.ListRecent(ctx, limit)
	if err != nil {
		return []model.Sale{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	return sales, nil
}

type SalesReportLine struct {
	SaleID    string          `json:"sale_id"`
	CreatedAt time.Time       `json:"created_at"`
	ItemCount int             `json:"item_count"`
	Total     decimal.Decimal `json:"total"`
	Details   string          `json:"details"`
}

type SalesReportOutput struct {
	Title       string             `json:"title"`
	Period      string             `json:"period"`
	SaleCount   int                `json:"sale_count"`
	TotalValue  decimal.Decimal    `json:"total_value"`
	Sales       []SalesReportLine  `json:"sales"`
	BestSellers []BestSellerOutput `json:"best_sellers"`
}

// SalesReport はエクスポート向けの売上レポートを組み立てる。
// 売上が1件も無ければ作らない。
func (u *ReportUsecase) SalesReport(ctx context.Context) (SalesReportOutput, error) {
	sales, err := u.saleRepo.List(ctx)
	if err != nil {
		return SalesReportOutput{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	if len(sales) == 0 {
		return SalesReportOutput{}, NewHTTPError(http.StatusBadRequest, "no sales recorded")
	}

	out := SalesReportOutput{
		Title:      fmt.Sprintf("Sales Report - %s", u.shopName),
		Period:     u.clock.Now().Format("2006-01-02"),
		SaleCount:  len(sales),
		TotalValue: decimal.Zero,
		Sales:      make([]SalesReportLine, 0, len(sales)),
	}

	for _, s := range sales {
		out.TotalValue = out.TotalValue.Add(s.Total)

		details := make([]string, 0, len(s.Items))
		for _, it := range s.Items {
			details = append(details, fmt.Sprintf("%dx %s", it.Quantity, it.NameSnapshot))
		}

		out.Sales = append(out.Sales, SalesReportLine{
			SaleID:    s.ID,
			CreatedAt: s.CreatedAt,
			ItemCount: len(s.Items),
			Total:     s.Total,
			Details:   strings.Join(details, ", "),
		})
	}

	out.BestSellers = bestSellersFrom(sales, 10)
	return out, nil
}

type StockReportLine struct {
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	Category string          `json:"category,omitempty"`
	Price    decimal.Decimal `json:"price"`
	Stock    int64           `json:"stock"`
	Value    decimal.Decimal `json:"value"`
}

type StockReportOutput struct {
	Title           string            `json:"title"`
	Date            string            `json:"date"`
	ProductCount    int               `json:"product_count"`
	TotalStockValue decimal.Decimal   `json:"total_stock_value"`
	Products        []StockReportLine `json:"products"`
	Alerts          []StockAlert      `json:"alerts"`
}

// StockReport はエクスポート向けの在庫レポートを組み立てる。
// 商品が1件も無ければ作らない。
func (u *ReportUsecase) StockReport(ctx context.Context) (StockReportOutput, error) {
	products, err := u.productRepo.List(ctx)
	if err != nil {
		return StockReportOutput{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	if len(products) == 0 {
		return StockReportOutput{}, NewHTTPError(http.StatusBadRequest, "no products registered")
	}

	out := StockReportOutput{
		Title:           fmt.Sprintf("Stock Report - %s", u.shopName),
		Date:            u.clock.Now().Format("2006-01-02"),
		ProductCount:    len(products),
		TotalStockValue: decimal.Zero,
		Products:        make([]StockReportLine, 0, len(products)),
	}

	for _, p := range products {
		value := p.Price.Mul(decimal.NewFromInt(p.Stock))
		out.TotalStockValue = out.TotalStockValue.Add(value)
		out.Products = append(out.Products, StockReportLine{
			Code:     p.Code,
			Name:     p.Name,
			Category: p.Category,
			Price:    p.Price,
			Stock:    p.Stock,
			Value:    value,
		})
	}

	alerts, err := u.LowStockAlerts(ctx, u.threshold)
	if err != nil {
		return StockReportOutput{}, err
	}
	out.Alerts = append(out.Alerts, alerts.Critical...)
	out.Alerts = append(out.Alerts, alerts.Warning...)
	if out.Alerts == nil {
		out.Alerts = []StockAlert{}
	}

	return out, nil
}
