package handler

import (
	"net/http"
	"strconv"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /reports のHTTP（全て読み取り専用）
type ReportHandler struct {
	uc *usecase.ReportUsecase
}

// DI
func NewReportHandler(uc *usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func (h *ReportHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/reports/dashboard", h.dashboard)
	e.GET("/reports/best-sellers", h.bestSellers)
	e.GET("/reports/low-stock", h.lowStock)
	e.GET("/reports/sales", h.salesReport)
	e.GET("/reports/stock", h.stockReport)
}

func (h *ReportHandler) dashboard(c echo.Context) error {
	out, err := h.uc.Dashboard(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReportHandler) bestSellers(c echo.Context) error {
	// limit（default 5、チャートと同じ）
	limit := 5
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	out, err := h.uc.BestSellers(c.Request().Context(), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReportHandler) lowStock(c echo.Context) error {
	// 指定が無ければusecase側のデフォルト閾値
	var threshold int64 = -1
	if v := c.QueryParam("threshold"); v != "" {
		t, err := strconv.ParseInt(v, 10, 64)
		if err != nil || t < 0 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid threshold"})
		}
		threshold = t
	}

	out, err := h.uc.LowStockAlerts(c.Request().Context(), threshold)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReportHandler) salesReport(c echo.Context) error {
	out, err := h.uc.SalesReport(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSONPretty(http.StatusOK, out, "  ")
}

func (h *ReportHandler) stockReport(c echo.Context) error {
	out, err := h.uc.StockReport(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSONPretty(http.StatusOK, out, "  ")
}
