package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /checkout と /sales のHTTP
type SaleHandler struct {
	saleUC *usecase.SaleUsecase
	cartUC *usecase.CartUsecase
}

// DI
func NewSaleHandler(saleUC *usecase.SaleUsecase, cartUC *usecase.CartUsecase) *SaleHandler {
	return &SaleHandler{saleUC: saleUC, cartUC: cartUC}
}

type CheckoutResponse struct {
	Sale    model.Sale `json:"sale"`
	Message string     `json:"message"`
}

type VoidSalesResponse struct {
	usecase.VoidSalesOutput
	Message string `json:"message"`
}

func (h *SaleHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/checkout", h.checkout)
	e.GET("/sales", h.list)
	e.DELETE("/sales", h.voidAll)
}

func (h *SaleHandler) checkout(c echo.Context) error {
	ctx := c.Request().Context()

	sale, err := h.saleUC.Checkout(ctx, h.cartUC.Lines(ctx))
	if err != nil {
		return writeError(c, err)
	}

	// 確定はカートに触らない。クリアはここでやる
	h.cartUC.Clear(ctx)

	return c.JSON(http.StatusCreated, CheckoutResponse{
		Sale:    sale,
		Message: fmt.Sprintf("sale completed, total %s", sale.Total.StringFixed(2)),
	})
}

func (h *SaleHandler) list(c echo.Context) error {
	// limit（default 50）
	limit := 50
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	out, err := h.saleUC.ListSales(c.Request().Context(), limit)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *SaleHandler) voidAll(c echo.Context) error {
	out, err := h.saleUC.VoidAllSales(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	msg := "no sales to void"
	if out.Deleted > 0 {
		msg = fmt.Sprintf("%d sales voided, total %s", out.Deleted, out.TotalValue.StringFixed(2))
	}

	return c.JSON(http.StatusOK, VoidSalesResponse{VoidSalesOutput: out, Message: msg})
}
