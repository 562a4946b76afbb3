package server

import (
	"app/internal/handler"

	"github.com/labstack/echo/v4"
)

func Start(
	addr string,
	productH *handler.ProductHandler,
	cartH *handler.CartHandler,
	saleH *handler.SaleHandler,
	reportH *handler.ReportHandler,
	dataH *handler.DataHandler,
) error {
	e := echo.New()
	RegisterRoutes(e, productH, cartH, saleH, reportH, dataH)
	return e.Start(addr)
}
