package server

import (
	"app/internal/handler"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(
	e *echo.Echo,
	productH *handler.ProductHandler,
	cartH *handler.CartHandler,
	saleH *handler.SaleHandler,
	reportH *handler.ReportHandler,
	dataH *handler.DataHandler,
) {
	productH.RegisterRoutes(e)
	cartH.RegisterRoutes(e)
	saleH.RegisterRoutes(e)
	reportH.RegisterRoutes(e)
	dataH.RegisterRoutes(e)
}
