package handler

import (
	"fmt"
	"io"
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// バックアップのダウンロードとインポートのHTTP
type DataHandler struct {
	uc *usecase.DataUsecase
}

// DI
func NewDataHandler(uc *usecase.DataUsecase) *DataHandler {
	return &DataHandler{uc: uc}
}

func (h *DataHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/export", h.export)
	e.POST("/import", h.importSnapshot)
}

func (h *DataHandler) export(c echo.Context) error {
	snap, err := h.uc.Export(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	filename := fmt.Sprintf("parts_backup_%s.json", snap.LastUpdated.Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, filename))

	return c.JSONPretty(http.StatusOK, snap, "  ")
}

func (h *DataHandler) importSnapshot(c echo.Context) error {
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	confirm := c.QueryParam("confirm") == "true"

	out, err := h.uc.Import(c.Request().Context(), raw, confirm)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
