package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-seat-reservation/internal/service"
)

// TableHandler exposes batch table creation.
type TableHandler struct {
	Tables *service.TableService
}

func NewTableHandler(tables *service.TableService) *TableHandler {
	return &TableHandler{Tables: tables}
}

type createTablesReq struct {
	Tables []service.TableInput `json:"tables"`
}

// Create adds a batch of tables to an owned event. Seats are generated
// automatically from the location's seats-per-table setting.
func (h *TableHandler) Create(c echo.Context) error {
	var req createTablesReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	result, err := h.Tables.CreateTables(c.Request().Context(), callerFrom(c), c.Param("id"), req.Tables)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, result)
}
