package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/omplast/stores-api/internal/application/dto"
	"github.com/omplast/stores-api/internal/application/stock"
	"github.com/omplast/stores-api/internal/domain"
)

// StockHandler serves the read side: balances, movement history, items, and
// the balance rebuild.
type StockHandler struct {
	query   *stock.QueryUseCase
	rebuild *stock.RebuildUseCase
}

// NewStockHandler builds the handler.
func NewStockHandler(query *stock.QueryUseCase, rebuild *stock.RebuildUseCase) *StockHandler {
	return &StockHandler{query: query, rebuild: rebuild}
}

// GetBalances handles GET /stock/balance?item_code=&item_type=&location=.
func (h *StockHandler) GetBalances(c *fiber.Ctx) error {
	var q dto.BalanceQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse("INVALID_INPUT", "malformed query"))
	}
	if err := dto.Validate(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse("INVALID_INPUT", "item_type must be one of RM, PM, SPARE, FG, LOCAL"))
	}
	rows, err := h.query.GetBalances(c.Context(), q)
	if err != nil {
		return writeQueryError(c, err)
	}
	return c.JSON(rows)
}

// ExportBalances handles GET /stock/balance/export, an xlsx download of the
// same query.
func (h *StockHandler) ExportBalances(c *fiber.Ctx) error {
	var q dto.BalanceQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse("INVALID_INPUT", "malformed query"))
	}
	if err := dto.Validate(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse("INVALID_INPUT", "item_type must be one of RM, PM, SPARE, FG, LOCAL"))
	}
	data, err := h.query.ExportBalancesXLSX(c.Context(), q)
	if err != nil {
		return writeQueryError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="stock_balances.xlsx"`)
	return c.Send(data)
}

// GetMovements handles GET /stock/movements.
func (h *StockHandler) GetMovements(c *fiber.Ctx) error {
	var q dto.MovementQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse("INVALID_INPUT", "malformed query"))
	}
	rows, err := h.query.ListMovements(c.Context(), q)
	if err != nil {
		return writeQueryError(c, err)
	}
	return c.JSON(rows)
}

// GetItems handles GET /stock/items?item_type=&sub_category=.
func (h *StockHandler) GetItems(c *fiber.Ctx) error {
	items, err := h.query.ListItems(c.Context(), c.Query("item_type"), c.Query("sub_category"))
	if err != nil {
		return writeQueryError(c, err)
	}
	return c.JSON(items)
}

// RebuildBalances handles POST /stock/rebuild. Admin-only repair that
// rematerializes balances from the movement log.
func (h *StockHandler) RebuildBalances(c *fiber.Ctx) error {
	var in dto.RebuildRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse("INVALID_BODY", "malformed request body"))
		}
	}
	rows, err := h.rebuild.Rebuild(c.Context(), in.Location)
	if err != nil {
		return writeQueryError(c, err)
	}
	return c.JSON(dto.RebuildResponse{Success: true, RowsRebuilt: rows})
}

func writeQueryError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrItemNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.NewErrorResponse("ITEM_NOT_FOUND", "stock item not found"))
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse("INVALID_INPUT", err.Error()))
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.NewErrorResponse("INTERNAL", err.Error()))
}
