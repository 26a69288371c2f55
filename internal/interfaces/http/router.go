package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/omplast/stores-api/internal/application/stock"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	Engine    DocumentPoster
	StockUC   *stock.QueryUseCase
	RebuildUC *stock.RebuildUseCase
	JWTSecret string
}

// Router registers the API routes. Everything under /stock requires a Bearer
// token; the rebuild additionally requires the admin role.
func Router(app *fiber.App, deps RouterDeps) {
	postingHandler := NewPostingHandler(deps.Engine)
	stockHandler := NewStockHandler(deps.StockUC, deps.RebuildUC)

	group := app.Group("/stock", AuthMiddleware(deps.JWTSecret))

	group.Post("/post/:docType/:docID", postingHandler.PostDocument)

	group.Get("/balance", stockHandler.GetBalances)
	group.Get("/balance/export", stockHandler.ExportBalances)
	group.Get("/movements", stockHandler.GetMovements)
	group.Get("/items", stockHandler.GetItems)

	group.Post("/rebuild", RequireRole("admin"), stockHandler.RebuildBalances)
}
