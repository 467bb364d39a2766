package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Bodega-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *usecase.AuthUseCase
	ProductUC *usecase.ProductUseCase
	StockUC   *usecase.StockUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Stock (protegido)
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stock.Post("/restock", stockHandler.Restock)
	stock.Post("/remove", stockHandler.Remove)
	stock.Delete("/:productID", stockHandler.Empty)
	stock.Get("/:productID/movements", stockHandler.Movements)

	// Warehouse (protegido; cambios de estructura solo admin)
	warehouse := protected.Group("/warehouse")
	warehouseHandler := NewWarehouseHandler(deps.StockUC)
	warehouse.Get("/", warehouseHandler.Status)
	warehouse.Get("/layout", warehouseHandler.Layout)
	warehouse.Get("/products/:productID/locations", stockHandler.Locations)
	warehouse.Post("/products/:productID/organize", stockHandler.Organize)

	admin := warehouse.Group("/", RequireRole("admin"))
	admin.Post("/rows", warehouseHandler.AddRow)
	admin.Delete("/rows/:row", warehouseHandler.RemoveRow)
	admin.Post("/rows/:row/columns", warehouseHandler.AddColumn)
	admin.Delete("/rows/:row/columns/:column", warehouseHandler.RemoveColumn)
}
