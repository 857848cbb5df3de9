package handler

import (
	"pharmastock/internal/middleware"
	"pharmastock/internal/service"
	"pharmastock/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewApp wires middleware and every route of the API.
func NewApp(inventory service.InventoryService, dashboard service.DashboardService, hub *ws.Hub) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "PharmaStock API",
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	invHandler := NewInventoryHandler(inventory)
	dashHandler := NewDashboardHandler(dashboard)

	api := app.Group("/api")

	api.Get("/products", invHandler.GetProducts)
	api.Get("/products/:id", invHandler.GetProduct)
	api.Post("/products", invHandler.CreateProduct)
	api.Put("/products/:id", invHandler.UpdateProduct)
	api.Delete("/products/:id", invHandler.DeleteProduct)

	api.Get("/alerts/expiring", invHandler.GetExpiringProducts)
	api.Get("/dashboard/stats", dashHandler.GetDashboardStats)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		if !hub.Join(c) {
			return
		}
		defer hub.Leave(c)

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	return app
}
