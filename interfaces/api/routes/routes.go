package routes

import (
	"github.com/gofiber/fiber/v2"

	"uptask-api/interfaces/api/handlers"
)

func SetupRoutes(app *fiber.App, h *handlers.Handlers) {
	SetupHealthRoutes(app, h)

	api := app.Group("/api")

	SetupAuthRoutes(api, h)
	SetupProjectRoutes(api, h)

	// WebSocket (needs app, not api group)
	SetupWebSocketRoutes(app, h)
}
