package routes

import (
	"github.com/gofiber/fiber/v2"

	"uptask-api/interfaces/api/handlers"
)

func SetupHealthRoutes(app *fiber.App, h *handlers.Handlers) {
	app.Get("/health", h.HealthHandler.Health)
}
