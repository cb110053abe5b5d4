package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"uptask-api/interfaces/api/handlers"
	websocketHandler "uptask-api/interfaces/api/websocket"
)

func SetupWebSocketRoutes(app *fiber.App, h *handlers.Handlers) {
	wsHandler := websocketHandler.NewWebSocketHandler(
		h.Services.AuthService,
		h.Services.ProjectService,
		h.Services.WSManager,
	)

	app.Get("/ws/projects/:projectId", wsHandler.WebSocketUpgrade, websocket.New(wsHandler.HandleWebSocket))
}
