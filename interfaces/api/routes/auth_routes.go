package routes

import (
	"github.com/gofiber/fiber/v2"

	"uptask-api/interfaces/api/handlers"
	"uptask-api/interfaces/api/middleware"
)

func SetupAuthRoutes(api fiber.Router, h *handlers.Handlers) {
	auth := api.Group("/auth")

	auth.Post("/create-account", h.AuthHandler.CreateAccount)
	auth.Post("/confirm-account", h.AuthHandler.ConfirmAccount)
	auth.Post("/login", h.AuthHandler.Login)
	auth.Post("/request-code", h.AuthHandler.RequestConfirmationCode)
	auth.Post("/forgot-password", h.AuthHandler.ForgotPassword)
	auth.Post("/validate-token", h.AuthHandler.ValidateToken)
	auth.Post("/update-password/:token", h.AuthHandler.UpdatePasswordWithToken)

	// Protected routes - require authentication
	authenticate := middleware.Authenticate(h.Services.AuthService)
	auth.Get("/user", authenticate, h.AuthHandler.User)
	auth.Put("/profile", authenticate, h.AuthHandler.UpdateProfile)
	auth.Post("/update-password", authenticate, h.AuthHandler.UpdateCurrentPassword)
	auth.Post("/check-password", authenticate, h.AuthHandler.CheckPassword)
}
