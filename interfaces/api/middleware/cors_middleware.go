package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"uptask-api/pkg/config"
	"uptask-api/pkg/logger"
	"uptask-api/pkg/utils"
)

// OriginGuard ปฏิเสธ origin อื่นที่ไม่ใช่ frontend
// request ที่ไม่มี Origin (Postman, curl) ผ่านได้เฉพาะตอนรันด้วย --api
func OriginGuard(cfg config.CORSConfig) fiber.Handler {
	allowed := strings.TrimRight(cfg.FrontendURL, "/")

	return func(c *fiber.Ctx) error {
		if c.Path() == "/health" {
			return c.Next()
		}

		origin := c.Get(fiber.HeaderOrigin)
		if origin == "" {
			if cfg.AllowNoOrigin {
				return c.Next()
			}
		} else if strings.TrimRight(origin, "/") == allowed {
			return c.Next()
		}

		logger.WarnContext(c.UserContext(), "CORS rejected", "origin", origin, "path", c.Path())
		return utils.ForbiddenResponse(c, utils.MsgCORS)
	}
}

func CorsMiddleware(cfg config.CORSConfig) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:     strings.TrimRight(cfg.FrontendURL, "/"),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,HEAD",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Request-ID",
		ExposeHeaders:    "X-Request-ID",
		AllowCredentials: true,
	})
}
