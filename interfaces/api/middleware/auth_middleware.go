package middleware

import (
	"github.com/gofiber/fiber/v2"

	"uptask-api/domain/services"
	"uptask-api/pkg/logger"
	"uptask-api/pkg/utils"
)

// Authenticate ตรวจ bearer JWT แล้วใส่ user (id, name, email) ไว้ใน c.Locals("user")
func Authenticate(authService services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return utils.UnauthorizedResponse(c, "")
		}

		// header ที่ไม่ใช่ "Bearer <token>" ถือว่า token ไม่ถูกต้อง
		token := utils.ExtractTokenFromHeader(authHeader)
		if token == "" {
			return utils.HandleError(c, utils.ErrInvalidJWT())
		}

		user, err := authService.Authenticate(c.UserContext(), token)
		if err != nil {
			return utils.HandleError(c, err)
		}

		c.Locals("user", &utils.UserContext{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		})
		c.SetUserContext(logger.ContextWithUserID(c.UserContext(), user.ID.String()))

		return c.Next()
	}
}
