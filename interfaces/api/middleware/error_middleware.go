package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"uptask-api/pkg/logger"
	"uptask-api/pkg/utils"
)

func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if appErr, ok := utils.AsAppError(err); ok {
			return utils.ErrorResponse(c, appErr.Status, appErr.Code, appErr.Message, nil)
		}

		code := fiber.StatusInternalServerError
		errCode := utils.ErrCodeInternalError
		message := utils.MsgInternal

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
			message = e.Message
			switch code {
			case fiber.StatusBadRequest:
				errCode = utils.ErrCodeBadRequest
			case fiber.StatusUnauthorized:
				errCode = utils.ErrCodeUnauthorized
			case fiber.StatusForbidden:
				errCode = utils.ErrCodeForbidden
			case fiber.StatusNotFound:
				errCode = utils.ErrCodeNotFound
			case fiber.StatusConflict:
				errCode = utils.ErrCodeConflict
			}
		}

		if code >= fiber.StatusInternalServerError {
			logger.ErrorContext(c.UserContext(), "Unhandled error", "path", c.Path(), "error", err)
		}

		return utils.ErrorResponse(c, code, errCode, message, nil)
	}
}
