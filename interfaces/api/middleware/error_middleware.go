package middleware

import (
	"github.com/gofiber/fiber/v2"

	"filevault/pkg/logger"
	"filevault/pkg/utils"
)

// ErrorHandler คือ last-resort handler ของ fiber
// รวมถึง 413 จาก BodyLimit ที่ตัดก่อนถึง handler
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		errCode := utils.ErrCodeInternalError
		message := "Internal server error"

		if e, ok := err.(*fiber.Error); ok {
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
			case fiber.StatusRequestEntityTooLarge:
				errCode = utils.ErrCodePayloadTooLarge
			}
		}

		logger.ErrorContext(c.UserContext(), "Unhandled request error", "error", err, "status", code)

		return utils.ErrorResponse(c, code, errCode, message, nil)
	}
}
