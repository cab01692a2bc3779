package serverutils

import (
	"ai-knowledgebase-be/internal/apperror"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors escaping the controllers into the
// shared response envelope. Controllers mostly return degraded successes;
// what reaches here is validation, not-found, or genuine failure.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		if fiberErr, ok := err.(*fiber.Error); ok {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		code := apperror.StatusCode(err)
		message := err.Error()
		if code == fiber.StatusInternalServerError {
			// Do not leak internals to the client.
			message = "Internal server error"
		}

		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}
