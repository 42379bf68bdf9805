package middleware

import (
	"log/slog"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/aivi/internal/domain"
)

// Recover turns a panic in any later handler into an INTERNAL_ERROR response.
// The log entry carries the stack; the response carries the request id so a
// client report can be traced back to that entry.
func Recover(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			id := requestID(c)
			logger.Error("panic recovered",
				slog.Any("panic", r),
				slog.String("method", c.Method()),
				slog.String("path", c.Path()),
				slog.String("request_id", id),
				slog.String("stack", string(debug.Stack())),
			)

			body := fiber.Map{
				"code":    domain.ErrInternal.Code,
				"message": domain.ErrInternal.Message,
			}
			if id != "" {
				body["request_id"] = id
			}
			err = c.Status(domain.ErrInternal.StatusCode).JSON(fiber.Map{"error": body})
		}()
		return c.Next()
	}
}
