package serverutils

import (
	"time"

	"simple-note/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger must be mounted before ErrorHandlerMiddleware so that the
// response status it reads is the final one.
func RequestLogger(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		status := ctx.Response().StatusCode()
		if err != nil {
			status = StatusFor(err)
		}

		details := map[string]interface{}{
			"method":     ctx.Method(),
			"path":       ctx.Path(),
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"request_id": ctx.Locals("requestid"),
		}
		if status >= fiber.StatusInternalServerError {
			log.Warn("HTTP", "Request failed", details)
		} else {
			log.Info("HTTP", "Request", details)
		}

		return err
	}
}
