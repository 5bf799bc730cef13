package serverutils

import (
	"errors"

	"simple-note/internal/pkg/apperror"
	"simple-note/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

func StatusFor(err error) int {
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.Is(err, apperror.ErrInvalidIdentifier), errors.Is(err, apperror.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, apperror.ErrNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func writeError(ctx *fiber.Ctx, err error, log logger.ILogger) error {
	status := StatusFor(err)

	message := "Internal server error"
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		message = fiberErr.Message
	} else if appErr, ok := apperror.As(err); ok {
		message = appErr.Message
	}

	// Causes of 5xx errors are logged and never sent to the client.
	if status >= fiber.StatusInternalServerError {
		log.Error("HTTP", message, map[string]interface{}{
			"error":      err,
			"method":     ctx.Method(),
			"path":       ctx.Path(),
			"request_id": ctx.Locals("requestid"),
		})
	}

	return ctx.Status(status).JSON(ErrorResponse(message))
}

// ErrorHandlerMiddleware turns errors returned by downstream handlers into
// the JSON error envelope.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return writeError(ctx, err, log)
	}
}

// ErrorHandler covers errors raised outside the middleware chain, such as
// an oversized body rejected before routing.
func ErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		return writeError(ctx, err, log)
	}
}
