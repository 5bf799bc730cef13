package serverutils

import (
	"strconv"

	"simple-note/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

// ParseIDParam reads a base-10 int64 route parameter. Anything else,
// including "12abc" or an empty value, is an invalid identifier.
func ParseIDParam(ctx *fiber.Ctx, name, message string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Params(name), 10, 64)
	if err != nil {
		return 0, apperror.InvalidIdentifier(message)
	}
	return id, nil
}
