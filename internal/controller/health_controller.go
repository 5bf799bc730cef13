package controller

import (
	"simple-note/internal/dto"
	"simple-note/internal/pkg/logger"
	"simple-note/internal/pkg/serverutils"
	"simple-note/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Check(ctx *fiber.Ctx) error
}

type healthController struct {
	healthService service.IHealthService
	logger        logger.ILogger
}

func NewHealthController(healthService service.IHealthService, log logger.ILogger) IHealthController {
	return &healthController{
		healthService: healthService,
		logger:        log,
	}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Check)
}

func (c *healthController) Check(ctx *fiber.Ctx) error {
	if err := c.healthService.Check(ctx.UserContext()); err != nil {
		c.logger.Warn("HealthController", "Database ping failed", map[string]interface{}{"error": err})
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(serverutils.ErrorResponse("Database unavailable"))
	}

	return ctx.JSON(serverutils.SuccessResponse(dto.HealthResponse{Status: "ok"}))
}
