package webapi

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/wayfarer-app/wayfarer/pkg/config"
)

// HealthChecker reports whether the upstream rate provider is reachable.
type HealthChecker interface {
	IsHealthy(ctx context.Context) bool
}

// New creates the Fiber app with shared middleware and the liveness route.
// Handler routes are registered by the caller to avoid an import cycle with
// the handler packages.
func New(cfg *config.App, rates HealthChecker) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "wayfarer",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return ErrorResponseJSON(c, status, utils.StatusMessage(status), err.Error())
		},
	})

	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit.MaxRequests,
		Expiration: cfg.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return ErrorResponseJSON(c,
				fiber.StatusTooManyRequests, "Too Many Requests", "Rate limit exceeded")
		},
	}))
	app.Use(recover.New())

	app.Get("/", func(c *fiber.Ctx) error {
		ratesStatus := "ok"
		status := fiber.StatusOK
		if rates != nil && !rates.IsHealthy(c.Context()) {
			ratesStatus = "unreachable"
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(fiber.Map{
			"status": "wayfarer is up ✈️",
			"rates":  ratesStatus,
		})
	})

	return app
}
