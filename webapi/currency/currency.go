package currency

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/wayfarer-app/wayfarer/pkg/domain"
	"github.com/wayfarer-app/wayfarer/pkg/exchange"
	"github.com/wayfarer-app/wayfarer/webapi"
)

// Routes registers HTTP routes for currency conversion.
func Routes(app *fiber.App, resolver *exchange.Resolver) {
	group := app.Group("/api/currency")
	group.Post("/convert", Convert(resolver))
}

// Convert returns a Fiber handler for converting an amount between
// currencies.
// @Summary Convert an amount between currencies
// @Description Resolves an exchange rate (cached up to 1 hour per pair) and applies it to the amount
// @Tags currency
// @Accept json
// @Produce json
// @Success 200 {object} webapi.Response
// @Failure 400 {object} webapi.ProblemDetails
// @Failure 500 {object} webapi.ProblemDetails
// @Router /api/currency/convert [post]
func Convert(resolver *exchange.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req ConvertRequest
		if err := c.BodyParser(&req); err != nil {
			return webapi.ErrorResponseJSON(c,
				fiber.StatusBadRequest, "Invalid request body", err.Error())
		}

		res, err := resolver.Convert(c.Context(), req.Amount, req.From, req.To)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrValidation):
				return webapi.ErrorResponseJSON(c,
					fiber.StatusBadRequest, "Invalid conversion request", err.Error())
			case errors.Is(err, domain.ErrUnsupportedPair):
				return webapi.ErrorResponseJSON(c,
					fiber.StatusBadRequest, "Unsupported currency pair", err.Error())
			default:
				return webapi.ErrorResponseJSON(c,
					fiber.StatusInternalServerError, "Currency conversion failed",
					"Failed to convert currency. Please enter the exchange rate manually.")
			}
		}

		return c.Status(fiber.StatusOK).JSON(ToResponse(res))
	}
}
