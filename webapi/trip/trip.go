package trip

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	tripsvc "github.com/wayfarer-app/wayfarer/pkg/service/trip"
	"github.com/wayfarer-app/wayfarer/webapi"
)

// Routes registers HTTP routes for trip and expense operations.
func Routes(app *fiber.App, svc *tripsvc.Service) {
	trips := app.Group("/api/trips")

	trips.Post("/", CreateTrip(svc))
	trips.Get("/", ListTrips(svc))
	trips.Get("/:id", GetTripSummary(svc))
	trips.Put("/:id", UpdateTrip(svc))
	trips.Delete("/:id", DeleteTrip(svc))

	trips.Post("/:id/expenses", AddExpense(svc))
	trips.Get("/:id/expenses", ListExpenses(svc))
	trips.Put("/:id/expenses/:expenseId", UpdateExpense(svc))
	trips.Delete("/:id/expenses/:expenseId", DeleteExpense(svc))

	trips.Get("/:id/export", ExportCSV(svc))
}

func parseID(c *fiber.Ctx, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		return uuid.Nil, webapi.ErrorResponseJSON(c,
			fiber.StatusBadRequest, "Invalid id", fmt.Sprintf("%s must be a UUID", param))
	}
	return id, nil
}

// CreateTrip returns a Fiber handler for creating a trip.
// @Summary Create a trip
// @Tags trips
// @Accept json
// @Produce json
// @Success 201 {object} webapi.Response
// @Failure 400 {object} webapi.ProblemDetails
// @Router /api/trips [post]
func CreateTrip(svc *tripsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := webapi.BindAndValidate[CreateTripRequest](c)
		if err != nil {
			return nil
		}
		in, err := req.ToServiceInput()
		if err != nil {
			return webapi.DomainErrorResponseJSON(c, "Invalid trip", err)
		}
		trip, err := svc.CreateTrip(c.Context(), in)
		if err != nil {
			return webapi.DomainErrorResponseJSON(c, "Failed to create trip", err)
		}
		return webapi.SuccessResponseJSON(c,
			fiber.StatusCreated, "Trip created successfully", ToTripResponse(trip))
	}
}

// ListTrips returns a Fiber handler for listing all trips.
// @Summary List trips
// @Tags trips
// @Produce json
// @Success 200 {object} webapi.Response
// @Router /api/trips [get]
func ListTrips(svc *tripsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		trips, err := svc.ListTrips(c.Context())
		if err != nil {
			return webapi.DomainErrorResponseJSON(c, "Failed to list trips", err)
		}
		out := make([]*TripResponse, 0, len(trips))
		for _, t := range trips {
			out = append(out, ToTripResponse(t))
		}
		return webapi.SuccessResponseJSON(c,
			fiber.StatusOK, "Trips fetched successfully", out)
	}
}

// GetTripSummary returns a Fiber handler for a trip with its runway metrics.
// @Summary Get a trip summary
// @Description Trip details with aggregate spend and budget runway projection
// @Tags trips
// @Produce json
// @Success 200 {object} webapi.Response
// @Failure 404 {object} webapi.ProblemDetails
// @Router /api/trips/{id} [get]
func GetTripSummary(svc *tripsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return nil
		}
		summary, err := svc.GetSummary(c.Context(), id)
		if err != nil {
			return webapi.DomainErrorResponseJSON(c, "Failed to fetch trip", err)
		}
		return webapi.SuccessResponseJSON(c,
			fiber.StatusOK, "Trip fetched successfully", ToSummaryResponse(summary))
	}
}

// UpdateTrip returns a Fiber handler for updating a trip.
// @Summary Update a trip
// @Tags trips
// @Accept json
// @Produce json
// @Success 200 {object} webapi.Response
// @Failure 404 {object} webapi.ProblemDetails
// @Router /api/trips/{id} [put]
func UpdateTrip(svc *tripsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return nil
		}
		req, err := webapi.BindAndValidate[CreateTripRequest](c)
		if err != nil {
			return nil
		}
		in, err := req.ToServiceInput()
		if err != nil {
			return webapi.DomainErrorResponseJSON(c, "Invalid trip", err)
		}
		trip, err := svc.UpdateTrip(c.Context(), id, in)
		if err != nil {
			return webapi.DomainErrorResponseJSON(c, "Failed to update trip", err)
		}
		return webapi.SuccessResponseJSON(c,
			fiber.StatusOK, "Trip updated successfully", ToTripResponse(trip))
	}
}

// DeleteTrip returns a Fiber handler for deleting a trip.
// @Summary Delete a trip
// @Tags trips
// @Success 200 {object} webapi.Response
// @Failure 404 {object} webapi.ProblemDetails
// @Router /api/trips/{id} [delete]
func DeleteTrip(svc *tripsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return nil
		}
		if err := svc.DeleteTrip(c.Context(), id); err != nil {
			return webapi.DomainErrorResponseJSON(c, "Failed to delete trip", err)
		}
		return webapi.SuccessResponseJSON(c,
			fiber.StatusOK, "Trip deleted successfully", nil)
	}
}

// AddExpense returns a Fiber handler for recording an expense on a trip.
// The amount is converted to the trip's base currency at creation time.
// @Summary Record an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Success 201 {object} webapi.Response
// @Failure 400 {object} webapi.ProblemDetails
// @Failure 404 {object} webapi.ProblemDetails
// @Router /api/trips/{id}/expenses [post]
func AddExpense(svc *tripsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return nil
		}
		req, err := webapi.BindAndValidate[AddExpenseRequest](c)
		if err != nil {
			return nil
		}
		in, err := req.ToServiceInput()
		if err != nil {
			return webapi.DomainErrorResponseJSON(c, "Invalid expense", err)
		}
		expense, err := svc.AddExpense(c.Context(), id, in)
		if err != nil {
			return webapi.DomainErrorResponseJSON(c, "Failed to record expense", err)
		}
		return webapi.SuccessResponseJSON(c,
			fiber.StatusCreated, "Expense recorded successfully", ToExpenseResponse(expense))
	}
}

// ListExpenses returns a Fiber handler for listing a trip's expenses.
// @Summary List a trip's expenses
// @Tags expenses
// @Produce json
// @Success 200 {object} webapi.Response
// @Failure 404 {object} webapi.ProblemDetails
// @Router /api/trips/{id}/expenses [get]
func ListExpenses(svc *tripsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return nil
		}
		expenses, err := svc.ListExpenses(c.Context(), id)
		if err != nil {
			return webapi.DomainErrorResponseJSON(c, "Failed to list expenses", err)
		}
		out := make([]*ExpenseResponse, 0, len(expenses))
		for _, e := range expenses {
			out = append(out, ToExpenseResponse(e))
		}
		return webapi.SuccessResponseJSON(c,
			fiber.StatusOK, "Expenses fetched successfully", out)
	}
}

// UpdateExpense returns a Fiber handler for editing an expense. The base
// amount and rate are re-resolved from the submitted amount and currency.
// @Summary Update an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Success 200 {object} webapi.Response
// @Failure 400 {object} webapi.ProblemDetails
// @Failure 404 {object} webapi.ProblemDetails
// @Router /api/trips/{id}/expenses/{expenseId} [put]
func UpdateExpense(svc *tripsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tripID, err := parseID(c, "id")
		if err != nil {
			return nil
		}
		expenseID, err := parseID(c, "expenseId")
		if err != nil {
			return nil
		}
		req, err := webapi.BindAndValidate[AddExpenseRequest](c)
		if err != nil {
			return nil
		}
		in, err := req.ToServiceInput()
		if err != nil {
			return webapi.DomainErrorResponseJSON(c, "Invalid expense", err)
		}
		expense, err := svc.UpdateExpense(c.Context(), tripID, expenseID, in)
		if err != nil {
			return webapi.DomainErrorResponseJSON(c, "Failed to update expense", err)
		}
		return webapi.SuccessResponseJSON(c,
			fiber.StatusOK, "Expense updated successfully", ToExpenseResponse(expense))
	}
}

// DeleteExpense returns a Fiber handler for removing an expense.
// @Summary Delete an expense
// @Tags expenses
// @Success 200 {object} webapi.Response
// @Failure 404 {object} webapi.ProblemDetails
// @Router /api/trips/{id}/expenses/{expenseId} [delete]
func DeleteExpense(svc *tripsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tripID, err := parseID(c, "id")
		if err != nil {
			return nil
		}
		expenseID, err := parseID(c, "expenseId")
		if err != nil {
			return nil
		}
		if err := svc.DeleteExpense(c.Context(), tripID, expenseID); err != nil {
			return webapi.DomainErrorResponseJSON(c, "Failed to delete expense", err)
		}
		return webapi.SuccessResponseJSON(c,
			fiber.StatusOK, "Expense deleted successfully", nil)
	}
}

var unsafeFilename = regexp.MustCompile(`[^a-z0-9]+`)

// ExportCSV returns a Fiber handler that streams a trip's expenses as a CSV
// attachment.
// @Summary Export a trip's expenses as CSV
// @Tags trips
// @Produce text/csv
// @Success 200 {string} string
// @Failure 404 {object} webapi.ProblemDetails
// @Router /api/trips/{id}/export [get]
func ExportCSV(svc *tripsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return nil
		}
		trip, err := svc.GetTrip(c.Context(), id)
		if err != nil {
			return webapi.DomainErrorResponseJSON(c, "Failed to export trip", err)
		}

		var buf bytes.Buffer
		if err := svc.ExportCSV(c.Context(), id, &buf); err != nil {
			return webapi.DomainErrorResponseJSON(c, "Failed to export trip", err)
		}

		name := unsafeFilename.ReplaceAllString(strings.ToLower(trip.Name), "_")
		c.Set(fiber.HeaderContentType, "text/csv")
		c.Set(fiber.HeaderContentDisposition,
			fmt.Sprintf(`attachment; filename="%s_expenses.csv"`, name))
		return c.Send(buf.Bytes())
	}
}
