package webapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/wayfarer-app/wayfarer/pkg/domain"
)

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`         // HTTP status code
	Message string `json:"message"`        // Human-readable explanation
	Data    any    `json:"data,omitempty"` // Response data
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`     // A URI reference that identifies the problem type
	Title    string `json:"title"`              // Short, human-readable summary
	Status   int    `json:"status"`             // HTTP status code
	Detail   string `json:"detail,omitempty"`   // Human-readable explanation
	Instance string `json:"instance,omitempty"` // URI reference that identifies the specific occurrence
	Errors   any    `json:"errors,omitempty"`   // Optional: additional error details
}

// SuccessResponseJSON writes a standard success envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// ErrorResponseJSON returns a response following RFC 9457 Problem Details.
func ErrorResponseJSON(c *fiber.Ctx, status int, title string, detail any) error {
	pd := ProblemDetails{
		Type:   "about:blank",
		Title:  title,
		Status: status,
	}
	if detail != nil {
		if s, ok := detail.(string); ok {
			pd.Detail = s
		} else {
			pd.Errors = detail
		}
	}
	pd.Instance = c.OriginalURL()
	c.Set(fiber.HeaderContentType, "application/problem+json")

	return c.Status(status).JSON(pd)
}

// DomainErrorResponseJSON maps a domain error to its status code and writes
// a problem details response carrying the error's message.
func DomainErrorResponseJSON(c *fiber.Ctx, title string, err error) error {
	return ErrorResponseJSON(c, ErrorToStatusCode(err), title, err.Error())
}

// ErrorToStatusCode maps domain errors to appropriate HTTP status codes.
// Validation failures and unsupported pairs are client faults; upstream
// provider failures are server faults.
func ErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrUnsupportedPair):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrUpstream):
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusInternalServerError
	}
}

// BindAndValidate parses the request body and validates it using
// go-playground/validator. Returns a pointer to the struct (populated), or
// writes an error response and returns nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		_ = ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
		return nil, err
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		_ = ErrorResponseJSON(c, fiber.StatusBadRequest, "Validation failed", err.Error())
		return nil, err
	}
	return &input, nil
}
