package presenter

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

type MessageResponse = ErrorResponse

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}

func Message(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, MessageResponse{Message: message})
}

// ErrorHandler renders errors that escaped the handlers. Client errors keep
// their status; everything else becomes a bare 500.
func ErrorHandler(log *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) && fe.Code < http.StatusInternalServerError {
			if fe.Code == http.StatusNotFound {
				return Error(c, http.StatusNotFound, "Resource not found")
			}
			return Error(c, fe.Code, fe.Message)
		}
		log.ErrorContext(c.UserContext(), "request failed",
			"method", c.Method(), "path", c.Path(), "error", err)
		return Error(c, http.StatusInternalServerError, "Internal server error")
	}
}
