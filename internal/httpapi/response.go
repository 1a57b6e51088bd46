package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"jamaah/pkg/domain"
)

// GenericFailure is shown for anything that is not the caller's fault.
const GenericFailure = "Terjadi kesalahan. Silakan coba lagi."

// Success writes a 200 envelope.
func Success(c *fiber.Ctx, message string, data any) error {
	return SuccessWithCode(c, fiber.StatusOK, message, data)
}

// SuccessWithCode writes a success envelope with a custom status, e.g. 201.
func SuccessWithCode(c *fiber.Ctx, code int, message string, data any) error {
	return c.Status(code).JSON(fiber.Map{
		"code":    code,
		"status":  "success",
		"message": message,
		"data":    data,
	})
}

// Error writes an error envelope.
func Error(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(fiber.Map{
		"code":    code,
		"status":  "error",
		"message": message,
	})
}

// ErrorWithDetails writes an error envelope carrying per-field errors.
func ErrorWithDetails(c *fiber.Ctx, code int, message string, details any) error {
	return c.Status(code).JSON(fiber.Map{
		"code":    code,
		"status":  "error",
		"message": message,
		"errors":  details,
	})
}

// errorHandler maps service errors onto envelopes.
func errorHandler(logger Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var verr domain.ValidationError
		var nf domain.ErrNotFound
		var ferr *fiber.Error
		switch {
		case errors.As(err, &verr):
			return ErrorWithDetails(c, fiber.StatusBadRequest, "Validasi gagal", verr.Fields)
		case errors.As(err, &nf):
			return Error(c, fiber.StatusNotFound, "Data tidak ditemukan")
		case errors.As(err, &ferr):
			return Error(c, ferr.Code, ferr.Message)
		default:
			logger.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
			return Error(c, fiber.StatusInternalServerError, GenericFailure)
		}
	}
}
