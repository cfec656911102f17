// file: internals/helpers/json_response.go
package helper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

/* ===============================
   Error helpers (standard shape)
=================================*/

// ErrorResponse: "detail" dipertahankan supaya client lama (yang membaca detail) tetap jalan.
type ErrorResponse struct {
	Detail    string            `json:"detail"`
	ErrorCode string            `json:"error_code,omitempty"`
	Errors    map[string]string `json:"errors,omitempty"`
}

func statusToErrorCode(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusUnprocessableEntity:
		return "VALIDATION_ERROR"
	case fiber.StatusConflict:
		return "CONFLICT"
	case fiber.StatusTooManyRequests:
		return "TOO_MANY_REQUESTS"
	default:
		if status >= 500 {
			return "INTERNAL_ERROR"
		}
		return "ERROR"
	}
}

// JsonError: error generic (bukan validasi)
func JsonError(c *fiber.Ctx, status int, message string) error {
	if status == 0 {
		status = fiber.StatusInternalServerError
	}
	if strings.TrimSpace(message) == "" {
		message = fiber.ErrInternalServerError.Message
		if status < 500 {
			message = strings.ToLower(statusToErrorCode(status))
		}
	}
	return c.Status(status).JSON(ErrorResponse{
		Detail:    message,
		ErrorCode: statusToErrorCode(status),
	})
}

// JsonValidationError: khusus error validasi payload (400 + map per field)
func JsonValidationError(c *fiber.Ctx, fieldErrors map[string]string) error {
	if fieldErrors == nil {
		fieldErrors = map[string]string{}
	}
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Detail:    "validation failed",
		ErrorCode: "BAD_REQUEST",
		Errors:    fieldErrors,
	})
}

/* ===============================
   JSON responses (standard success)
   Body dikirim apa adanya (tanpa envelope) karena kontrak API lama begitu.
=================================*/

// JsonOK: response sukses generic (GET detail, update, aksi)
func JsonOK(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

// JsonCreated: response sukses create (POST)
func JsonCreated(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

// JsonList: list + total di header X-Total-Count (kalau paging dipakai)
func JsonList(c *fiber.Ctx, data any, total int64, p Paging) error {
	if p.Enabled {
		c.Set("X-Total-Count", strconv.FormatInt(total, 10))
		c.Set("X-Page", strconv.Itoa(p.Page))
		c.Set("X-Per-Page", strconv.Itoa(p.PerPage))
	}
	return c.Status(fiber.StatusOK).JSON(data)
}

// JsonDeleted: 204 tanpa body
func JsonDeleted(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
