package helper

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Jenis error domain → status HTTP.
func NotFound(msg string) *fiber.Error        { return fiber.NewError(fiber.StatusNotFound, msg) }
func InvalidArgument(msg string) *fiber.Error { return fiber.NewError(fiber.StatusBadRequest, msg) }
func Conflict(msg string) *fiber.Error        { return fiber.NewError(fiber.StatusConflict, msg) }

// StatusOf mengembalikan kode HTTP dari error (500 kalau tidak dikenal).
func StatusOf(err error) int {
	if err == nil {
		return fiber.StatusOK
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	var ve *ValidationErrors
	if errors.As(err, &ve) {
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

// MapStoreError: error dari gorm/driver → *fiber.Error kalau bisa dipetakan.
// 23505 unique_violation → 409, 23503 foreign_key_violation → 409.
func MapStoreError(err error) error {
	if err == nil {
		return nil
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return Conflict(fmt.Sprintf("Data duplikat (%s)", pgErr.ConstraintName))
		case "23503":
			return Conflict(fmt.Sprintf("Masih direferensikan data lain (%s)", pgErr.ConstraintName))
		}
	}
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Conflict("Data duplikat (unique violation)")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return Conflict("Masih direferensikan data lain (FK violation)")
	}
	return err
}

// IsUniqueViolation: duplicate key dari postgres (23505) atau hasil TranslateError gorm.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// FromFiberError mengubah error hasil service/Transaction menjadi response JSON konsisten.
// Error 5xx tidak dirender di sini: dikembalikan supaya ErrorHandler (log + sentry) yang merender.
func FromFiberError(c *fiber.Ctx, err error) error {
	if StatusOf(MapStoreError(err)) >= fiber.StatusInternalServerError {
		return err
	}
	return RenderError(c, err)
}

// RenderError selalu menulis response JSON untuk err.
func RenderError(c *fiber.Ctx, err error) error {
	var ve *ValidationErrors
	if errors.As(err, &ve) {
		return JsonValidationError(c, ve.Fields)
	}
	err = MapStoreError(err)
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	return JsonError(c, fiber.StatusInternalServerError, fiber.ErrInternalServerError.Message)
}

// ErrorHandler untuk fiber.Config. onInternal dipanggil untuk error 5xx (sentry/log).
func ErrorHandler(onInternal func(c *fiber.Ctx, err error)) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if onInternal != nil && StatusOf(MapStoreError(err)) >= fiber.StatusInternalServerError {
			onInternal(c, err)
		}
		return RenderError(c, err)
	}
}
