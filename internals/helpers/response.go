package helper

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Validator instance (nama field diambil dari tag json supaya pesan error cocok dengan payload)
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

func Validator() *validator.Validate { return validate }

// ValidationErrors: hasil validasi payload, dirender 400 + map per field.
type ValidationErrors struct {
	Fields map[string]string
}

func (e *ValidationErrors) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for k, v := range e.Fields {
		parts = append(parts, k+": "+v)
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Validate menjalankan validator.v10 dan membungkus hasilnya jadi *ValidationErrors.
func Validate(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return InvalidArgument("Invalid input")
	}
	fields := make(map[string]string, len(ve))
	for _, fieldErr := range ve {
		switch fieldErr.Tag() {
		case "required":
			fields[fieldErr.Field()] = "wajib diisi"
		case "gt", "gte", "min":
			fields[fieldErr.Field()] = "minimal " + fieldErr.Param()
		case "max", "lte":
			fields[fieldErr.Field()] = "maksimal " + fieldErr.Param()
		default:
			fields[fieldErr.Field()] = fieldErr.Tag()
		}
	}
	return &ValidationErrors{Fields: fields}
}

// BindJSON: parse body JSON + validasi.
func BindJSON(c *fiber.Ctx, dst any) error {
	if len(c.Body()) == 0 {
		return InvalidArgument("Payload kosong")
	}
	if err := c.BodyParser(dst); err != nil {
		return InvalidArgument("Payload tidak valid: " + err.Error())
	}
	return Validate(dst)
}
