package webutil

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"flowershop-backend/internal/storage"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

// Validate прогоняет DTO через go-playground/validator и возвращает 400
// с человекочитаемым сообщением при нарушении.
func Validate(body any) error {
	if err := validate.Struct(body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "неверное тело запроса: "+err.Error())
	}
	return nil
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate принимает дату в ISO-форматах, которыми пользуется витрина.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("неверный формат даты: %q", s)
}

// UnescapedParam извлекает строковый параметр пути с декодированием
// percent-encoding (артикулы и поисковые запросы бывают кириллическими).
func UnescapedParam(c *fiber.Ctx, name string) (string, error) {
	raw := c.Params(name)
	v, err := url.PathUnescape(raw)
	if err != nil {
		return raw, nil
	}
	return v, nil
}

// ParseIntParam извлекает целочисленный параметр пути (:id и т.п.).
func ParseIntParam(c *fiber.Ctx, name string) (int, error) {
	v, err := c.ParamsInt(name)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("параметр %s должен быть числом", name))
	}
	return v, nil
}

// ErrorHandler переводит ошибки хранилища в HTTP-статусы:
// NotFound -> 404, нарушение схемы и недоступность базы -> 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}

	switch {
	case errors.Is(err, storage.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "запись не найдена"})
	case errors.Is(err, storage.ErrConstraint):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, storage.ErrStorageUnavailable):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "база данных недоступна"})
	}

	log.Error().Err(err).Str("path", c.Path()).Msg("необработанная ошибка")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "внутренняя ошибка сервера"})
}
