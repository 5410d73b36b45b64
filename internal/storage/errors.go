package storage

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Виды ошибок хранилища. Обработчик ошибок HTTP-слоя переводит их в статусы:
// ErrNotFound -> 404, ErrConstraint -> 500 с сообщением, остальные -> 500.
var (
	ErrNotFound           = errors.New("запись не найдена")
	ErrConstraint         = errors.New("нарушение ограничения схемы")
	ErrAmbiguousKey       = errors.New("ключ соответствует нескольким записям")
	ErrStorageUnavailable = errors.New("база данных недоступна")
)

// Translate приводит ошибку драйвера/GORM к виду ошибки хранилища.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey),
		errors.Is(err, gorm.ErrForeignKeyViolated),
		errors.Is(err, gorm.ErrCheckConstraintViolated):
		return errors.Join(ErrConstraint, err)
	}
	// Драйверы без транслятора ошибок отдают текст как есть
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "duplicate key"),
		strings.Contains(msg, "unique constraint"),
		strings.Contains(msg, "foreign key"),
		strings.Contains(msg, "check constraint"):
		return errors.Join(ErrConstraint, err)
	case strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "connection reset"),
		strings.Contains(msg, "bad connection"):
		return errors.Join(ErrStorageUnavailable, err)
	}
	return err
}
