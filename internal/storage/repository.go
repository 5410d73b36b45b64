package storage

import (
	"fmt"

	"gorm.io/gorm"
)

type MatchKind int

const (
	// MatchEquals - точное совпадение значения поля
	MatchEquals MatchKind = iota
	// MatchContains - подстрока без учета регистра (для текстовых полей)
	MatchContains
)

// Predicate - условие фильтрации, конъюнкция предикатов в ListOptions.
type Predicate struct {
	Column string
	Value  any
	Match  MatchKind
}

func Eq(column string, value any) Predicate {
	return Predicate{Column: column, Value: value}
}

func Contains(column string, value string) Predicate {
	return Predicate{Column: column, Value: value, Match: MatchContains}
}

// ListOptions - параметры выборки FindAll.
type ListOptions struct {
	Filters  []Predicate
	Preloads []string // ассоциации, подгружаемые вместе с записями
	Order    string
	Limit    int
}

// Repository - обобщенный CRUD-шлюз над GORM для одной сущности.
// Контракт Update/Delete: ключ обязан соответствовать ровно одной записи.
type Repository[T any] struct {
	db *gorm.DB
}

func NewRepository[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

// WithTx возвращает репозиторий, работающий внутри переданной транзакции.
func (r *Repository[T]) WithTx(tx *gorm.DB) *Repository[T] {
	return &Repository[T]{db: tx}
}

func (r *Repository[T]) Create(rec *T) error {
	if err := r.db.Create(rec).Error; err != nil {
		return Translate(err)
	}
	return nil
}

func (r *Repository[T]) FindAll(opts ListOptions) ([]T, error) {
	q := r.applyFilters(r.db.Model(new(T)), opts.Filters)
	for _, p := range opts.Preloads {
		q = q.Preload(p)
	}
	if opts.Order != "" {
		q = q.Order(opts.Order)
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	var recs []T
	if err := q.Find(&recs).Error; err != nil {
		return nil, Translate(err)
	}
	return recs, nil
}

func (r *Repository[T]) FindOne(cond map[string]any, preloads ...string) (*T, error) {
	q := r.db.Where(cond)
	for _, p := range preloads {
		q = q.Preload(p)
	}
	var rec T
	if err := q.First(&rec).Error; err != nil {
		return nil, Translate(err)
	}
	return &rec, nil
}

// Update - частичное обновление: незаданные поля сохраняют прежние значения,
// пустой fields ничего не меняет, но подтверждает существование записи.
func (r *Repository[T]) Update(cond map[string]any, fields map[string]any) (*T, error) {
	if err := r.matchExactlyOne(cond); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := r.db.Model(new(T)).Where(cond).Updates(fields).Error; err != nil {
			return nil, Translate(err)
		}
	}
	return r.FindOne(cond)
}

func (r *Repository[T]) Delete(cond map[string]any) error {
	if err := r.matchExactlyOne(cond); err != nil {
		return err
	}
	if err := r.db.Where(cond).Delete(new(T)).Error; err != nil {
		return Translate(err)
	}
	return nil
}

// DeleteAll - массовое удаление по фильтру, возвращает число удаленных записей.
// Без фильтра очищает таблицу (административный сброс).
func (r *Repository[T]) DeleteAll(filters ...Predicate) (int64, error) {
	q := r.applyFilters(r.db.Model(new(T)), filters)
	if len(filters) == 0 {
		q = q.Where("1 = 1")
	}
	res := q.Delete(new(T))
	if res.Error != nil {
		return 0, Translate(res.Error)
	}
	return res.RowsAffected, nil
}

func (r *Repository[T]) Count(cond map[string]any) (int64, error) {
	var n int64
	if err := r.db.Model(new(T)).Where(cond).Count(&n).Error; err != nil {
		return 0, Translate(err)
	}
	return n, nil
}

func (r *Repository[T]) Exists(cond map[string]any) (bool, error) {
	n, err := r.Count(cond)
	return n > 0, err
}

func (r *Repository[T]) matchExactlyOne(cond map[string]any) error {
	n, err := r.Count(cond)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	if n > 1 {
		return fmt.Errorf("%w: условие %v", ErrAmbiguousKey, cond)
	}
	return nil
}

func (r *Repository[T]) applyFilters(q *gorm.DB, filters []Predicate) *gorm.DB {
	for _, f := range filters {
		switch f.Match {
		case MatchContains:
			pattern := "%" + fmt.Sprint(f.Value) + "%"
			if r.db.Dialector.Name() == "postgres" {
				q = q.Where(f.Column+" ILIKE ?", pattern)
			} else {
				// LIKE в SQLite (тестовый драйвер) не учитывает регистр для ASCII
				q = q.Where(f.Column+" LIKE ?", pattern)
			}
		default:
			q = q.Where(map[string]any{f.Column: f.Value})
		}
	}
	return q
}
