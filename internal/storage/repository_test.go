package storage

import (
	"fmt"
	"strings"
	"testing"

	"flowershop-backend/internal/database"
	"flowershop-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.OpenDialector(sqlite.Open(dsn))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func seedSupplier(t *testing.T, repo *Repository[models.Supplier], name, country string) models.Supplier {
	t.Helper()
	s := models.Supplier{
		CompanyName: name,
		Contacts:    "test@flowers.ru",
		Country:     country,
	}
	require.NoError(t, repo.Create(&s))
	return s
}

func TestRepositoryCreateAndFindOne(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[models.Supplier](db)

	created := seedSupplier(t, repo, "розовый сад", "Россия")
	require.NotZero(t, created.SupplierCode)

	found, err := repo.FindOne(map[string]any{"supplier_code": created.SupplierCode})
	require.NoError(t, err)
	assert.Equal(t, "розовый сад", found.CompanyName)
	assert.Equal(t, "Россия", found.Country)
}

func TestRepositoryFindOneMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[models.Supplier](db)

	_, err := repo.FindOne(map[string]any{"supplier_code": 404})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepositoryPartialUpdate(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[models.Supplier](db)
	s := seedSupplier(t, repo, "розовый сад", "Россия")

	updated, err := repo.Update(
		map[string]any{"supplier_code": s.SupplierCode},
		map[string]any{"country": "Нидерланды"},
	)
	require.NoError(t, err)
	assert.Equal(t, "Нидерланды", updated.Country)
	// Незатронутые поля сохраняют прежние значения
	assert.Equal(t, "розовый сад", updated.CompanyName)
}

func TestRepositoryEmptyUpdateLeavesRecordUnchanged(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[models.Supplier](db)
	s := seedSupplier(t, repo, "розовый сад", "Россия")

	updated, err := repo.Update(map[string]any{"supplier_code": s.SupplierCode}, map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, s.CompanyName, updated.CompanyName)
	assert.Equal(t, s.Country, updated.Country)
}

func TestRepositoryUpdateMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[models.Supplier](db)

	_, err := repo.Update(map[string]any{"supplier_code": 404}, map[string]any{"country": "Кения"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepositoryUpdateAmbiguousKey(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[models.Supplier](db)
	seedSupplier(t, repo, "розовый сад", "Россия")
	seedSupplier(t, repo, "тюльпаны и ко", "Россия")

	_, err := repo.Update(map[string]any{"country": "Россия"}, map[string]any{"country": "Кения"})
	assert.ErrorIs(t, err, ErrAmbiguousKey)
}

func TestRepositoryDeleteThenFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[models.Supplier](db)
	s := seedSupplier(t, repo, "розовый сад", "Россия")

	require.NoError(t, repo.Delete(map[string]any{"supplier_code": s.SupplierCode}))

	_, err := repo.FindOne(map[string]any{"supplier_code": s.SupplierCode})
	assert.ErrorIs(t, err, ErrNotFound)

	err = repo.Delete(map[string]any{"supplier_code": s.SupplierCode})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepositoryDeleteAll(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[models.Supplier](db)
	seedSupplier(t, repo, "розовый сад", "Россия")
	seedSupplier(t, repo, "тюльпаны и ко", "Нидерланды")
	seedSupplier(t, repo, "орхидеи востока", "Таиланд")

	n, err := repo.DeleteAll(Eq("country", "Россия"))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = repo.DeleteAll()
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	count, err := repo.Count(map[string]any{})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRepositoryContainsFilter(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[models.Supplier](db)
	seedSupplier(t, repo, "розовый сад", "Россия")
	seedSupplier(t, repo, "тюльпаны и ко", "Нидерланды")
	seedSupplier(t, repo, "FlowerPower Ltd", "Кения")

	recs, err := repo.FindAll(ListOptions{
		Filters: []Predicate{Contains("company_name", "роз")},
	})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "розовый сад", recs[0].CompanyName)

	// Для ASCII поиск не зависит от регистра
	recs, err = repo.FindAll(ListOptions{
		Filters: []Predicate{Contains("company_name", "flowerpower")},
	})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "FlowerPower Ltd", recs[0].CompanyName)

	recs, err = repo.FindAll(ListOptions{
		Filters: []Predicate{Contains("company_name", "гладиолус")},
	})
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestRepositoryFindAllOrderAndLimit(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[models.Supplier](db)
	seedSupplier(t, repo, "в-поставщик", "Россия")
	seedSupplier(t, repo, "а-поставщик", "Россия")
	seedSupplier(t, repo, "б-поставщик", "Россия")

	recs, err := repo.FindAll(ListOptions{Order: "company_name ASC", Limit: 2})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "а-поставщик", recs[0].CompanyName)
	assert.Equal(t, "б-поставщик", recs[1].CompanyName)
}
