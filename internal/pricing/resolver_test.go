package pricing

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"flowershop-backend/internal/database"
	"flowershop-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
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

// seedProduct создает товар вместе с категорией и поставщиком.
func seedProduct(t *testing.T, db *gorm.DB, article string) {
	t.Helper()
	category := models.Category{CategoryName: "срезанные цветы", HierarchyLevel: 1}
	require.NoError(t, db.Create(&category).Error)
	supplier := models.Supplier{CompanyName: "розовый сад", Contacts: "sad@flowers.ru", Country: "Россия"}
	require.NoError(t, db.Create(&supplier).Error)
	product := models.Product{
		Article:       article,
		ProductName:   "роза кения красная",
		CategoryCode:  category.CategoryCode,
		UnitOfMeasure: "шт",
		SupplierCode:  supplier.SupplierCode,
	}
	require.NoError(t, db.Create(&product).Error)
}

func seedPrice(t *testing.T, db *gorm.DB, article string, date time.Time, price int64, discount int64) models.PriceList {
	t.Helper()
	entry := models.PriceList{
		Article:         article,
		EffectiveDate:   date,
		Price:           decimal.NewFromInt(price),
		DiscountPercent: decimal.NewFromInt(discount),
	}
	if discount > 0 {
		entry.DiscountType = models.DiscountPercent
	}
	require.NoError(t, db.Create(&entry).Error)
	return entry
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCurrentPricePicksLatestEffectiveEntry(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "FL-001")
	seedPrice(t, db, "FL-001", date("2024-01-01"), 100, 0)
	seedPrice(t, db, "FL-001", date("2024-06-01"), 90, 10)

	resolver := NewResolver(db)

	// После 2024-06-01 действует запись со скидкой: 90 * 0.9 = 81
	quote, err := resolver.CurrentPrice("FL-001", date("2024-07-01"))
	require.NoError(t, err)
	assert.True(t, quote.BasePrice.Equal(decimal.NewFromInt(90)), "base = %s", quote.BasePrice)
	assert.True(t, quote.EffectivePrice.Equal(decimal.NewFromInt(81)), "effective = %s", quote.EffectivePrice)
	assert.Equal(t, models.DiscountPercent, quote.DiscountType)

	// До 2024-06-01 действует январская цена без скидки
	quote, err = resolver.CurrentPrice("FL-001", date("2024-03-01"))
	require.NoError(t, err)
	assert.True(t, quote.EffectivePrice.Equal(decimal.NewFromInt(100)), "effective = %s", quote.EffectivePrice)
}

func TestCurrentPriceBeforeAnyEntry(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "FL-001")
	seedPrice(t, db, "FL-001", date("2024-01-01"), 100, 0)

	resolver := NewResolver(db)
	_, err := resolver.CurrentPrice("FL-001", date("2023-12-31"))
	assert.ErrorIs(t, err, ErrNoPrice)
}

func TestCurrentPriceUnknownArticle(t *testing.T) {
	db := newTestDB(t)
	resolver := NewResolver(db)

	_, err := resolver.CurrentPrice("NO-SUCH", date("2024-07-01"))
	assert.ErrorIs(t, err, ErrNoPrice)
}

func TestCurrentPriceSameDateTieBreak(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "FL-002")
	seedPrice(t, db, "FL-002", date("2024-06-01"), 50, 0)
	later := seedPrice(t, db, "FL-002", date("2024-06-01"), 60, 0)

	// При равных датах побеждает запись с большим price_id
	resolver := NewResolver(db)
	quote, err := resolver.CurrentPrice("FL-002", date("2024-06-15"))
	require.NoError(t, err)
	assert.True(t, quote.EffectivePrice.Equal(later.Price), "effective = %s", quote.EffectivePrice)
}

func TestCurrentPriceIsStableBetweenCalls(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "FL-001")
	seedPrice(t, db, "FL-001", date("2024-06-01"), 90, 10)

	resolver := NewResolver(db)
	first, err := resolver.CurrentPrice("FL-001", date("2024-07-01"))
	require.NoError(t, err)
	second, err := resolver.CurrentPrice("FL-001", date("2024-07-01"))
	require.NoError(t, err)
	assert.True(t, first.EffectivePrice.Equal(second.EffectivePrice))
	assert.Equal(t, first.EffectiveDate, second.EffectiveDate)
}

func TestCurrentPriceRoundsToTwoDecimals(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "FL-003")
	entry := models.PriceList{
		Article:         "FL-003",
		EffectiveDate:   date("2024-06-01"),
		Price:           decimal.RequireFromString("99.99"),
		DiscountType:    models.DiscountPercent,
		DiscountPercent: decimal.NewFromInt(15),
	}
	require.NoError(t, db.Create(&entry).Error)

	// 99.99 * 0.85 = 84.9915 -> 84.99
	resolver := NewResolver(db)
	quote, err := resolver.CurrentPrice("FL-003", date("2024-07-01"))
	require.NoError(t, err)
	assert.True(t, quote.EffectivePrice.Equal(decimal.RequireFromString("84.99")), "effective = %s", quote.EffectivePrice)
}
