package pricing

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"flowershop-backend/internal/models"
	"flowershop-backend/internal/webutil"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPriceApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	app := fiber.New(fiber.Config{ErrorHandler: webutil.ErrorHandler})
	api := app.Group("/api")
	api.Get("/pricelist", ListPricesHandler(db))
	api.Post("/pricelist", CreatePriceHandler(db))
	api.Get("/products/:id/prices", ProductPriceHistoryHandler(db))
	api.Get("/products/:id/price", ProductCurrentPriceHandler(db))
	return app, db
}

func postJSON(t *testing.T, app *fiber.App, path string, body fiber.Map) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestCreatePriceRequiresPrice(t *testing.T) {
	app, db := newPriceApp(t)
	seedProduct(t, db, "FL-001")

	// Пропущенная цена не становится молча нулем
	resp := postJSON(t, app, "/api/pricelist", fiber.Map{
		"article":        "FL-001",
		"effective_date": "2024-06-01",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.PriceList{}).Count(&count).Error)
	assert.Zero(t, count)

	// Явный ноль при этом допустим
	resp = postJSON(t, app, "/api/pricelist", fiber.Map{
		"article":        "FL-001",
		"effective_date": "2024-06-01",
		"price":          "0",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	defer resp.Body.Close()
	var entry models.PriceList
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entry))
	assert.True(t, entry.Price.IsZero())

	// Отрицательная цена отклоняется
	resp = postJSON(t, app, "/api/pricelist", fiber.Map{
		"article":        "FL-001",
		"effective_date": "2024-06-01",
		"price":          "-5",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreatePriceChecksArticle(t *testing.T) {
	app, _ := newPriceApp(t)

	resp := postJSON(t, app, "/api/pricelist", fiber.Map{
		"article":        "NO-SUCH",
		"effective_date": "2024-06-01",
		"price":          "100",
	})
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestCreatePriceThenQuote(t *testing.T) {
	app, db := newPriceApp(t)
	seedProduct(t, db, "FL-001")

	resp := postJSON(t, app, "/api/pricelist", fiber.Map{
		"article":          "FL-001",
		"effective_date":   "2024-06-01",
		"price":            "90",
		"discount_type":    "процент",
		"discount_percent": "10",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	req := httptest.NewRequest("GET", "/api/products/FL-001/price?as_of=2024-07-01", nil)
	qresp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, qresp.StatusCode)
	defer qresp.Body.Close()
	var quote Quote
	require.NoError(t, json.NewDecoder(qresp.Body).Decode(&quote))
	assert.True(t, quote.EffectivePrice.Equal(decimal.NewFromInt(81)), "effective = %s", quote.EffectivePrice)
}
