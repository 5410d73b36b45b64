package pricing

import (
	"errors"
	"fmt"
	"time"

	"flowershop-backend/internal/models"
	"flowershop-backend/internal/storage"
	"flowershop-backend/internal/webutil"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreatePriceRequest struct {
	Article       string `json:"article" validate:"required"`
	EffectiveDate string `json:"effective_date" validate:"required"`
	// Цена обязательна: пропущенное поле не превращается в 0.00,
	// явный "0" при этом допустим
	Price           *decimal.Decimal    `json:"price" validate:"required"`
	DiscountType    models.DiscountType `json:"discount_type"`
	DiscountPercent decimal.Decimal     `json:"discount_percent"`
}

type UpdatePriceRequest struct {
	EffectiveDate   *string              `json:"effective_date"`
	Price           *decimal.Decimal     `json:"price"`
	DiscountType    *models.DiscountType `json:"discount_type"`
	DiscountPercent *decimal.Decimal     `json:"discount_percent"`
}

func checkPriceFields(price *decimal.Decimal, discount *decimal.Decimal, dtype *models.DiscountType) error {
	if price != nil && price.IsNegative() {
		return fiber.NewError(fiber.StatusBadRequest, "цена не может быть отрицательной")
	}
	if discount != nil && (discount.IsNegative() || discount.GreaterThan(hundred)) {
		return fiber.NewError(fiber.StatusBadRequest, "скидка должна быть в диапазоне от 0 до 100")
	}
	if dtype != nil && *dtype != "" && !dtype.Valid() {
		return fiber.NewError(fiber.StatusBadRequest, "недопустимый тип скидки")
	}
	return nil
}

// GET /api/pricelist
func ListPricesHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.PriceList](db)
	return func(c *fiber.Ctx) error {
		opts := storage.ListOptions{
			Preloads: []string{"Product"},
			Order:    "effective_date DESC",
		}
		if article := c.Query("article"); article != "" {
			opts.Filters = append(opts.Filters, storage.Eq("article", article))
		}
		prices, err := repo.FindAll(opts)
		if err != nil {
			return err
		}
		return c.JSON(prices)
	}
}

// GET /api/pricelist/:id
func GetPriceHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.PriceList](db)
	return func(c *fiber.Ctx) error {
		id, err := webutil.ParseIntParam(c, "id")
		if err != nil {
			return err
		}
		price, err := repo.FindOne(map[string]any{"price_id": id}, "Product")
		if err != nil {
			return err
		}
		return c.JSON(price)
	}
}

// POST /api/pricelist
func CreatePriceHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.PriceList](db)
	products := storage.NewRepository[models.Product](db)
	return func(c *fiber.Ctx) error {
		var body CreatePriceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "неверное тело запроса")
		}
		if err := webutil.Validate(body); err != nil {
			return err
		}
		if err := checkPriceFields(body.Price, &body.DiscountPercent, &body.DiscountType); err != nil {
			return err
		}
		effectiveDate, err := webutil.ParseDate(body.EffectiveDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		ok, err := products.Exists(map[string]any{"article": body.Article})
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: товар с артикулом %q не найден", storage.ErrConstraint, body.Article)
		}

		entry := models.PriceList{
			Article:         body.Article,
			EffectiveDate:   effectiveDate,
			Price:           *body.Price,
			DiscountType:    body.DiscountType,
			DiscountPercent: body.DiscountPercent,
		}
		if err := repo.Create(&entry); err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(entry)
	}
}

// PUT /api/pricelist/:id
func UpdatePriceHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.PriceList](db)
	return func(c *fiber.Ctx) error {
		id, err := webutil.ParseIntParam(c, "id")
		if err != nil {
			return err
		}
		var body UpdatePriceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "неверное тело запроса")
		}
		if err := checkPriceFields(body.Price, body.DiscountPercent, body.DiscountType); err != nil {
			return err
		}

		fields := map[string]any{}
		if body.EffectiveDate != nil {
			effectiveDate, err := webutil.ParseDate(*body.EffectiveDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			fields["effective_date"] = effectiveDate
		}
		if body.Price != nil {
			fields["price"] = *body.Price
		}
		if body.DiscountType != nil {
			fields["discount_type"] = *body.DiscountType
		}
		if body.DiscountPercent != nil {
			fields["discount_percent"] = *body.DiscountPercent
		}

		entry, err := repo.Update(map[string]any{"price_id": id}, fields)
		if err != nil {
			return err
		}
		return c.JSON(entry)
	}
}

// DELETE /api/pricelist/:id
func DeletePriceHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.PriceList](db)
	return func(c *fiber.Ctx) error {
		id, err := webutil.ParseIntParam(c, "id")
		if err != nil {
			return err
		}
		if err := repo.Delete(map[string]any{"price_id": id}); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "запись прайс-листа удалена"})
	}
}

// DELETE /api/pricelist
func DeleteAllPricesHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.PriceList](db)
	return func(c *fiber.Ctx) error {
		var filters []storage.Predicate
		if article := c.Query("article"); article != "" {
			filters = append(filters, storage.Eq("article", article))
		}
		n, err := repo.DeleteAll(filters...)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"deleted": n})
	}
}

// GET /api/products/:id/prices - история цен, новые сверху, не больше 5 записей
func ProductPriceHistoryHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.PriceList](db)
	return func(c *fiber.Ctx) error {
		article, err := webutil.UnescapedParam(c, "id")
		if err != nil {
			return err
		}
		prices, err := repo.FindAll(storage.ListOptions{
			Filters: []storage.Predicate{storage.Eq("article", article)},
			Order:   "effective_date DESC",
			Limit:   5,
		})
		if err != nil {
			return err
		}
		return c.JSON(prices)
	}
}

// GET /api/products/:id/price - актуальная цена с учетом скидки
func ProductCurrentPriceHandler(db *gorm.DB) fiber.Handler {
	resolver := NewResolver(db)
	return func(c *fiber.Ctx) error {
		asOf := time.Now()
		if s := c.Query("as_of"); s != "" {
			t, err := webutil.ParseDate(s)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			asOf = t
		}
		article, err := webutil.UnescapedParam(c, "id")
		if err != nil {
			return err
		}
		quote, err := resolver.CurrentPrice(article, asOf)
		if err != nil {
			if errors.Is(err, ErrNoPrice) {
				return fiber.NewError(fiber.StatusNotFound, "цена на товар не установлена")
			}
			return err
		}
		return c.JSON(quote)
	}
}
