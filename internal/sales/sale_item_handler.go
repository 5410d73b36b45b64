package sales

import (
	"errors"
	"fmt"
	"time"

	"flowershop-backend/internal/models"
	"flowershop-backend/internal/pricing"
	"flowershop-backend/internal/storage"
	"flowershop-backend/internal/webutil"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateSaleItemRequest struct {
	ReceiptNumber int              `json:"receipt_number" validate:"required"`
	Article       string           `json:"article" validate:"required"`
	Quantity      int              `json:"quantity" validate:"required,gt=0"`
	PriceAtSale   *decimal.Decimal `json:"price_at_sale"`
}

type UpdateSaleItemRequest struct {
	// Менять можно только количество: price_at_sale - неизменяемый снимок
	Quantity *int `json:"quantity"`
}

// saleItemKey адресует одну строку составного ключа: :id - номер чека,
// ?article= - артикул. Без артикула условие обязано совпасть ровно с одной строкой.
func saleItemKey(c *fiber.Ctx) (map[string]any, error) {
	id, err := webutil.ParseIntParam(c, "id")
	if err != nil {
		return nil, err
	}
	cond := map[string]any{"receipt_number": id}
	if article := c.Query("article"); article != "" {
		cond["article"] = article
	}
	return cond, nil
}

// GET /api/sale-items
func ListSaleItemsHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.SaleItem](db)
	return func(c *fiber.Ctx) error {
		opts := storage.ListOptions{
			Preloads: []string{"Sale", "Product"},
			Order:    "receipt_number ASC, article ASC",
		}
		if article := c.Query("article"); article != "" {
			opts.Filters = append(opts.Filters, storage.Eq("article", article))
		}
		items, err := repo.FindAll(opts)
		if err != nil {
			return err
		}
		return c.JSON(items)
	}
}

// POST /api/sale-items
func CreateSaleItemHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.SaleItem](db)
	salesRepo := storage.NewRepository[models.Sale](db)
	products := storage.NewRepository[models.Product](db)
	resolver := pricing.NewResolver(db)
	return func(c *fiber.Ctx) error {
		var body CreateSaleItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "неверное тело запроса")
		}
		if err := webutil.Validate(body); err != nil {
			return err
		}

		sale, err := salesRepo.FindOne(map[string]any{"receipt_number": body.ReceiptNumber})
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("%w: чек %d не найден", storage.ErrConstraint, body.ReceiptNumber)
			}
			return err
		}
		if ok, err := products.Exists(map[string]any{"article": body.Article}); err != nil {
			return err
		} else if !ok {
			return fmt.Errorf("%w: товар с артикулом %q не найден", storage.ErrConstraint, body.Article)
		}
		if exists, err := repo.Exists(map[string]any{
			"receipt_number": body.ReceiptNumber,
			"article":        body.Article,
		}); err != nil {
			return err
		} else if exists {
			return fmt.Errorf("%w: позиция (%d, %q) уже есть в чеке", storage.ErrConstraint, body.ReceiptNumber, body.Article)
		}

		at := sale.SaleDatetime
		if at.IsZero() {
			at = time.Now()
		}
		priceAtSale, err := resolveItemPrice(resolver, SaleItemInput{
			Article:     body.Article,
			Quantity:    body.Quantity,
			PriceAtSale: body.PriceAtSale,
		}, at)
		if err != nil {
			return err
		}

		item := models.SaleItem{
			ReceiptNumber: body.ReceiptNumber,
			Article:       body.Article,
			Quantity:      body.Quantity,
			PriceAtSale:   priceAtSale,
		}
		if err := repo.Create(&item); err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(item)
	}
}

// PUT /api/sale-items/:id?article=...
func UpdateSaleItemHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.SaleItem](db)
	return func(c *fiber.Ctx) error {
		cond, err := saleItemKey(c)
		if err != nil {
			return err
		}
		var body UpdateSaleItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "неверное тело запроса")
		}

		fields := map[string]any{}
		if body.Quantity != nil {
			if *body.Quantity <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "количество должно быть больше нуля")
			}
			fields["quantity"] = *body.Quantity
		}

		item, err := repo.Update(cond, fields)
		if err != nil {
			return err
		}
		return c.JSON(item)
	}
}

// DELETE /api/sale-items/:id?article=...
func DeleteSaleItemHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.SaleItem](db)
	return func(c *fiber.Ctx) error {
		cond, err := saleItemKey(c)
		if err != nil {
			return err
		}
		if err := repo.Delete(cond); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "позиция чека удалена"})
	}
}

// DELETE /api/sale-items
func DeleteAllSaleItemsHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.SaleItem](db)
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
