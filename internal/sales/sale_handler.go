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

type SaleItemInput struct {
	Article  string `json:"article" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
	// PriceAtSale можно задать явно; иначе берется актуальная цена на момент продажи
	PriceAtSale *decimal.Decimal `json:"price_at_sale"`
}

type CreateSaleRequest struct {
	SaleDatetime string `json:"sale_datetime" validate:"required"`
	EmployeeID   int    `json:"employee_id" validate:"required"`
	CustomerCode int    `json:"customer_code" validate:"required"`
	// Сумма чека обязательна, явный "0" допустим
	TotalAmount *decimal.Decimal  `json:"total_amount" validate:"required"`
	Status      models.SaleStatus `json:"status"`
	Items       []SaleItemInput   `json:"items" validate:"dive"`
}

type UpdateSaleRequest struct {
	SaleDatetime *string            `json:"sale_datetime"`
	EmployeeID   *int               `json:"employee_id"`
	CustomerCode *int               `json:"customer_code"`
	TotalAmount  *decimal.Decimal   `json:"total_amount"`
	Status       *models.SaleStatus `json:"status"`
}

// GET /api/sales
func ListSalesHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := db.Model(&models.Sale{}).
			Preload("Employee").
			Preload("Customer").
			Preload("SaleItems.Product")
		if c.Query("order") == "article" {
			q = q.Preload("SaleItems", func(tx *gorm.DB) *gorm.DB {
				return tx.Order("article ASC")
			})
		} else {
			q = q.Preload("SaleItems")
		}
		if status := c.Query("status"); status != "" {
			q = q.Where("status = ?", status)
		}
		var sales []models.Sale
		if err := q.Order("receipt_number ASC").Find(&sales).Error; err != nil {
			return storage.Translate(err)
		}
		return c.JSON(sales)
	}
}

// GET /api/sales/:id
func GetSaleHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := webutil.ParseIntParam(c, "id")
		if err != nil {
			return err
		}
		q := db.Preload("Employee").
			Preload("Customer").
			Preload("SaleItems.Product")
		if c.Query("order") == "article" {
			q = q.Preload("SaleItems", func(tx *gorm.DB) *gorm.DB {
				return tx.Order("article ASC")
			})
		} else {
			q = q.Preload("SaleItems")
		}
		var sale models.Sale
		if err := q.First(&sale, "receipt_number = ?", id).Error; err != nil {
			return storage.Translate(err)
		}
		return c.JSON(sale)
	}
}

// POST /api/sales
// Продажа и ее позиции пишутся одной транзакцией: чек без позиций или позиции
// без чека после частичного сбоя невозможны.
func CreateSaleHandler(db *gorm.DB) fiber.Handler {
	employees := storage.NewRepository[models.Employee](db)
	customers := storage.NewRepository[models.Customer](db)
	products := storage.NewRepository[models.Product](db)
	resolver := pricing.NewResolver(db)
	return func(c *fiber.Ctx) error {
		var body CreateSaleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "неверное тело запроса")
		}
		if err := webutil.Validate(body); err != nil {
			return err
		}
		saleDatetime, err := webutil.ParseDate(body.SaleDatetime)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		status := body.Status
		if status == "" {
			status = models.SaleDrafted
		}
		if !status.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "статус продажи: оформлен, оплачен или отменен")
		}

		if ok, err := employees.Exists(map[string]any{"employee_id": body.EmployeeID}); err != nil {
			return err
		} else if !ok {
			return fmt.Errorf("%w: сотрудник %d не найден", storage.ErrConstraint, body.EmployeeID)
		}
		if ok, err := customers.Exists(map[string]any{"customer_code": body.CustomerCode}); err != nil {
			return err
		} else if !ok {
			return fmt.Errorf("%w: покупатель %d не найден", storage.ErrConstraint, body.CustomerCode)
		}

		if body.TotalAmount.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "total_amount не может быть отрицательной")
		}

		sale := models.Sale{
			SaleDatetime: saleDatetime,
			EmployeeID:   body.EmployeeID,
			CustomerCode: body.CustomerCode,
			TotalAmount:  *body.TotalAmount,
			Status:       status,
		}

		// Снимки цен считаем до транзакции, сами записи - внутри нее
		items := make([]models.SaleItem, 0, len(body.Items))
		for _, in := range body.Items {
			if ok, err := products.Exists(map[string]any{"article": in.Article}); err != nil {
				return err
			} else if !ok {
				return fmt.Errorf("%w: товар с артикулом %q не найден", storage.ErrConstraint, in.Article)
			}
			priceAtSale, err := resolveItemPrice(resolver, in, saleDatetime)
			if err != nil {
				return err
			}
			items = append(items, models.SaleItem{
				Article:     in.Article,
				Quantity:    in.Quantity,
				PriceAtSale: priceAtSale,
			})
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&sale).Error; err != nil {
				return err
			}
			for i := range items {
				items[i].ReceiptNumber = sale.ReceiptNumber
				if err := tx.Create(&items[i]).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return storage.Translate(err)
		}

		sale.SaleItems = items
		return c.Status(fiber.StatusCreated).JSON(sale)
	}
}

// resolveItemPrice возвращает явный снимок цены из запроса либо актуальную
// цену на момент продажи. Товар без цены недоступен к продаже.
func resolveItemPrice(resolver *pricing.Resolver, in SaleItemInput, at time.Time) (decimal.Decimal, error) {
	if in.PriceAtSale != nil {
		if in.PriceAtSale.IsNegative() {
			return decimal.Zero, fiber.NewError(fiber.StatusBadRequest, "price_at_sale не может быть отрицательной")
		}
		return *in.PriceAtSale, nil
	}
	quote, err := resolver.CurrentPrice(in.Article, at)
	if err != nil {
		if errors.Is(err, pricing.ErrNoPrice) {
			return decimal.Zero, fmt.Errorf("%w: на товар %q нет цены, продажа невозможна", storage.ErrConstraint, in.Article)
		}
		return decimal.Zero, err
	}
	return quote.EffectivePrice, nil
}

// PUT /api/sales/:id
func UpdateSaleHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.Sale](db)
	employees := storage.NewRepository[models.Employee](db)
	customers := storage.NewRepository[models.Customer](db)
	return func(c *fiber.Ctx) error {
		id, err := webutil.ParseIntParam(c, "id")
		if err != nil {
			return err
		}
		var body UpdateSaleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "неверное тело запроса")
		}

		fields := map[string]any{}
		if body.SaleDatetime != nil {
			saleDatetime, err := webutil.ParseDate(*body.SaleDatetime)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			fields["sale_datetime"] = saleDatetime
		}
		if body.EmployeeID != nil {
			if ok, err := employees.Exists(map[string]any{"employee_id": *body.EmployeeID}); err != nil {
				return err
			} else if !ok {
				return fmt.Errorf("%w: сотрудник %d не найден", storage.ErrConstraint, *body.EmployeeID)
			}
			fields["employee_id"] = *body.EmployeeID
		}
		if body.CustomerCode != nil {
			if ok, err := customers.Exists(map[string]any{"customer_code": *body.CustomerCode}); err != nil {
				return err
			} else if !ok {
				return fmt.Errorf("%w: покупатель %d не найден", storage.ErrConstraint, *body.CustomerCode)
			}
			fields["customer_code"] = *body.CustomerCode
		}
		if body.TotalAmount != nil {
			if body.TotalAmount.IsNegative() {
				return fiber.NewError(fiber.StatusBadRequest, "total_amount не может быть отрицательной")
			}
			fields["total_amount"] = *body.TotalAmount
		}
		if body.Status != nil {
			if !body.Status.Valid() {
				return fiber.NewError(fiber.StatusBadRequest, "статус продажи: оформлен, оплачен или отменен")
			}
			fields["status"] = *body.Status
		}

		sale, err := repo.Update(map[string]any{"receipt_number": id}, fields)
		if err != nil {
			return err
		}
		return c.JSON(sale)
	}
}

// DELETE /api/sales/:id - чек и его позиции удаляются одной транзакцией
func DeleteSaleHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.Sale](db)
	return func(c *fiber.Ctx) error {
		id, err := webutil.ParseIntParam(c, "id")
		if err != nil {
			return err
		}
		if ok, err := repo.Exists(map[string]any{"receipt_number": id}); err != nil {
			return err
		} else if !ok {
			return storage.ErrNotFound
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("receipt_number = ?", id).Delete(&models.SaleItem{}).Error; err != nil {
				return err
			}
			return tx.Where("receipt_number = ?", id).Delete(&models.Sale{}).Error
		})
		if err != nil {
			return storage.Translate(err)
		}
		return c.JSON(fiber.Map{"message": "продажа удалена"})
	}
}

// DELETE /api/sales
func DeleteAllSalesHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var n int64
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("1 = 1").Delete(&models.SaleItem{}).Error; err != nil {
				return err
			}
			res := tx.Where("1 = 1").Delete(&models.Sale{})
			n = res.RowsAffected
			return res.Error
		})
		if err != nil {
			return storage.Translate(err)
		}
		return c.JSON(fiber.Map{"deleted": n})
	}
}
