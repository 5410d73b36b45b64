package sales

import (
	"flowershop-backend/internal/models"
	"flowershop-backend/internal/storage"
	"flowershop-backend/internal/webutil"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateCustomerRequest struct {
	FullName                   string              `json:"full_name" validate:"required,max=100"`
	Contacts                   string              `json:"contacts" validate:"required"`
	CustomerType               models.CustomerType `json:"customer_type" validate:"required"`
	AccumulatedDiscountPercent decimal.Decimal     `json:"accumulated_discount_percent"`
}

type UpdateCustomerRequest struct {
	FullName                   *string              `json:"full_name"`
	Contacts                   *string              `json:"contacts"`
	CustomerType               *models.CustomerType `json:"customer_type"`
	AccumulatedDiscountPercent *decimal.Decimal     `json:"accumulated_discount_percent"`
}

var hundred = decimal.NewFromInt(100)

func checkDiscountRange(d decimal.Decimal) error {
	if d.IsNegative() || d.GreaterThan(hundred) {
		return fiber.NewError(fiber.StatusBadRequest, "скидка должна быть в диапазоне от 0 до 100")
	}
	return nil
}

// GET /api/customers?name=...
func ListCustomersHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.Customer](db)
	return func(c *fiber.Ctx) error {
		opts := storage.ListOptions{Order: "customer_code ASC"}
		if name := c.Query("name"); name != "" {
			opts.Filters = append(opts.Filters, storage.Contains("full_name", name))
		}
		customers, err := repo.FindAll(opts)
		if err != nil {
			return err
		}
		return c.JSON(customers)
	}
}

// GET /api/customers/:id
func GetCustomerHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.Customer](db)
	return func(c *fiber.Ctx) error {
		id, err := webutil.ParseIntParam(c, "id")
		if err != nil {
			return err
		}
		customer, err := repo.FindOne(map[string]any{"customer_code": id})
		if err != nil {
			return err
		}
		return c.JSON(customer)
	}
}

// POST /api/customers
func CreateCustomerHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.Customer](db)
	return func(c *fiber.Ctx) error {
		var body CreateCustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "неверное тело запроса")
		}
		if err := webutil.Validate(body); err != nil {
			return err
		}
		if !body.CustomerType.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "тип покупателя: физическое или юридическое")
		}
		if err := checkDiscountRange(body.AccumulatedDiscountPercent); err != nil {
			return err
		}

		customer := models.Customer{
			FullName:                   body.FullName,
			Contacts:                   body.Contacts,
			CustomerType:               body.CustomerType,
			AccumulatedDiscountPercent: body.AccumulatedDiscountPercent,
		}
		if err := repo.Create(&customer); err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(customer)
	}
}

// PUT /api/customers/:id
func UpdateCustomerHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.Customer](db)
	return func(c *fiber.Ctx) error {
		id, err := webutil.ParseIntParam(c, "id")
		if err != nil {
			return err
		}
		var body UpdateCustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "неверное тело запроса")
		}

		fields := map[string]any{}
		if body.FullName != nil {
			if *body.FullName == "" {
				return fiber.NewError(fiber.StatusBadRequest, "имя покупателя не может быть пустым")
			}
			fields["full_name"] = *body.FullName
		}
		if body.Contacts != nil {
			fields["contacts"] = *body.Contacts
		}
		if body.CustomerType != nil {
			if !body.CustomerType.Valid() {
				return fiber.NewError(fiber.StatusBadRequest, "тип покупателя: физическое или юридическое")
			}
			fields["customer_type"] = *body.CustomerType
		}
		if body.AccumulatedDiscountPercent != nil {
			if err := checkDiscountRange(*body.AccumulatedDiscountPercent); err != nil {
				return err
			}
			fields["accumulated_discount_percent"] = *body.AccumulatedDiscountPercent
		}

		customer, err := repo.Update(map[string]any{"customer_code": id}, fields)
		if err != nil {
			return err
		}
		return c.JSON(customer)
	}
}

// DELETE /api/customers/:id
func DeleteCustomerHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.Customer](db)
	return func(c *fiber.Ctx) error {
		id, err := webutil.ParseIntParam(c, "id")
		if err != nil {
			return err
		}
		if err := repo.Delete(map[string]any{"customer_code": id}); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "покупатель удален"})
	}
}

// DELETE /api/customers
func DeleteAllCustomersHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.Customer](db)
	return func(c *fiber.Ctx) error {
		n, err := repo.DeleteAll()
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"deleted": n})
	}
}
