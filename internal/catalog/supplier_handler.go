package catalog

import (
	"flowershop-backend/internal/models"
	"flowershop-backend/internal/storage"
	"flowershop-backend/internal/webutil"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateSupplierRequest struct {
	CompanyName       string `json:"company_name" validate:"required,max=150"`
	Contacts          string `json:"contacts" validate:"required"`
	Country           string `json:"country" validate:"required,max=50"`
	ReliabilityRating int    `json:"reliability_rating"`
	Specialization    string `json:"specialization"`
}

type UpdateSupplierRequest struct {
	CompanyName       *string `json:"company_name"`
	Contacts          *string `json:"contacts"`
	Country           *string `json:"country"`
	ReliabilityRating *int    `json:"reliability_rating"`
	Specialization    *string `json:"specialization"`
}

// GET /api/suppliers?name=...
func ListSuppliersHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.Supplier](db)
	return func(c *fiber.Ctx) error {
		opts := storage.ListOptions{Order: "supplier_code ASC"}
		if name := c.Query("name"); name != "" {
			opts.Filters = append(opts.Filters, storage.Contains("company_name", name))
		}
		suppliers, err := repo.FindAll(opts)
		if err != nil {
			return err
		}
		return c.JSON(suppliers)
	}
}

// GET /api/suppliers/:id
func GetSupplierHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.Supplier](db)
	return func(c *fiber.Ctx) error {
		id, err := webutil.ParseIntParam(c, "id")
		if err != nil {
			return err
		}
		supplier, err := repo.FindOne(map[string]any{"supplier_code": id})
		if err != nil {
			return err
		}
		return c.JSON(supplier)
	}
}

// POST /api/suppliers
func CreateSupplierHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.Supplier](db)
	return func(c *fiber.Ctx) error {
		var body CreateSupplierRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "неверное тело запроса")
		}
		if err := webutil.Validate(body); err != nil {
			return err
		}

		supplier := models.Supplier{
			CompanyName:       body.CompanyName,
			Contacts:          body.Contacts,
			Country:           body.Country,
			ReliabilityRating: body.ReliabilityRating,
			Specialization:    body.Specialization,
		}
		if err := repo.Create(&supplier); err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(supplier)
	}
}

// PUT /api/suppliers/:id
func UpdateSupplierHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.Supplier](db)
	return func(c *fiber.Ctx) error {
		id, err := webutil.ParseIntParam(c, "id")
		if err != nil {
			return err
		}
		var body UpdateSupplierRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "неверное тело запроса")
		}

		fields := map[string]any{}
		if body.CompanyName != nil {
			if *body.CompanyName == "" {
				return fiber.NewError(fiber.StatusBadRequest, "название компании не может быть пустым")
			}
			fields["company_name"] = *body.CompanyName
		}
		if body.Contacts != nil {
			fields["contacts"] = *body.Contacts
		}
		if body.Country != nil {
			fields["country"] = *body.Country
		}
		if body.ReliabilityRating != nil {
			fields["reliability_rating"] = *body.ReliabilityRating
		}
		if body.Specialization != nil {
			fields["specialization"] = *body.Specialization
		}

		supplier, err := repo.Update(map[string]any{"supplier_code": id}, fields)
		if err != nil {
			return err
		}
		return c.JSON(supplier)
	}
}

// DELETE /api/suppliers/:id
func DeleteSupplierHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.Supplier](db)
	return func(c *fiber.Ctx) error {
		id, err := webutil.ParseIntParam(c, "id")
		if err != nil {
			return err
		}
		if err := repo.Delete(map[string]any{"supplier_code": id}); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "поставщик удален"})
	}
}

// DELETE /api/suppliers
func DeleteAllSuppliersHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.Supplier](db)
	return func(c *fiber.Ctx) error {
		n, err := repo.DeleteAll()
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"deleted": n})
	}
}
