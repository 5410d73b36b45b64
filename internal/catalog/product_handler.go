package catalog

import (
	"fmt"

	"flowershop-backend/internal/models"
	"flowershop-backend/internal/storage"
	"flowershop-backend/internal/webutil"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateProductRequest struct {
	Article         string `json:"article" validate:"required,max=50"`
	ProductName     string `json:"product_name" validate:"required,max=150"`
	Description     string `json:"description"`
	CategoryCode    int    `json:"category_code" validate:"required"`
	CountryOfOrigin string `json:"country_of_origin"`
	Grade           string `json:"grade"`
	ExpirationDate  int    `json:"expiration_date"`
	UnitOfMeasure   string `json:"unit_of_measure" validate:"required,max=20"`
	SupplierCode    int    `json:"supplier_code" validate:"required"`
}

type UpdateProductRequest struct {
	ProductName     *string `json:"product_name"`
	Description     *string `json:"description"`
	CategoryCode    *int    `json:"category_code"`
	CountryOfOrigin *string `json:"country_of_origin"`
	Grade           *string `json:"grade"`
	ExpirationDate  *int    `json:"expiration_date"`
	UnitOfMeasure   *string `json:"unit_of_measure"`
	SupplierCode    *int    `json:"supplier_code"`
}

// checkProductRefs убеждается, что ссылки на категорию и поставщика живые;
// запись с оборванной ссылкой не попадает в хранилище.
func checkProductRefs(db *gorm.DB, categoryCode, supplierCode *int) error {
	if categoryCode != nil {
		ok, err := storage.NewRepository[models.Category](db).
			Exists(map[string]any{"category_code": *categoryCode})
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: категория %d не найдена", storage.ErrConstraint, *categoryCode)
		}
	}
	if supplierCode != nil {
		ok, err := storage.NewRepository[models.Supplier](db).
			Exists(map[string]any{"supplier_code": *supplierCode})
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: поставщик %d не найден", storage.ErrConstraint, *supplierCode)
		}
	}
	return nil
}

// GET /api/products?name=...
func ListProductsHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.Product](db)
	return func(c *fiber.Ctx) error {
		opts := storage.ListOptions{
			Preloads: []string{"Category", "Supplier"},
			Order:    "article ASC",
		}
		if name := c.Query("name"); name != "" {
			opts.Filters = append(opts.Filters, storage.Contains("product_name", name))
		}
		products, err := repo.FindAll(opts)
		if err != nil {
			return err
		}
		return c.JSON(products)
	}
}

// GET /api/products/search/:query - поиск по названию без учета регистра
func SearchProductsHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.Product](db)
	return func(c *fiber.Ctx) error {
		query, err := webutil.UnescapedParam(c, "query")
		if err != nil {
			return err
		}
		products, err := repo.FindAll(storage.ListOptions{
			Filters:  []storage.Predicate{storage.Contains("product_name", query)},
			Preloads: []string{"Category", "Supplier"},
			Order:    "article ASC",
		})
		if err != nil {
			return err
		}
		return c.JSON(products)
	}
}

// GET /api/products/:id
func GetProductHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.Product](db)
	return func(c *fiber.Ctx) error {
		article, err := webutil.UnescapedParam(c, "id")
		if err != nil {
			return err
		}
		product, err := repo.FindOne(map[string]any{"article": article}, "Category", "Supplier")
		if err != nil {
			return err
		}
		return c.JSON(product)
	}
}

// POST /api/products
func CreateProductHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.Product](db)
	return func(c *fiber.Ctx) error {
		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "неверное тело запроса")
		}
		if err := webutil.Validate(body); err != nil {
			return err
		}
		if err := checkProductRefs(db, &body.CategoryCode, &body.SupplierCode); err != nil {
			return err
		}
		exists, err := repo.Exists(map[string]any{"article": body.Article})
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: товар с артикулом %q уже существует", storage.ErrConstraint, body.Article)
		}

		product := models.Product{
			Article:         body.Article,
			ProductName:     body.ProductName,
			Description:     body.Description,
			CategoryCode:    body.CategoryCode,
			CountryOfOrigin: body.CountryOfOrigin,
			Grade:           body.Grade,
			ExpirationDate:  body.ExpirationDate,
			UnitOfMeasure:   body.UnitOfMeasure,
			SupplierCode:    body.SupplierCode,
		}
		if err := repo.Create(&product); err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(product)
	}
}

// PUT /api/products/:id
func UpdateProductHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.Product](db)
	return func(c *fiber.Ctx) error {
		article, err := webutil.UnescapedParam(c, "id")
		if err != nil {
			return err
		}
		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "неверное тело запроса")
		}
		if err := checkProductRefs(db, body.CategoryCode, body.SupplierCode); err != nil {
			return err
		}

		fields := map[string]any{}
		if body.ProductName != nil {
			if *body.ProductName == "" {
				return fiber.NewError(fiber.StatusBadRequest, "название товара не может быть пустым")
			}
			fields["product_name"] = *body.ProductName
		}
		if body.Description != nil {
			fields["description"] = *body.Description
		}
		if body.CategoryCode != nil {
			fields["category_code"] = *body.CategoryCode
		}
		if body.CountryOfOrigin != nil {
			fields["country_of_origin"] = *body.CountryOfOrigin
		}
		if body.Grade != nil {
			fields["grade"] = *body.Grade
		}
		if body.ExpirationDate != nil {
			fields["expiration_date"] = *body.ExpirationDate
		}
		if body.UnitOfMeasure != nil {
			if *body.UnitOfMeasure == "" {
				return fiber.NewError(fiber.StatusBadRequest, "единица измерения не может быть пустой")
			}
			fields["unit_of_measure"] = *body.UnitOfMeasure
		}
		if body.SupplierCode != nil {
			fields["supplier_code"] = *body.SupplierCode
		}

		product, err := repo.Update(map[string]any{"article": article}, fields)
		if err != nil {
			return err
		}
		return c.JSON(product)
	}
}

// DELETE /api/products/:id
func DeleteProductHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.Product](db)
	return func(c *fiber.Ctx) error {
		article, err := webutil.UnescapedParam(c, "id")
		if err != nil {
			return err
		}
		if err := repo.Delete(map[string]any{"article": article}); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "товар удален"})
	}
}

// DELETE /api/products
func DeleteAllProductsHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.Product](db)
	return func(c *fiber.Ctx) error {
		var filters []storage.Predicate
		if name := c.Query("name"); name != "" {
			filters = append(filters, storage.Contains("product_name", name))
		}
		n, err := repo.DeleteAll(filters...)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"deleted": n})
	}
}
