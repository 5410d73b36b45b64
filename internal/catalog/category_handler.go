package catalog

import (
	"fmt"

	"flowershop-backend/internal/models"
	"flowershop-backend/internal/storage"
	"flowershop-backend/internal/webutil"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateCategoryRequest struct {
	CategoryName     string `json:"category_name" validate:"required,max=100"`
	HierarchyLevel   int    `json:"hierarchy_level"`
	ParentCategoryID *int   `json:"parent_category_id"`
}

type UpdateCategoryRequest struct {
	CategoryName     *string `json:"category_name"`
	HierarchyLevel   *int    `json:"hierarchy_level"`
	ParentCategoryID *int    `json:"parent_category_id"`
}

// maxTreeDepth ограничивает разворачивание дочерних категорий по запросу.
const maxTreeDepth = 10

// GET /api/categories?name=...
func ListCategoriesHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.Category](db)
	return func(c *fiber.Ctx) error {
		opts := storage.ListOptions{
			Preloads: []string{"Parent", "Children"},
			Order:    "category_code ASC",
		}
		if name := c.Query("name"); name != "" {
			opts.Filters = append(opts.Filters, storage.Contains("category_name", name))
		}
		categories, err := repo.FindAll(opts)
		if err != nil {
			return err
		}
		return c.JSON(categories)
	}
}

// GET /api/categories/:id?depth=N
// Дочерние категории разворачиваются только на явно запрошенную глубину,
// неявной неограниченной рекурсии нет.
func GetCategoryHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.Category](db)
	return func(c *fiber.Ctx) error {
		id, err := webutil.ParseIntParam(c, "id")
		if err != nil {
			return err
		}
		depth := c.QueryInt("depth", 1)
		if depth < 0 || depth > maxTreeDepth {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("depth должен быть в диапазоне от 0 до %d", maxTreeDepth))
		}

		category, err := repo.FindOne(map[string]any{"category_code": id}, "Parent")
		if err != nil {
			return err
		}
		if err := expandChildren(db, category, depth); err != nil {
			return err
		}
		return c.JSON(category)
	}
}

// POST /api/categories
func CreateCategoryHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.Category](db)
	return func(c *fiber.Ctx) error {
		var body CreateCategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "неверное тело запроса")
		}
		if err := webutil.Validate(body); err != nil {
			return err
		}
		if body.ParentCategoryID != nil {
			ok, err := repo.Exists(map[string]any{"category_code": *body.ParentCategoryID})
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: родительская категория %d не найдена", storage.ErrConstraint, *body.ParentCategoryID)
			}
		}

		category := models.Category{
			CategoryName:     body.CategoryName,
			HierarchyLevel:   body.HierarchyLevel,
			ParentCategoryID: body.ParentCategoryID,
		}
		if err := repo.Create(&category); err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(category)
	}
}

// PUT /api/categories/:id
func UpdateCategoryHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.Category](db)
	return func(c *fiber.Ctx) error {
		id, err := webutil.ParseIntParam(c, "id")
		if err != nil {
			return err
		}
		var body UpdateCategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "неверное тело запроса")
		}

		fields := map[string]any{}
		if body.CategoryName != nil {
			if *body.CategoryName == "" {
				return fiber.NewError(fiber.StatusBadRequest, "название категории не может быть пустым")
			}
			fields["category_name"] = *body.CategoryName
		}
		if body.HierarchyLevel != nil {
			fields["hierarchy_level"] = *body.HierarchyLevel
		}
		if body.ParentCategoryID != nil {
			parent := *body.ParentCategoryID
			if parent == id {
				return fiber.NewError(fiber.StatusBadRequest, "категория не может быть родителем самой себя")
			}
			ok, err := repo.Exists(map[string]any{"category_code": parent})
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: родительская категория %d не найдена", storage.ErrConstraint, parent)
			}
			cycle, err := wouldCreateCycle(db, id, parent)
			if err != nil {
				return err
			}
			if cycle {
				return fiber.NewError(fiber.StatusBadRequest, "перенос создал бы цикл в дереве категорий")
			}
			fields["parent_category_id"] = parent
		}

		category, err := repo.Update(map[string]any{"category_code": id}, fields)
		if err != nil {
			return err
		}
		return c.JSON(category)
	}
}

// DELETE /api/categories/:id
func DeleteCategoryHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.Category](db)
	return func(c *fiber.Ctx) error {
		id, err := webutil.ParseIntParam(c, "id")
		if err != nil {
			return err
		}
		if err := repo.Delete(map[string]any{"category_code": id}); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "категория удалена"})
	}
}

// DELETE /api/categories
func DeleteAllCategoriesHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.Category](db)
	return func(c *fiber.Ctx) error {
		n, err := repo.DeleteAll()
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"deleted": n})
	}
}

// GET /api/categories/:id/products
func CategoryProductsHandler(db *gorm.DB) fiber.Handler {
	products := storage.NewRepository[models.Product](db)
	return func(c *fiber.Ctx) error {
		id, err := webutil.ParseIntParam(c, "id")
		if err != nil {
			return err
		}
		recs, err := products.FindAll(storage.ListOptions{
			Filters:  []storage.Predicate{storage.Eq("category_code", id)},
			Preloads: []string{"Category", "Supplier"},
			Order:    "article ASC",
		})
		if err != nil {
			return err
		}
		return c.JSON(recs)
	}
}

// expandChildren подгружает дочерние категории на depth уровней вниз.
func expandChildren(db *gorm.DB, category *models.Category, depth int) error {
	if depth <= 0 {
		return nil
	}
	if err := db.
		Where("parent_category_id = ?", category.CategoryCode).
		Order("category_code ASC").
		Find(&category.Children).Error; err != nil {
		return storage.Translate(err)
	}
	for i := range category.Children {
		if err := expandChildren(db, &category.Children[i], depth-1); err != nil {
			return err
		}
	}
	return nil
}

// wouldCreateCycle проверяет, что цепочка родителей от parent не выходит на code.
// Обход ограничен общим числом категорий, чтобы уже поврежденное дерево
// не зациклило запрос.
func wouldCreateCycle(db *gorm.DB, code, parent int) (bool, error) {
	var total int64
	if err := db.Model(&models.Category{}).Count(&total).Error; err != nil {
		return false, storage.Translate(err)
	}

	current := parent
	for steps := int64(0); steps <= total; steps++ {
		if current == code {
			return true, nil
		}
		var cat models.Category
		err := db.Select("category_code", "parent_category_id").
			First(&cat, "category_code = ?", current).Error
		if err != nil {
			// Оборванная ссылка вверх дерева циклом быть не может
			return false, nil
		}
		if cat.ParentCategoryID == nil {
			return false, nil
		}
		current = *cat.ParentCategoryID
	}
	return true, nil
}
