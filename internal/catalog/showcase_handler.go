package catalog

import (
	"flowershop-backend/internal/models"
	"flowershop-backend/internal/storage"
	"flowershop-backend/internal/webutil"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Старые маршруты витрины: goods-categories, flowers, bouquets.
// Оставлены для обратной совместимости с браузерным фронтендом;
// авторитетная иерархия каталога живет в categories.

type CreateGoodsGroupRequest struct {
	Name             string `json:"name" validate:"required"`
	Description      string `json:"description"`
	BaseGoodsGroup   *int   `json:"baseGoodsGroup"` // deprecated
	ParentCategoryID *int   `json:"parent_category_id"`
}

type UpdateGoodsGroupRequest struct {
	Name             *string `json:"name"`
	Description      *string `json:"description"`
	ParentCategoryID *int    `json:"parent_category_id"`
}

type CreateFlowerRequest struct {
	Name        string          `json:"name" validate:"required"`
	LatinName   string          `json:"latinName"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Color       string          `json:"color"`
	Season      string          `json:"season"`
	InStock     *bool           `json:"inStock"`
	Quantity    int             `json:"quantity"`
	ImageURL    string          `json:"imageUrl"`
	IsPopular   bool            `json:"isPopular"`
	CategoryID  *int            `json:"categoryId"`
}

type CreateBouquetRequest struct {
	Name         string          `json:"name" validate:"required"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Size         string          `json:"size"`
	FlowersCount int             `json:"flowersCount"`
	Occasion     string          `json:"occasion"`
	InStock      *bool           `json:"inStock"`
	ImageURL     string          `json:"imageUrl"`
	IsCustom     bool            `json:"isCustom"`
	Composition  string          `json:"composition"`
}

// GET /api/goods-categories?name=...
func ListGoodsGroupsHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.GoodsGroup](db)
	return func(c *fiber.Ctx) error {
		opts := storage.ListOptions{
			Preloads: []string{"Parent"},
			Order:    "created_at DESC",
		}
		if name := c.Query("name"); name != "" {
			opts.Filters = append(opts.Filters, storage.Contains("name", name))
		}
		groups, err := repo.FindAll(opts)
		if err != nil {
			return err
		}
		return c.JSON(groups)
	}
}

// GET /api/goods-categories-base - только корневые группы
func ListBaseGoodsGroupsHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.GoodsGroup](db)
	return func(c *fiber.Ctx) error {
		groups, err := repo.FindAll(storage.ListOptions{
			Filters: []storage.Predicate{storage.Eq("parent_category_id", nil)},
			Order:   "name ASC",
		})
		if err != nil {
			return err
		}
		return c.JSON(groups)
	}
}

// GET /api/goods-categories/:id
func GetGoodsGroupHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.GoodsGroup](db)
	return func(c *fiber.Ctx) error {
		id, err := webutil.ParseIntParam(c, "id")
		if err != nil {
			return err
		}
		group, err := repo.FindOne(map[string]any{"id": id}, "Parent")
		if err != nil {
			return err
		}
		return c.JSON(group)
	}
}

// POST /api/goods-categories
func CreateGoodsGroupHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.GoodsGroup](db)
	return func(c *fiber.Ctx) error {
		var body CreateGoodsGroupRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "неверное тело запроса")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "название категории не может быть пустым")
		}

		group := models.GoodsGroup{
			Name:             body.Name,
			Description:      body.Description,
			BaseGoodsGroup:   body.BaseGoodsGroup,
			ParentCategoryID: body.ParentCategoryID,
		}
		if err := repo.Create(&group); err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(group)
	}
}

// PUT /api/goods-categories/:id
func UpdateGoodsGroupHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.GoodsGroup](db)
	return func(c *fiber.Ctx) error {
		id, err := webutil.ParseIntParam(c, "id")
		if err != nil {
			return err
		}
		var body UpdateGoodsGroupRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "неверное тело запроса")
		}

		fields := map[string]any{}
		if body.Name != nil {
			fields["name"] = *body.Name
		}
		if body.Description != nil {
			fields["description"] = *body.Description
		}
		if body.ParentCategoryID != nil {
			if *body.ParentCategoryID == id {
				return fiber.NewError(fiber.StatusBadRequest, "группа не может быть родителем самой себя")
			}
			fields["parent_category_id"] = *body.ParentCategoryID
		}

		group, err := repo.Update(map[string]any{"id": id}, fields)
		if err != nil {
			return err
		}
		return c.JSON(group)
	}
}

// DELETE /api/goods-categories/:id
func DeleteGoodsGroupHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.GoodsGroup](db)
	return func(c *fiber.Ctx) error {
		id, err := webutil.ParseIntParam(c, "id")
		if err != nil {
			return err
		}
		if err := repo.Delete(map[string]any{"id": id}); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "категория товаров удалена"})
	}
}

// DELETE /api/goods-categories
func DeleteAllGoodsGroupsHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.GoodsGroup](db)
	return func(c *fiber.Ctx) error {
		n, err := repo.DeleteAll()
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"deleted": n})
	}
}

// GET /api/flowers
func ListFlowersHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.Flower](db)
	return func(c *fiber.Ctx) error {
		flowers, err := repo.FindAll(storage.ListOptions{
			Preloads: []string{"Category"},
			Order:    "created_at DESC",
		})
		if err != nil {
			return err
		}
		return c.JSON(flowers)
	}
}

// GET /api/flowers/popular
func ListPopularFlowersHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.Flower](db)
	return func(c *fiber.Ctx) error {
		flowers, err := repo.FindAll(storage.ListOptions{
			Filters: []storage.Predicate{storage.Eq("is_popular", true)},
			Limit:   8,
		})
		if err != nil {
			return err
		}
		return c.JSON(flowers)
	}
}

// GET /api/flowers/:id
func GetFlowerHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.Flower](db)
	return func(c *fiber.Ctx) error {
		id, err := webutil.ParseIntParam(c, "id")
		if err != nil {
			return err
		}
		flower, err := repo.FindOne(map[string]any{"id": id}, "Category")
		if err != nil {
			return err
		}
		return c.JSON(flower)
	}
}

// POST /api/flowers
func CreateFlowerHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.Flower](db)
	return func(c *fiber.Ctx) error {
		var body CreateFlowerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "неверное тело запроса")
		}
		if body.Name == "" || body.Price.IsZero() {
			return fiber.NewError(fiber.StatusBadRequest, "обязательные поля: name, price")
		}

		inStock := true
		if body.InStock != nil {
			inStock = *body.InStock
		}
		flower := models.Flower{
			Name:        body.Name,
			LatinName:   body.LatinName,
			Price:       body.Price,
			Description: body.Description,
			Color:       body.Color,
			Season:      body.Season,
			InStock:     inStock,
			Quantity:    body.Quantity,
			ImageURL:    body.ImageURL,
			IsPopular:   body.IsPopular,
			CategoryID:  body.CategoryID,
		}
		if err := repo.Create(&flower); err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(flower)
	}
}

// GET /api/bouquets
func ListBouquetsHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.Bouquet](db)
	return func(c *fiber.Ctx) error {
		bouquets, err := repo.FindAll(storage.ListOptions{Order: "created_at DESC"})
		if err != nil {
			return err
		}
		return c.JSON(bouquets)
	}
}

// POST /api/bouquets
func CreateBouquetHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.Bouquet](db)
	return func(c *fiber.Ctx) error {
		var body CreateBouquetRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "неверное тело запроса")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "название букета не может быть пустым")
		}

		inStock := true
		if body.InStock != nil {
			inStock = *body.InStock
		}
		bouquet := models.Bouquet{
			Name:         body.Name,
			Description:  body.Description,
			Price:        body.Price,
			Size:         body.Size,
			FlowersCount: body.FlowersCount,
			Occasion:     body.Occasion,
			InStock:      inStock,
			ImageURL:     body.ImageURL,
			IsCustom:     body.IsCustom,
			Composition:  body.Composition,
		}
		if err := repo.Create(&bouquet); err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(bouquet)
	}
}
