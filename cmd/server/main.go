package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"flowershop-backend/internal/catalog"
	"flowershop-backend/internal/config"
	"flowershop-backend/internal/database"
	"flowershop-backend/internal/logging"
	"flowershop-backend/internal/pricing"
	"flowershop-backend/internal/sales"
	"flowershop-backend/internal/webutil"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.Env, cfg.LogLevel)

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("не удалось открыть базу данных")
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error().Err(err).Msg("закрытие пула соединений")
		}
	}()
	log.Info().Msg("база данных цветочного магазина синхронизирована")

	app := newApp(db, cfg.CORSOrigins)

	// Статика витрины
	app.Static("/", cfg.StaticDir)

	// Неизвестные API-маршруты - JSON 404
	app.Use("/api/*", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "API маршрут не найден",
			"path":  c.OriginalURL(),
		})
	})

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("сервер цветочного магазина запущен")
		if err := app.Listen(":" + cfg.HTTPPort); err != nil {
			log.Error().Err(err).Msg("HTTP-сервер остановился")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("получен сигнал остановки, завершаем работу...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("остановка сервера")
	}
}

// newApp собирает приложение Fiber с маршрутами; вынесено отдельно,
// чтобы тесты поднимали то же дерево маршрутов над тестовой базой.
func newApp(db *gorm.DB, corsOrigins string) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: webutil.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	// Логирование всех запросов
	app.Use(func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Info().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("duration", time.Since(start)).
			Msg("запрос")
		return err
	})

	api := app.Group("/api")

	// Проверка здоровья приложения
	api.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "connected"
		status := "OK"
		if err := database.Ping(db); err != nil {
			dbStatus = "unavailable"
			status = "DEGRADED"
		}
		return c.JSON(fiber.Map{
			"status":    status,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"database":  dbStatus,
			"shop":      "Flower Shop",
		})
	})

	// Категории
	api.Get("/categories", catalog.ListCategoriesHandler(db))
	api.Post("/categories", catalog.CreateCategoryHandler(db))
	api.Get("/categories/:id", catalog.GetCategoryHandler(db))
	api.Put("/categories/:id", catalog.UpdateCategoryHandler(db))
	api.Delete("/categories/:id", catalog.DeleteCategoryHandler(db))
	api.Delete("/categories", catalog.DeleteAllCategoriesHandler(db))
	api.Get("/categories/:id/products", catalog.CategoryProductsHandler(db))

	// Товары (поиск и подресурсы регистрируются раньше /:id)
	api.Get("/products", catalog.ListProductsHandler(db))
	api.Post("/products", catalog.CreateProductHandler(db))
	api.Get("/products/search/:query", catalog.SearchProductsHandler(db))
	api.Get("/products/:id/prices", pricing.ProductPriceHistoryHandler(db))
	api.Get("/products/:id/price", pricing.ProductCurrentPriceHandler(db))
	api.Get("/products/:id", catalog.GetProductHandler(db))
	api.Put("/products/:id", catalog.UpdateProductHandler(db))
	api.Delete("/products/:id", catalog.DeleteProductHandler(db))
	api.Delete("/products", catalog.DeleteAllProductsHandler(db))

	// Поставщики
	api.Get("/suppliers", catalog.ListSuppliersHandler(db))
	api.Post("/suppliers", catalog.CreateSupplierHandler(db))
	api.Get("/suppliers/:id", catalog.GetSupplierHandler(db))
	api.Put("/suppliers/:id", catalog.UpdateSupplierHandler(db))
	api.Delete("/suppliers/:id", catalog.DeleteSupplierHandler(db))
	api.Delete("/suppliers", catalog.DeleteAllSuppliersHandler(db))

	// Покупатели
	api.Get("/customers", sales.ListCustomersHandler(db))
	api.Post("/customers", sales.CreateCustomerHandler(db))
	api.Get("/customers/:id", sales.GetCustomerHandler(db))
	api.Put("/customers/:id", sales.UpdateCustomerHandler(db))
	api.Delete("/customers/:id", sales.DeleteCustomerHandler(db))
	api.Delete("/customers", sales.DeleteAllCustomersHandler(db))

	// Сотрудники
	api.Get("/employees", sales.ListEmployeesHandler(db))
	api.Post("/employees", sales.CreateEmployeeHandler(db))
	api.Get("/employees/:id", sales.GetEmployeeHandler(db))
	api.Put("/employees/:id", sales.UpdateEmployeeHandler(db))
	api.Delete("/employees/:id", sales.DeleteEmployeeHandler(db))
	api.Delete("/employees", sales.DeleteAllEmployeesHandler(db))

	// Продажи
	api.Get("/sales", sales.ListSalesHandler(db))
	api.Post("/sales", sales.CreateSaleHandler(db))
	api.Get("/sales/:id", sales.GetSaleHandler(db))
	api.Put("/sales/:id", sales.UpdateSaleHandler(db))
	api.Delete("/sales/:id", sales.DeleteSaleHandler(db))
	api.Delete("/sales", sales.DeleteAllSalesHandler(db))

	// Прайс-лист
	api.Get("/pricelist", pricing.ListPricesHandler(db))
	api.Post("/pricelist", pricing.CreatePriceHandler(db))
	api.Get("/pricelist/:id", pricing.GetPriceHandler(db))
	api.Put("/pricelist/:id", pricing.UpdatePriceHandler(db))
	api.Delete("/pricelist/:id", pricing.DeletePriceHandler(db))
	api.Delete("/pricelist", pricing.DeleteAllPricesHandler(db))

	// Состав продажи
	api.Get("/sale-items", sales.ListSaleItemsHandler(db))
	api.Post("/sale-items", sales.CreateSaleItemHandler(db))
	api.Put("/sale-items/:id", sales.UpdateSaleItemHandler(db))
	api.Delete("/sale-items/:id", sales.DeleteSaleItemHandler(db))
	api.Delete("/sale-items", sales.DeleteAllSaleItemsHandler(db))

	// Старые маршруты витрины
	api.Get("/goods-categories", catalog.ListGoodsGroupsHandler(db))
	api.Post("/goods-categories", catalog.CreateGoodsGroupHandler(db))
	api.Get("/goods-categories-base", catalog.ListBaseGoodsGroupsHandler(db))
	api.Get("/goods-categories/:id", catalog.GetGoodsGroupHandler(db))
	api.Put("/goods-categories/:id", catalog.UpdateGoodsGroupHandler(db))
	api.Delete("/goods-categories/:id", catalog.DeleteGoodsGroupHandler(db))
	api.Delete("/goods-categories", catalog.DeleteAllGoodsGroupsHandler(db))

	api.Get("/flowers", catalog.ListFlowersHandler(db))
	api.Post("/flowers", catalog.CreateFlowerHandler(db))
	api.Get("/flowers/popular", catalog.ListPopularFlowersHandler(db))
	api.Get("/flowers/:id", catalog.GetFlowerHandler(db))

	api.Get("/bouquets", catalog.ListBouquetsHandler(db))
	api.Post("/bouquets", catalog.CreateBouquetHandler(db))

	return app
}
