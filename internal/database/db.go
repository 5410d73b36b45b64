package database

import (
	"fmt"
	"time"

	"flowershop-backend/internal/config"
	"flowershop-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open открывает подключение к Postgres и синхронизирует схему.
// Возвращаемый handle передается вниз явно, глобального состояния нет.
func Open(cfg *config.Config) (*gorm.DB, error) {
	db, err := OpenDialector(postgres.Open(cfg.DatabaseDSN))
	if err != nil {
		return nil, fmt.Errorf("подключение к базе данных: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// OpenDialector используется и продовым кодом, и тестами (in-memory SQLite).
func OpenDialector(d gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(d, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("синхронизация схемы: %w", err)
	}
	return db, nil
}

// Migrate создает/дополняет таблицы (аналог sequelize.sync({force:false})).
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Старые модели витрины (для обратной совместимости)
		&models.GoodsGroup{},
		&models.Flower{},
		&models.Bouquet{},
		// Основная схема
		&models.Category{},
		&models.Supplier{},
		&models.Customer{},
		&models.Employee{},
		&models.Product{},
		&models.PriceList{},
		&models.Sale{},
		&models.SaleItem{},
	)
}

// Ping проверяет доступность хранилища (для /api/health).
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Close закрывает пул соединений при остановке процесса.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
