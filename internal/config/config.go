package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const defaultDSN = "host=localhost user=postgres password=postgres dbname=flowershop port=5432 sslmode=disable"

type Config struct {
	Env         string // development | production
	HTTPPort    string
	DatabaseDSN string
	CORSOrigins string
	LogLevel    string
	StaticDir   string // каталог статики витрины
}

// Load читает конфигурацию из переменных окружения и опционального .env файла.
func Load() *Config {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // .env опционален

	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DATABASE_DSN", defaultDSN)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STATIC_DIR", "./public")

	cfg := &Config{
		Env:         v.GetString("APP_ENV"),
		HTTPPort:    v.GetString("HTTP_PORT"),
		DatabaseDSN: v.GetString("DATABASE_DSN"),
		CORSOrigins: v.GetString("CORS_ALLOWED_ORIGINS"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		StaticDir:   v.GetString("STATIC_DIR"),
	}

	if cfg.DatabaseDSN == defaultDSN {
		log.Warn().Msg("DATABASE_DSN не задан, используется значение по умолчанию - для production укажите свое подключение к Postgres")
	}
	if cfg.CORSOrigins == "*" && cfg.Env == "production" {
		log.Warn().Msg("CORS_ALLOWED_ORIGINS не ограничен, для production укажите домен витрины")
	}

	return cfg
}
