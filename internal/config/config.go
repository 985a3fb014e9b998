package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"stock-available/internal/core"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL    string
	ServerPort     string
	AllowedOrigins string
	CompanyCode    string
	Redis          RedisConfig
	// LocationCacheTTL applies when Redis is enabled.
	LocationCacheTTL time.Duration
	ReturnQtyMode    core.ReturnQtyMode
	// UoMDigits is used for precision keys missing from decimal_precisions.
	UoMDigits int32
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Enabled reports whether a Redis host was configured.
func (r RedisConfig) Enabled() bool { return r.Host != "" }

// Addr returns host:port.
func (r RedisConfig) Addr() string { return r.Host + ":" + r.Port }

// Load reads .env (if present) and the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (Config, error) {
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	ttl, err := time.ParseDuration(getEnv("LOCATION_CACHE_TTL", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid LOCATION_CACHE_TTL: %w", err)
	}
	mode, err := core.ParseReturnQtyMode(getEnv("RETURN_QTY_MODE", string(core.ReturnQtyContract)))
	if err != nil {
		return Config{}, err
	}
	digits, err := strconv.ParseInt(getEnv("UOM_PRECISION_DIGITS", "3"), 10, 32)
	if err != nil || digits < 0 {
		return Config{}, fmt.Errorf("invalid UOM_PRECISION_DIGITS %q", os.Getenv("UOM_PRECISION_DIGITS"))
	}

	return Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		AllowedOrigins: os.Getenv("ALLOWED_ORIGINS"),
		CompanyCode:    os.Getenv("COMPANY_CODE"),
		Redis: RedisConfig{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		LocationCacheTTL: ttl,
		ReturnQtyMode:    mode,
		UoMDigits:        int32(digits),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
