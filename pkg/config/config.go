package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type ServerConfig struct {
	Port string
}

type DBConfig struct {
	Driver     string // postgres | sqlite
	DSN        string
	SQLitePath string
	LogLevel   string // silent | error | warn | info
}

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	LogMode   string // development | production
	AlertCron string

	// EnvFileLoaded is false when no .env file was found.
	EnvFileLoaded bool
}

type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

// Load reads .env when present, then the environment.
func Load() Config {
	cfg := Config{
		EnvFileLoaded: godotenv.Load() == nil,
		Server: ServerConfig{Port: GetEnv("PORT", "4000")},
		DB: DBConfig{
			Driver:     GetEnv("DB_DRIVER", "postgres"),
			DSN:        GetEnv("DATABASE_URL", ""),
			SQLitePath: GetEnv("SQLITE_PATH", "pharmastock.db"),
			LogLevel:   GetEnv("DB_LOG_LEVEL", "warn"),
		},
		LogMode:   GetEnv("LOG_MODE", "development"),
		AlertCron: GetEnv("ALERT_CRON", "0 8 * * *"),
	}
	if cfg.DB.DSN == "" {
		cfg.DB.DSN = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			GetEnv("DB_HOST", "127.0.0.1"),
			GetEnv("DB_USER", "postgres"),
			GetEnv("DB_PASSWORD", "postgres"),
			GetEnv("DB_NAME", "pharmastock"),
			GetEnv("DB_PORT", "5432"),
		)
	}
	return cfg
}

// LoadClient reads the settings of API consumers.
func LoadClient() ClientConfig {
	_ = godotenv.Load()
	return ClientConfig{
		BaseURL: GetEnv("API_URL", "http://127.0.0.1:4000/api"),
		Timeout: time.Duration(GetEnvAsInt("API_TIMEOUT_SECONDS", 10)) * time.Second,
	}
}

// GetEnv returns the value of key, or fallback when it is unset.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func GetEnvAsInt(key string, fallback int) int {
	strValue := GetEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
