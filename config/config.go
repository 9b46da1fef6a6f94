package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server ServerConfig
	Logger LoggerConfig
	Store  StoreConfig
	UI     UIConfig
}

type ServerConfig struct {
	AppEnv  string
	BaseURL string
	Timeout time.Duration
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type StoreConfig struct {
	Path string
}

type UIConfig struct {
	BatchSize       int
	ScrollThreshold float64
	SearchDebounce  time.Duration
	ExpiryWarnDays  int
	LowStockLevel   float64
}

func LoadEnv() *Config {
	// Basic config loading
	// In a real scenario, use structured config loader like viper or koanf
	return &Config{
		Server: ServerConfig{
			AppEnv:  getEnv("APP_ENV", "dev"),
			BaseURL: getEnv("BILLING_API_BASE_URL", "http://localhost:5000"),
			Timeout: time.Duration(getEnvInt("BILLING_API_TIMEOUT_SECONDS", 15)) * time.Second,
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Store: StoreConfig{
			Path: getEnv("TERMINAL_STORE_PATH", "billing_terminal.db"),
		},
		UI: UIConfig{
			BatchSize:       getEnvInt("UI_RENDER_BATCH_SIZE", 50),
			ScrollThreshold: getEnvFloat("UI_SCROLL_THRESHOLD", 100),
			SearchDebounce:  time.Duration(getEnvInt("UI_SEARCH_DEBOUNCE_MS", 300)) * time.Millisecond,
			ExpiryWarnDays:  getEnvInt("UI_EXPIRY_WARN_DAYS", 90),
			LowStockLevel:   getEnvFloat("UI_LOW_STOCK_LEVEL", 10),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}
