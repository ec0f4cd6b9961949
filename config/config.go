package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config структура конфигурации приложения
type Config struct {
	App       AppConfig
	Server    ServerConfig
	RetailCRM RetailCRMConfig
	Logging   LoggingConfig
	CORS      CORSConfig
}

// AppConfig общие настройки приложения
type AppConfig struct {
	Env         string
	APIV1Prefix string
}

// ServerConfig конфигурация HTTP сервера
type ServerConfig struct {
	Port            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// RetailCRMConfig конфигурация доступа к API RetailCRM
type RetailCRMConfig struct {
	APIURL  string
	APIKey  string
	Timeout int
}

// LoggingConfig конфигурация логгера
type LoggingConfig struct {
	Level string
}

// CORSConfig конфигурация CORS
type CORSConfig struct {
	AllowedOrigins []string
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("API_V1_PREFIX", "/api/v1")
	v.SetDefault("PORT", "8080")
	v.SetDefault("SERVER_READ_TIMEOUT", 15)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 15)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 30)
	v.SetDefault("RETAILCRM_TIMEOUT", 30)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ALLOWED_ORIGINS", "*")

	cfg := &Config{
		App: AppConfig{
			Env:         v.GetString("APP_ENV"),
			APIV1Prefix: v.GetString("API_V1_PREFIX"),
		},
		Server: ServerConfig{
			Port:            v.GetString("PORT"),
			ReadTimeout:     v.GetInt("SERVER_READ_TIMEOUT"),
			WriteTimeout:    v.GetInt("SERVER_WRITE_TIMEOUT"),
			ShutdownTimeout: v.GetInt("SERVER_SHUTDOWN_TIMEOUT"),
		},
		RetailCRM: RetailCRMConfig{
			APIURL:  v.GetString("RETAILCRM_API_URL"),
			APIKey:  v.GetString("RETAILCRM_API_KEY"),
			Timeout: v.GetInt("RETAILCRM_TIMEOUT"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitOrigins(v.GetString("ALLOWED_ORIGINS")),
		},
	}

	if cfg.RetailCRM.APIURL == "" {
		return nil, fmt.Errorf("RETAILCRM_API_URL is required")
	}
	if cfg.RetailCRM.APIKey == "" {
		return nil, fmt.Errorf("RETAILCRM_API_KEY is required")
	}

	return cfg, nil
}

// splitOrigins разбирает список разрешенных origin-ов из строки вида "a,b,c"
func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
