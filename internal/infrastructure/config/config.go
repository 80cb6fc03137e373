package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	OTLP   OTLPConfig
}

type ServerConfig struct {
	Port string
	Host string
}

type OTLPConfig struct {
	Endpoint         string
	ServiceName      string
	Environment      string
	ExporterDisabled bool
}

// LoadConfig loads configuration from environment variables. A local .env
// file is read first when present.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8080"),
		},
		OTLP: OTLPConfig{
			Endpoint:         getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			ServiceName:      getEnv("OTEL_SERVICE_NAME", "store-api"),
			Environment:      getEnv("OTEL_ENVIRONMENT", "development"),
			ExporterDisabled: getEnvBool("OTEL_EXPORTER_DISABLED", false),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
