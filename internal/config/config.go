package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	Port       string
	Env        string
	LogLevel   string
	ClinicName string

	// Upstream clinic backend. An empty base URL disables upstream calls
	// entirely and the portal serves mock data only.
	APIBaseURL      string
	UpstreamTimeout time.Duration

	// UseMockData forces the mock-data fallback even when a base URL is set.
	UseMockData  bool
	MockDataPath string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ClinicName:      getEnv("CLINIC_NAME", "BrightSmile Dental"),
		APIBaseURL:      getEnv("API_BASE_URL", ""),
		UpstreamTimeout: getEnvAsDuration("UPSTREAM_TIMEOUT", 10*time.Second),
		UseMockData:     getEnvAsBool("USE_MOCK_DATA", false),
		MockDataPath:    getEnv("MOCK_DATA_PATH", "mock-data.json"),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
