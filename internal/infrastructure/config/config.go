// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Sessions
	SessionTTL time.Duration

	// MongoDB (record store)
	MongoURI string
	MongoDB  string

	// PostgreSQL (airline/timezone reference data)
	PostgresDSN string

	// Google identity
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	IdentityAPIKey     string

	// Remote flight-info endpoint
	FlightInfoEndpoint string
	FlightInfoToken    string
	FlightInfoSender   string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		SessionTTL: time.Duration(getEnvAsInt("SESSION_TTL_MINUTES", 120)) * time.Minute,

		MongoURI: getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "guestgate"),

		PostgresDSN: getEnv("POSTGRES_DSN", ""),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8080/oauth2/callback"),
		IdentityAPIKey:     getEnv("IDENTITY_API_KEY", ""),

		FlightInfoEndpoint: getEnv("FLIGHTINFO_ENDPOINT", ""),
		FlightInfoToken:    getEnv("FLIGHTINFO_TOKEN", ""),
		FlightInfoSender:   getEnv("FLIGHTINFO_SENDER", ""),
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
