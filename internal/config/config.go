package config

import (
	"os"
)

type Config struct {
	// App
	AppTitle string
	Port     string

	// Session
	SessionSecret string

	// Database. DatabaseURL selects the client-server backend when set;
	// otherwise the embedded SQLite file at DatabasePath is used.
	DatabaseURL  string
	DatabasePath string
}

func Load() *Config {
	return &Config{
		AppTitle:      getEnv("APP_TITLE", "Nidhi & Tushar Wedding"),
		Port:          getEnv("PORT", "8080"),
		SessionSecret: getEnv("APP_SECRET", "wedding-secret-key-change-me"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		DatabasePath:  getEnv("DATABASE_PATH", "wedding.db"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
