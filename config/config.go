package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	StorageBackend string // memory | mongo | postgres
	MongoURI       string
	DatabaseURL    string // Postgres connection string
	JWTSecret      string
	GeminiAPIKey   string
	GeminiModel    string
}

func Load() Config {
	_ = godotenv.Load()
	cfg := Config{
		Port:           get("PORT", "8080"),
		StorageBackend: get("STORAGE_BACKEND", "memory"),
		MongoURI:       get("MONGODB_URI", "mongodb://localhost:27017/linkfolio"),
		DatabaseURL:    get("DATABASE_URL", ""),
		JWTSecret:      get("JWT_SECRET", "dev-secret"),
		GeminiAPIKey:   get("GEMINI_API_KEY", ""),
		GeminiModel:    get("GEMINI_MODEL", "gemini-2.5-pro"),
	}
	return cfg
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
