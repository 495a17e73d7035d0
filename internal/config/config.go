package config

import (
	"log/slog"
	"os"
	"time"
)

type Config struct {
	Port      string
	Env       string
	MongoURI  string
	MongoDB   string
	JWTSecret string
	JWTExpiry time.Duration
	StaticDir string
}

func Load() Config {
	cfg := Config{
		Port:      getEnv("PORT", "2700"),
		Env:       getEnv("ENV", "development"),
		MongoURI:  getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		MongoDB:   getEnv("MONGO_DB", "task"),
		JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		JWTExpiry: time.Hour,
		StaticDir: getEnv("STATIC_DIR", "public"),
	}

	if cfg.Env == "production" && cfg.JWTSecret == "dev-secret-change-in-production" {
		slog.Error("JWT_SECRET must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
