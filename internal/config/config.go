package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config carries everything the server needs from the environment.
type Config struct {
	Port          string
	MongoURI      string
	DBName        string
	JWTSecret     string
	DataDir       string
	AllowedOrigin string
}

// LoadConfig reads .env when present and falls back to process environment
// variables. MONGO_URI may be empty: the server then runs on the local-only
// path with device snapshots and sample data.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, relying on environment variables")
	}

	return &Config{
		Port:          getEnv("PORT", "8080"),
		MongoURI:      os.Getenv("MONGO_URI"),
		DBName:        getEnv("DB_NAME", "lifeos"),
		JWTSecret:     getEnv("JWT_SECRET", "dev-secret"),
		DataDir:       getEnv("DATA_DIR", "./data"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
