package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds everything the service reads from the environment.
type Config struct {
	AppPort     string
	DatabaseURL string
	JWTSecret   string
	GCSProject  string
	GCSBucket   string
	RedisAddr   string // empty disables the gallery cache
	RedisPass   string
	IsProd      bool
}

// Load reads the environment (and a .env file, if present) into a Config.
// Missing required keys abort startup.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:     getEnv("APP_PORT", "3000"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		GCSProject:  os.Getenv("GCS_PROJECT_ID"),
		GCSBucket:   os.Getenv("GCS_BUCKET_NAME"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		RedisPass:   os.Getenv("REDIS_PASS"),
		IsProd:      os.Getenv("IS_PROD") == "true",
	}

	required := map[string]string{
		"DATABASE_URL":    cfg.DatabaseURL,
		"JWT_SECRET":      cfg.JWTSecret,
		"GCS_BUCKET_NAME": cfg.GCSBucket,
	}
	for key, val := range required {
		if val == "" {
			logrus.Fatalf("%s not set", key)
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
