package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// Config is the process environment, read once at startup. A .env file is
// honoured when present but never required.
type Config struct {
	Port      string
	GinMode   string
	DataDir   string
	JWTSecret string
	S3Bucket  string
	S3Region  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:      getenv("PORT", "8080"),
		GinMode:   os.Getenv("GIN_MODE"),
		DataDir:   getenv("DATA_DIR", "data"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		S3Bucket:  os.Getenv("S3_BUCKET"),
		S3Region:  getenv("S3_REGION", os.Getenv("AWS_REGION")),
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET not set")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
