package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config contains application-wide settings sourced from the environment.
type Config struct {
	DatabaseURL string
	Addr        string
	RedisAddr   string

	AccessTokenKey  string
	RefreshTokenKey string
	AccessTokenAge  time.Duration

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioPublicURL string
	MinioUseSSL    bool

	LogLevel  string
	LogFormat string
}

func loadConfig() (Config, error) {
	_ = godotenv.Load(".env")

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return Config{}, errors.New("DATABASE_URL env var is required")
	}

	accessKey := os.Getenv("ACCESS_TOKEN_KEY")
	refreshKey := os.Getenv("REFRESH_TOKEN_KEY")
	if accessKey == "" || refreshKey == "" {
		return Config{}, errors.New("ACCESS_TOKEN_KEY and REFRESH_TOKEN_KEY env vars are required")
	}

	ageSeconds, err := strconv.Atoi(envOrDefault("ACCESS_TOKEN_AGE", "1800"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ACCESS_TOKEN_AGE: %w", err)
	}

	return Config{
		DatabaseURL:     dsn,
		Addr:            fmt.Sprintf(":%s", envOrDefault("PORT", "5000")),
		RedisAddr:       envOrDefault("REDIS_ADDR", "localhost:6379"),
		AccessTokenKey:  accessKey,
		RefreshTokenKey: refreshKey,
		AccessTokenAge:  time.Duration(ageSeconds) * time.Second,
		MinioEndpoint:   envOrDefault("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey:  os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey:  os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:     envOrDefault("MINIO_BUCKET", "harmonia-covers"),
		MinioPublicURL:  envOrDefault("MINIO_PUBLIC_URL", "http://localhost:9000"),
		MinioUseSSL:     envOrDefault("MINIO_USE_SSL", "false") == "true",
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
	}, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
